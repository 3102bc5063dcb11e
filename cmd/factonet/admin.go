package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cyclonet/factonet-api/internal/application/auth"
	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
	"github.com/cyclonet/factonet-api/internal/infrastructure/postgres"
)

// newCreateAdminCmd alta del primer administrador; el registro por HTTP exige uno.
func newCreateAdminCmd(a *app) *cobra.Command {
	var in dto.RegisterRequest
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Crea un usuario administrador",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := a.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			in.Role = entity.RoleAdmin
			uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.NewSessionStore(a.cfg.Session.IdleTimeout), auth.JWTConfig{})
			user, err := uc.RegisterUser(ctx, in)
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				return fmt.Errorf("ya existe un usuario con el email %s", in.Email)
			}
			if err != nil {
				return err
			}
			a.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("administrador creado")
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&in.Name, "name", "Administrador", "nombre")
	cmd.Flags().StringVar(&in.Password, "password", "", "contraseña (mínimo 8 caracteres)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
