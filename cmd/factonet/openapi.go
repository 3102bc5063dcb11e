package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/swaggo/swag"

	"github.com/cyclonet/factonet-api/docs"
)

func newOpenAPICmd() *cobra.Command {
	return &cobra.Command{
		Use:               "openapi",
		Short:             "Imprime la especificación OpenAPI de la API",
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}
