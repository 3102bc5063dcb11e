package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cyclonet/factonet-api/pkg/money"
)

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "words <monto>",
		Short:   "Muestra un monto en pesos y en letras",
		Example: "  factonet words 119000\n  factonet words 15300.75",
		Args:    cobra.ExactArgs(1),
		// No necesita configuración ni base de datos.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("monto inválido %q", args[0])
			}
			text, err := money.FormatCurrency(amount)
			if err != nil {
				return err
			}
			words, err := money.AmountInWords(amount)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", text, words)
			return nil
		},
	}
}
