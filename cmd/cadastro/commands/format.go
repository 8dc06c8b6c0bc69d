package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/cadastro/internal/format"
)

func formatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Apply an input mask to raw values",
	}
	cmd.AddCommand(
		maskCmd("phone", "Format as (DD) DDDDD-DDDD", format.Phone),
		maskCmd("cpf", "Format as DDD.DDD.DDD-DD", format.TaxID),
	)
	return cmd
}

func maskCmd(name, short string, mask func(string) string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <input>...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				fmt.Fprintln(cmd.OutOrStdout(), mask(raw))
			}
			return nil
		},
	}
}
