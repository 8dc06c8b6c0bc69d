package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func historyCmd(c *cli) *cobra.Command {
	var (
		limit    int
		clearAll bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear recorded notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, closeDB, err := c.openHistory()
			if err != nil {
				return err
			}
			defer closeDB()

			if clearAll {
				if err := store.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "histórico limpo")
				return nil
			}

			if !cmd.Flags().Changed("limit") {
				limit = c.cfg.History.Limit
			}
			entries, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "nenhuma notificação")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("QUANDO", "CADASTRO", "NÍVEL", "MENSAGEM")
			for _, e := range entries {
				t.Row(e.CreatedAt.Local().Format("2006-01-02 15:04:05"), string(e.Kind), string(e.Severity), e.Message)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries, 0 for all (default history.limit)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete every entry")
	return cmd
}
