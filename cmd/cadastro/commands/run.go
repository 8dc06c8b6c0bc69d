package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/cadastro/internal/logger"
	"github.com/jask/cadastro/internal/tui"
)

func runCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Open the registration screens",
		Args:  cobra.NoArgs,
		RunE:  c.runTUI,
	}
}

func (c *cli) runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	zl, closeLog, err := logger.Open(c.cfg.Log.Path, c.cfg.Log.Level, c.cfg.Log.Format)
	if err != nil {
		return err
	}
	defer closeLog()
	log := zl.Sugar()

	deps := tui.Deps{Logger: log}
	if c.cfg.History.Enabled {
		store, closeDB, err := c.openHistory()
		if err != nil {
			return err
		}
		defer closeDB()
		deps.History = store
	}

	app, err := tui.New(ctx, c.cfg, deps)
	if err != nil {
		return err
	}
	log.Infow("starting", "history", c.cfg.History.Enabled, "phone_policy", c.cfg.Wizard.PhonePolicy)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Errorw("program exited", "error", err)
		return err
	}
	return nil
}
