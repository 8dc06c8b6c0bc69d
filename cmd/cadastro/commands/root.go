package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/cadastro/internal/config"
	"github.com/jask/cadastro/internal/database"
	"github.com/jask/cadastro/internal/history"
)

// cli carries what every subcommand shares.
type cli struct {
	configPath string
	cfg        config.Config
}

// Execute runs the root command against os.Args.
func Execute() error {
	return execute(NewRootCmd())
}

// execute runs root and reports any error on its error stream, except a
// rejection whose verdict was already printed.
func execute(root *cobra.Command) error {
	err := root.Execute()
	if err != nil && !errors.Is(err, ErrRejected) {
		root.PrintErrln("Error:", err)
	}
	return err
}

// NewRootCmd builds the command tree. Without a subcommand it opens the
// registration screens.
func NewRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "cadastro",
		Short:         "Professor and student registration wizards",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
		RunE: c.runTUI,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cadastro/config.toml)")

	root.AddCommand(runCmd(c), formatCmd(), validateCmd(c), historyCmd(c), configCmd(c))
	return root
}

// openHistory migrates and opens the notification database.
func (c *cli) openHistory() (*history.Store, func() error, error) {
	db, err := database.OpenMigrated(c.cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}
	return history.NewStore(db), db.Close, nil
}
