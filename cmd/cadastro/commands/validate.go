package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/cadastro/internal/validate"
	"github.com/jask/cadastro/internal/wizard"
)

// ErrRejected is returned when a step fails validation. The verdict has
// already been printed, so callers should not report it again.
var ErrRejected = errors.New("registration rejected")

func validateCmd(c *cli) *cobra.Command {
	var (
		step   int
		sets   []string
		photo  string
		policy string
	)
	cmd := &cobra.Command{
		Use:   "validate <professor|aluno>",
		Short: "Run values through the registration rules",
		Long: `Without --step the values go through every step in order, the way the
screens would, stopping at the first rejected step. With --step only that
step is checked. Exits non-zero when a step is rejected.`,
		Example: `  cadastro validate aluno --photo foto.jpg --set full_name="Bruno Lima" \
    --set registration_id=2024001 --step 1`,
		Args:          cobra.ExactArgs(1),
		ValidArgs:     []string{string(wizard.KindProfessor), string(wizard.KindAluno)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			kind, err := wizard.ParseKind(args[0])
			if err != nil {
				return err
			}
			pol, err := c.cfg.PhonePolicy()
			if err != nil {
				return err
			}
			if policy != "" {
				if pol, err = validate.ParsePhonePolicy(policy); err != nil {
					return err
				}
			}

			notifiers := wizard.Notifiers{printNotifier(out)}
			if c.cfg.History.Enabled {
				store, closeDB, err := c.openHistory()
				if err != nil {
					return err
				}
				defer closeDB()
				notifiers = append(notifiers, store.Notifier(ctx, nil))
			}

			ctrl, err := wizard.NewController(kind, wizard.Options{Notifier: notifiers, PhonePolicy: pol})
			if err != nil {
				return err
			}
			if photo != "" {
				ctrl.State().SetPhoto(wizard.PhotoRef(photo))
			}
			for _, kv := range sets {
				field, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--set %q: want field=value", kv)
				}
				if _, err := ctrl.Change(wizard.Field(strings.TrimSpace(field)), value); err != nil {
					return err
				}
			}

			if step != 0 {
				s := wizard.Step(step)
				if !s.Valid() {
					return fmt.Errorf("--step must be between %d and %d", wizard.FirstStep, wizard.LastStep)
				}
				if err := ctrl.Check(s); err != nil {
					if _, ok := validate.AsError(err); ok {
						return ErrRejected
					}
					return err
				}
				fmt.Fprintf(out, "etapa %d ok\n", s)
				return nil
			}

			for {
				outcome, err := ctrl.Advance(ctx)
				if err != nil {
					if _, ok := validate.AsError(err); ok {
						return ErrRejected
					}
					return err
				}
				if outcome == wizard.Submitted {
					return nil
				}
			}
		},
	}
	cmd.Flags().IntVar(&step, "step", 0, "validate only this step (1-3)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field=value, repeatable")
	cmd.Flags().StringVar(&photo, "photo", "", "photo reference for step 1")
	cmd.Flags().StringVar(&policy, "phone-policy", "", "override wizard.phone_policy (mobile|any)")
	return cmd
}

func printNotifier(w io.Writer) wizard.Notifier {
	return wizard.NotifierFunc(func(n wizard.Notification) {
		fmt.Fprintf(w, "[%s] %s\n", n.Severity, n.Message)
	})
}
