package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/jask/cadastro/internal/validate"
)

var (
	// ErrPickInProgress is returned when a photo is requested while an
	// earlier request is still outstanding.
	ErrPickInProgress = errors.New("photo pick already in progress")
	// ErrNoPicker is returned by PickPhoto when no picker is configured.
	ErrNoPicker = errors.New("no photo picker configured")
)

const (
	eventAdvance = "advance"
	eventRetreat = "retreat"
)

var stepStates = map[Step]string{
	StepBasics:  "basics",
	StepContact: "contact",
	StepDetails: "details",
}

func stepOf(state string) Step {
	for step, name := range stepStates {
		if name == state {
			return step
		}
	}
	return FirstStep
}

// Outcome reports what an Advance did.
type Outcome int

const (
	// Rejected means the current step failed validation; nothing changed.
	Rejected Outcome = iota
	// Advanced means the wizard moved to the next step.
	Advanced
	// Submitted means the last step passed and the success notification
	// was sent.
	Submitted
)

func (o Outcome) String() string {
	switch o {
	case Advanced:
		return "advanced"
	case Submitted:
		return "submitted"
	default:
		return "rejected"
	}
}

// Options configures a Controller. Every field is optional.
type Options struct {
	Notifier    Notifier
	Picker      PhotoPicker
	PhonePolicy validate.PhonePolicy
	Logger      *zap.SugaredLogger
	Now         func() time.Time
}

// Controller drives one wizard. It owns its State exclusively and is not
// safe for concurrent use.
type Controller struct {
	state   *State
	machine *fsm.FSM
	opts    Options
	log     *zap.SugaredLogger
	session string
	picking bool
}

// NewController mounts a fresh wizard of kind.
func NewController(kind Kind, opts Options) (*Controller, error) {
	state, err := NewState(kind)
	if err != nil {
		return nil, err
	}
	if opts.PhonePolicy == "" {
		opts.PhonePolicy = validate.PhoneMobile
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c := &Controller{
		state:   state,
		opts:    opts,
		log:     log.Named(string(kind)),
		session: uuid.NewString(),
	}
	c.machine = fsm.NewFSM(
		stepStates[FirstStep],
		fsm.Events{
			{Name: eventAdvance, Src: []string{stepStates[StepBasics]}, Dst: stepStates[StepContact]},
			{Name: eventAdvance, Src: []string{stepStates[StepContact]}, Dst: stepStates[StepDetails]},
			{Name: eventRetreat, Src: []string{stepStates[StepContact]}, Dst: stepStates[StepBasics]},
			{Name: eventRetreat, Src: []string{stepStates[StepDetails]}, Dst: stepStates[StepContact]},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.state.step = stepOf(e.Dst)
				c.log.Debugw("step changed", "event", e.Event, "from", e.Src, "to", e.Dst, "session", c.session)
			},
		},
	)
	return c, nil
}

func (c *Controller) Kind() Kind { return c.state.Kind() }

func (c *Controller) Schema() *Schema { return c.state.schema }

// State exposes the wizard's values for reading.
func (c *Controller) State() *State { return c.state }

func (c *Controller) Step() Step { return c.state.step }

// Session identifies the current mount; it changes on Reset.
func (c *Controller) Session() string { return c.session }

// PhonePolicy is the phone shape policy step 2 validates with.
func (c *Controller) PhonePolicy() validate.PhonePolicy { return c.opts.PhonePolicy }

// ActiveFields returns the fields of the current step.
func (c *Controller) ActiveFields() []FieldSpec {
	return c.state.schema.ActiveFields(c.state.step)
}

// Change handles one edit event and returns the stored, formatted value.
func (c *Controller) Change(field Field, raw string) (string, error) {
	return c.state.Set(field, raw)
}

// Advance validates the current step. On failure nothing changes, the
// verdict is sent to the notifier and returned. On success the wizard moves
// forward, or submits when already on the last step.
func (c *Controller) Advance(ctx context.Context) (Outcome, error) {
	step := c.state.step
	if err := c.state.schema.Validate(step, c.state, c.opts.PhonePolicy); err != nil {
		if ve, ok := validate.AsError(err); ok {
			c.notify(ve.Severity, ve.Message)
		}
		c.log.Debugw("step rejected", "step", step, "error", err, "session", c.session)
		return Rejected, err
	}
	if step == LastStep {
		c.submit()
		return Submitted, nil
	}
	if err := c.machine.Event(ctx, eventAdvance); err != nil {
		return Rejected, fmt.Errorf("advance from step %d: %w", step, err)
	}
	return Advanced, nil
}

// Check validates step against the current values without moving the
// wizard. A failure is sent to the notifier like a rejected Advance.
func (c *Controller) Check(step Step) error {
	err := c.state.schema.Validate(step, c.state, c.opts.PhonePolicy)
	if ve, ok := validate.AsError(err); ok {
		c.notify(ve.Severity, ve.Message)
	}
	return err
}

// Retreat moves one step back without validating. It is a no-op on the
// first step.
func (c *Controller) Retreat(ctx context.Context) error {
	if c.state.step <= FirstStep {
		return nil
	}
	if err := c.machine.Event(ctx, eventRetreat); err != nil {
		return fmt.Errorf("retreat from step %d: %w", c.state.step, err)
	}
	return nil
}

// submit is the terminal action. Nothing is persisted; the registration
// only produces the success notification.
func (c *Controller) submit() {
	c.log.Infow("registration submitted", "session", c.session)
	c.notify(validate.SeveritySuccess, c.state.schema.Success)
}

func (c *Controller) notify(sev validate.Severity, msg string) {
	if c.opts.Notifier == nil {
		return
	}
	c.opts.Notifier.Notify(Notification{
		Kind:     c.state.Kind(),
		Session:  c.session,
		Severity: sev,
		Message:  msg,
		At:       c.opts.Now(),
	})
}

// Picking reports whether a photo request is outstanding.
func (c *Controller) Picking() bool { return c.picking }

// BeginPick marks a photo request as outstanding. Hosts whose picker
// resolves through their own event loop call BeginPick, then CompletePick
// with the outcome.
func (c *Controller) BeginPick() error {
	if c.picking {
		return ErrPickInProgress
	}
	c.picking = true
	return nil
}

// CompletePick applies the outcome of the outstanding request: a selection
// is stored verbatim, a cancellation leaves the state untouched. It reports
// false, ignoring res, when no request was outstanding.
func (c *Controller) CompletePick(res PickResult) bool {
	if !c.picking {
		return false
	}
	c.picking = false
	if res.Cancelled {
		c.log.Debugw("photo pick cancelled", "session", c.session)
		return true
	}
	c.state.SetPhoto(res.Ref)
	return true
}

// PickPhoto runs one request against the configured picker and waits for
// its single result.
func (c *Controller) PickPhoto(ctx context.Context) error {
	if c.opts.Picker == nil {
		return ErrNoPicker
	}
	if err := c.BeginPick(); err != nil {
		return err
	}
	res, err := c.opts.Picker.Pick(ctx)
	if err != nil {
		c.CompletePick(Cancelled())
		return fmt.Errorf("pick photo: %w", err)
	}
	c.CompletePick(res)
	return nil
}

// Reset discards everything, as when the wizard is unmounted, and starts a
// new session.
func (c *Controller) Reset() {
	c.state.Reset()
	c.machine.SetState(stepStates[FirstStep])
	c.picking = false
	c.session = uuid.NewString()
}
