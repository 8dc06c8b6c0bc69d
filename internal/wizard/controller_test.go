package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/cadastro/internal/validate"
)

type recorder struct {
	got []Notification
}

func (r *recorder) Notify(n Notification) { r.got = append(r.got, n) }

func (r *recorder) last(t *testing.T) Notification {
	t.Helper()
	require.NotEmpty(t, r.got, "no notification sent")
	return r.got[len(r.got)-1]
}

func newController(t *testing.T, kind Kind, opts Options) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	if opts.Notifier == nil {
		opts.Notifier = rec
	}
	c, err := NewController(kind, opts)
	require.NoError(t, err)
	return c, rec
}

func mustChange(t *testing.T, c *Controller, field Field, raw string) {
	t.Helper()
	_, err := c.Change(field, raw)
	require.NoError(t, err)
}

func fillProfessorBasics(t *testing.T, c *Controller) {
	t.Helper()
	c.State().SetPhoto("file:///photos/ana.jpg")
	mustChange(t, c, FieldFullName, "Ana")
	mustChange(t, c, FieldTaxID, "123.456.789-09")
}

func TestAdvanceStepOneEmptyNameIsMissingDanger(t *testing.T) {
	ctx := context.Background()
	for _, kind := range Kinds() {
		c, rec := newController(t, kind, Options{})
		c.State().SetPhoto("ref")

		out, err := c.Advance(ctx)
		require.Equal(t, Rejected, out)
		require.ErrorIs(t, err, validate.ErrMissingField)
		ve, ok := validate.AsError(err)
		require.True(t, ok)
		require.Equal(t, validate.SeverityDanger, ve.Severity)
		require.Contains(t, ve.Fields, string(FieldFullName))
		require.Equal(t, StepBasics, c.Step())

		n := rec.last(t)
		require.Equal(t, "Preencha todos os campos da etapa 1.", n.Message)
		require.Equal(t, validate.SeverityDanger, n.Severity)
		require.Equal(t, kind, n.Kind)
	}
}

func TestProfessorStepOneAdvances(t *testing.T) {
	c, rec := newController(t, KindProfessor, Options{})
	fillProfessorBasics(t, c)

	out, err := c.Advance(context.Background())
	require.NoError(t, err)
	require.Equal(t, Advanced, out)
	require.Equal(t, StepContact, c.Step())
	require.Empty(t, rec.got)
}

func TestProfessorStepOneRequiresCompleteTaxID(t *testing.T) {
	c, rec := newController(t, KindProfessor, Options{})
	c.State().SetPhoto("ref")
	mustChange(t, c, FieldFullName, "Ana")
	mustChange(t, c, FieldTaxID, "123456789")

	_, err := c.Advance(context.Background())
	require.ErrorIs(t, err, validate.ErrInvalidFormat)
	require.Equal(t, StepBasics, c.Step())
	require.Equal(t, "CPF inválido. Digite no formato xxx.xxx.xxx-xx", rec.last(t).Message)
	require.Equal(t, validate.SeverityDanger, rec.last(t).Severity)
}

func TestStepOneRequiresPhoto(t *testing.T) {
	c, _ := newController(t, KindAluno, Options{})
	mustChange(t, c, FieldFullName, "Bia")
	mustChange(t, c, FieldRegistrationID, "123456")

	_, err := c.Advance(context.Background())
	ve, ok := validate.AsError(err)
	require.True(t, ok)
	require.Equal(t, []string{string(FieldPhoto)}, ve.Fields)
}

func TestStepOneEmptyPhotoRefIsMissing(t *testing.T) {
	c, _ := newController(t, KindAluno, Options{})
	mustChange(t, c, FieldFullName, "Bia")
	mustChange(t, c, FieldRegistrationID, "123456")
	require.NoError(t, c.BeginPick())
	require.True(t, c.CompletePick(Selected("")))

	_, err := c.Advance(context.Background())
	ve, ok := validate.AsError(err)
	require.True(t, ok)
	require.Equal(t, []string{string(FieldPhoto)}, ve.Fields)
	require.Equal(t, StepBasics, c.Step())
}

func TestCheckNotifiesWithoutMoving(t *testing.T) {
	c, rec := newController(t, KindProfessor, Options{})

	err := c.Check(StepContact)
	require.ErrorIs(t, err, validate.ErrMissingField)
	require.Equal(t, StepBasics, c.Step())
	require.Len(t, rec.got, 1)
	require.Equal(t, validate.SeverityWarning, rec.last(t).Severity)
	require.Equal(t, "Preencha todos os campos da etapa 2.", rec.last(t).Message)
	require.Equal(t, c.Session(), rec.last(t).Session)

	fillProfessorBasics(t, c)
	require.NoError(t, c.Check(StepBasics))
	require.Len(t, rec.got, 1, "a passing check sends nothing")
	require.Equal(t, StepBasics, c.Step())

	require.Error(t, c.Check(Step(9)))
}

func TestStepOneWhitespaceOnlyIsMissing(t *testing.T) {
	c, _ := newController(t, KindAluno, Options{})
	c.State().SetPhoto("ref")
	mustChange(t, c, FieldFullName, "   ")
	mustChange(t, c, FieldRegistrationID, "123")

	_, err := c.Advance(context.Background())
	require.ErrorIs(t, err, validate.ErrMissingField)
}

func TestStepTwoPhoneShapes(t *testing.T) {
	ctx := context.Background()
	c, rec := newController(t, KindProfessor, Options{})
	fillProfessorBasics(t, c)
	_, err := c.Advance(ctx)
	require.NoError(t, err)

	mustChange(t, c, FieldEmail, "ana@escola.com")
	mustChange(t, c, FieldPhone, "(11) 9999-9999")
	out, err := c.Advance(ctx)
	require.Equal(t, Rejected, out)
	require.ErrorIs(t, err, validate.ErrInvalidFormat)
	require.Equal(t, validate.SeverityDanger, rec.last(t).Severity)
	require.Equal(t, "Telefone inválido. Digite no formato (XX) XXXXX-XXXX", rec.last(t).Message)
	require.Equal(t, StepContact, c.Step())

	mustChange(t, c, FieldPhone, "(11) 99999-9999")
	out, err = c.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, Advanced, out)
	require.Equal(t, StepDetails, c.Step())
}

func TestStepTwoLandlineAcceptedUnderAnyPolicy(t *testing.T) {
	ctx := context.Background()
	c, _ := newController(t, KindProfessor, Options{PhonePolicy: validate.PhoneAny})
	fillProfessorBasics(t, c)
	_, err := c.Advance(ctx)
	require.NoError(t, err)

	mustChange(t, c, FieldPhone, "1133334444")
	mustChange(t, c, FieldEmail, "ana@escola.com")
	out, err := c.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, Advanced, out)
}

func TestStepTwoMissingIsWarning(t *testing.T) {
	ctx := context.Background()
	c, rec := newController(t, KindAluno, Options{})
	c.State().SetPhoto("ref")
	mustChange(t, c, FieldFullName, "Bia")
	mustChange(t, c, FieldRegistrationID, "123456")
	_, err := c.Advance(ctx)
	require.NoError(t, err)

	// Invalid phone and email do not matter while the address is missing.
	mustChange(t, c, FieldPhone, "11")
	mustChange(t, c, FieldEmail, "a@b")
	_, err = c.Advance(ctx)
	require.ErrorIs(t, err, validate.ErrMissingField)
	ve, _ := validate.AsError(err)
	require.Equal(t, validate.SeverityWarning, ve.Severity)
	require.Equal(t, []string{string(FieldAddress)}, ve.Fields)
	require.Equal(t, "Preencha todos os campos da etapa 2.", rec.last(t).Message)
}

func TestStepTwoEmailShape(t *testing.T) {
	ctx := context.Background()
	c, rec := newController(t, KindProfessor, Options{})
	fillProfessorBasics(t, c)
	_, err := c.Advance(ctx)
	require.NoError(t, err)

	mustChange(t, c, FieldPhone, "11987654321")
	mustChange(t, c, FieldEmail, "a@b")
	_, err = c.Advance(ctx)
	require.ErrorIs(t, err, validate.ErrInvalidFormat)
	require.Equal(t, "Email inválido.", rec.last(t).Message)

	mustChange(t, c, FieldEmail, "a@b.com")
	out, err := c.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, Advanced, out)
}

func TestStepThreeSubmitsOnce(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c, rec := newController(t, KindAluno, Options{Now: func() time.Time { return at }})
	c.State().SetPhoto("ref")
	mustChange(t, c, FieldFullName, "Bia")
	mustChange(t, c, FieldRegistrationID, "123456")
	_, err := c.Advance(ctx)
	require.NoError(t, err)
	mustChange(t, c, FieldPhone, "11987654321")
	mustChange(t, c, FieldEmail, "bia@escola.com")
	mustChange(t, c, FieldAddress, "Rua A, 10")
	_, err = c.Advance(ctx)
	require.NoError(t, err)

	mustChange(t, c, FieldClassName, "3ºA")
	_, err = c.Advance(ctx)
	require.ErrorIs(t, err, validate.ErrMissingField)
	require.Equal(t, validate.SeverityDanger, rec.last(t).Severity)
	require.Equal(t, "Preencha todos os campos da etapa 3.", rec.last(t).Message)

	rec.got = nil
	mustChange(t, c, FieldInternship, "Laboratório")
	out, err := c.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, Submitted, out)
	require.Equal(t, StepDetails, c.Step())

	require.Len(t, rec.got, 1)
	n := rec.got[0]
	require.Equal(t, validate.SeveritySuccess, n.Severity)
	require.Equal(t, "Cadastro realizado com sucesso!", n.Message)
	require.Equal(t, c.Session(), n.Session)
	require.Equal(t, at, n.At)
}

func TestRetreat(t *testing.T) {
	ctx := context.Background()
	c, rec := newController(t, KindProfessor, Options{})

	require.NoError(t, c.Retreat(ctx))
	require.Equal(t, StepBasics, c.Step())

	fillProfessorBasics(t, c)
	_, err := c.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, StepContact, c.Step())

	// Going back never validates, even with the current step incomplete.
	require.NoError(t, c.Retreat(ctx))
	require.Equal(t, StepBasics, c.Step())
	require.Equal(t, "Ana", c.State().Value(FieldFullName))
	require.Empty(t, rec.got)
}

func TestAdvanceOnlyValidatesCurrentStep(t *testing.T) {
	ctx := context.Background()
	c, _ := newController(t, KindProfessor, Options{})
	fillProfessorBasics(t, c)
	// Step 3 values being empty must not affect step 1.
	out, err := c.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, Advanced, out)

	// Breaking step 1 after leaving it must not affect step 2.
	mustChange(t, c, FieldFullName, "")
	mustChange(t, c, FieldPhone, "11987654321")
	mustChange(t, c, FieldEmail, "ana@escola.com")
	out, err = c.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, Advanced, out)
}

func TestChangeFormatsAndRejectsForeignFields(t *testing.T) {
	c, _ := newController(t, KindProfessor, Options{})

	v, err := c.Change(FieldTaxID, "12345678909")
	require.NoError(t, err)
	require.Equal(t, "123.456.789-09", v)
	require.Equal(t, v, c.State().Value(FieldTaxID))

	v, err = c.Change(FieldPhone, "abc11987654321")
	require.NoError(t, err)
	require.Equal(t, "(11) 98765-4321", v)

	_, err = c.Change(FieldRegistrationID, "123")
	require.ErrorIs(t, err, ErrUnknownField)
	_, err = c.Change(FieldPhoto, "x")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestActiveFields(t *testing.T) {
	ctx := context.Background()
	c, _ := newController(t, KindAluno, Options{})
	names := func() []Field {
		var out []Field
		for _, f := range c.ActiveFields() {
			out = append(out, f.Field)
		}
		return out
	}
	require.Equal(t, []Field{FieldPhoto, FieldFullName, FieldRegistrationID}, names())

	c.State().SetPhoto("ref")
	mustChange(t, c, FieldFullName, "Bia")
	mustChange(t, c, FieldRegistrationID, "1")
	_, err := c.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, []Field{FieldPhone, FieldEmail, FieldAddress}, names())
}

func TestPickPhoto(t *testing.T) {
	ctx := context.Background()

	cancel := PickerFunc(func(context.Context) (PickResult, error) { return Cancelled(), nil })
	c, _ := newController(t, KindAluno, Options{Picker: cancel})
	require.NoError(t, c.PickPhoto(ctx))
	_, ok := c.State().Photo()
	require.False(t, ok)
	require.False(t, c.Picking())

	pick := PickerFunc(func(context.Context) (PickResult, error) { return Selected("content://media/42"), nil })
	c, _ = newController(t, KindAluno, Options{Picker: pick})
	require.NoError(t, c.PickPhoto(ctx))
	ref, ok := c.State().Photo()
	require.True(t, ok)
	require.Equal(t, PhotoRef("content://media/42"), ref)

	// A later cancellation keeps the earlier selection.
	require.NoError(t, c.BeginPick())
	require.True(t, c.CompletePick(Cancelled()))
	ref, _ = c.State().Photo()
	require.Equal(t, PhotoRef("content://media/42"), ref)

	boom := errors.New("device unavailable")
	failing := PickerFunc(func(context.Context) (PickResult, error) { return PickResult{}, boom })
	c, _ = newController(t, KindAluno, Options{Picker: failing})
	require.ErrorIs(t, c.PickPhoto(ctx), boom)
	require.False(t, c.Picking())

	c, _ = newController(t, KindAluno, Options{})
	require.ErrorIs(t, c.PickPhoto(ctx), ErrNoPicker)
}

func TestPickIsExclusive(t *testing.T) {
	c, _ := newController(t, KindProfessor, Options{})
	require.NoError(t, c.BeginPick())
	require.ErrorIs(t, c.BeginPick(), ErrPickInProgress)
	require.True(t, c.CompletePick(Selected("a")))
	require.False(t, c.CompletePick(Selected("b")))
	ref, _ := c.State().Photo()
	require.Equal(t, PhotoRef("a"), ref)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	c, _ := newController(t, KindProfessor, Options{})
	session := c.Session()
	fillProfessorBasics(t, c)
	_, err := c.Advance(ctx)
	require.NoError(t, err)

	c.Reset()
	require.Equal(t, StepBasics, c.Step())
	require.Empty(t, c.State().Values())
	_, ok := c.State().Photo()
	require.False(t, ok)
	require.NotEqual(t, session, c.Session())

	// The state machine is back on step 1 too.
	fillProfessorBasics(t, c)
	out, err := c.Advance(ctx)
	require.NoError(t, err)
	require.Equal(t, Advanced, out)
	require.Equal(t, StepContact, c.Step())
}
