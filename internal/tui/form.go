package tui

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/cadastro/internal/validate"
	"github.com/jask/cadastro/internal/wizard"
)

// form renders one wizard. Every keystroke goes through the controller so
// the input always shows the formatted value.
type form struct {
	ctrl   *wizard.Controller
	inputs map[wizard.Field]textinput.Model
	focus  int
	hint   string
}

func newForm(ctrl *wizard.Controller) *form {
	f := &form{ctrl: ctrl, inputs: make(map[wizard.Field]textinput.Model)}
	for _, spec := range ctrl.Schema().Fields {
		if spec.Mode == wizard.InputPhoto {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = spec.Placeholder
		ti.Width = 40
		if spec.MaxLen > 0 {
			ti.CharLimit = spec.MaxLen
		}
		f.inputs[spec.Field] = ti
	}
	f.sync()
	return f
}

func (f *form) fields() []wizard.FieldSpec { return f.ctrl.ActiveFields() }

func (f *form) focused() (wizard.FieldSpec, bool) {
	fields := f.fields()
	if f.focus < 0 || f.focus >= len(fields) {
		return wizard.FieldSpec{}, false
	}
	return fields[f.focus], true
}

// setFocus moves focus to row i, wrapping around the active fields.
func (f *form) setFocus(i int) tea.Cmd {
	fields := f.fields()
	if len(fields) == 0 {
		return nil
	}
	f.focus = (i%len(fields) + len(fields)) % len(fields)
	var cmd tea.Cmd
	for field, ti := range f.inputs {
		ti.Blur()
		f.inputs[field] = ti
	}
	if spec := fields[f.focus]; spec.Mode != wizard.InputPhoto {
		ti := f.inputs[spec.Field]
		cmd = ti.Focus()
		f.inputs[spec.Field] = ti
	}
	return cmd
}

// sync reloads the inputs from the wizard state and focuses the first row.
// Call it whenever the step changes or the wizard is reset.
func (f *form) sync() tea.Cmd {
	state := f.ctrl.State()
	for field, ti := range f.inputs {
		ti.SetValue(state.Value(field))
		ti.CursorEnd()
		f.inputs[field] = ti
	}
	f.refreshHint()
	return f.setFocus(0)
}

// update forwards msg to the focused input and stores the edit.
func (f *form) update(msg tea.Msg) tea.Cmd {
	spec, ok := f.focused()
	if !ok || spec.Mode == wizard.InputPhoto {
		return nil
	}
	ti := f.inputs[spec.Field]
	before := ti.Value()
	ti, cmd := ti.Update(msg)
	if raw := ti.Value(); raw != before {
		if stored, err := f.ctrl.Change(spec.Field, raw); err == nil && stored != raw {
			ti.SetValue(stored)
			ti.CursorEnd()
		}
	}
	f.inputs[spec.Field] = ti
	if spec.Field == wizard.FieldEmail {
		f.refreshHint()
	}
	return cmd
}

func (f *form) refreshHint() {
	f.hint = ""
	email := f.ctrl.State().Value(wizard.FieldEmail)
	if !validate.Email(email) {
		return
	}
	if s, ok := validate.SuggestEmail(email); ok {
		f.hint = s
	}
}

// acceptHint replaces the email with the current suggestion.
func (f *form) acceptHint() bool {
	if f.hint == "" {
		return false
	}
	stored, err := f.ctrl.Change(wizard.FieldEmail, f.hint)
	if err != nil {
		return false
	}
	ti := f.inputs[wizard.FieldEmail]
	ti.SetValue(stored)
	ti.CursorEnd()
	f.inputs[wizard.FieldEmail] = ti
	f.hint = ""
	return true
}

// hasPhotoRow reports whether the current step shows the photo picker.
func (f *form) hasPhotoRow() bool {
	for _, spec := range f.fields() {
		if spec.Mode == wizard.InputPhoto {
			return true
		}
	}
	return false
}

func (f *form) view() string {
	step := f.ctrl.Step()
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.ctrl.Schema().StepTitle(step)))
	b.WriteString("\n\n")

	for i, spec := range f.fields() {
		label := labelStyle
		marker := "  "
		if i == f.focus {
			label = focusLabelStyle
			marker = "▸ "
		}
		var value string
		if spec.Mode == wizard.InputPhoto {
			if ref, ok := f.ctrl.State().Photo(); ok {
				value = photoStyle.Render(filepath.Base(string(ref)))
			} else {
				value = placeholderStyle.Render("[ " + spec.Placeholder + " ]")
			}
			if f.ctrl.Picking() {
				value += placeholderStyle.Render("  escolhendo...")
			}
		} else {
			value = f.inputs[spec.Field].View()
		}
		b.WriteString(marker + label.Render(spec.Label) + value + "\n")
	}

	if f.hint != "" {
		b.WriteString("\n" + hintStyle.Render("Você quis dizer "+f.hint+"? (ctrl+e)") + "\n")
	}

	b.WriteString("\n")
	var buttons []string
	if step > wizard.FirstStep {
		buttons = append(buttons, buttonStyle.Render("esc Voltar"))
	}
	if step == wizard.LastStep {
		buttons = append(buttons, buttonStyle.Render("enter Cadastrar"))
	} else {
		buttons = append(buttons, buttonStyle.Render("enter Próximo"))
	}
	b.WriteString(strings.Join(buttons, "  "))
	return b.String()
}
