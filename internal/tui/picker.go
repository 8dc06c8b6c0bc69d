package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/cadastro/internal/config"
	"github.com/jask/cadastro/internal/wizard"
)

// photoPicker is the modal file browser that resolves a photo request.
// It belongs to the form that opened it; the request stays outstanding on
// that form's controller until the modal closes.
type photoPicker struct {
	fp    filepicker.Model
	owner *form
}

func newPhotoPicker(cfg config.PickerConfig, owner *form, height int) (*photoPicker, tea.Cmd) {
	fp := filepicker.New()
	fp.CurrentDirectory = cfg.StartDir
	if fp.CurrentDirectory == "" {
		if home, err := os.UserHomeDir(); err == nil {
			fp.CurrentDirectory = home
		} else {
			fp.CurrentDirectory = "."
		}
	}
	fp.AllowedTypes = cfg.AllowedTypes
	fp.AutoHeight = false
	fp.Height = max(5, height-10)
	p := &photoPicker{fp: fp, owner: owner}
	return p, p.fp.Init()
}

// update feeds msg to the browser and reports the outcome once the user
// chose a file. Cancellation is handled by the caller.
func (p *photoPicker) update(msg tea.Msg) (wizard.PickResult, bool, tea.Cmd) {
	var cmd tea.Cmd
	p.fp, cmd = p.fp.Update(msg)
	if ok, path := p.fp.DidSelectFile(msg); ok {
		return wizard.Selected(wizard.PhotoRef(path)), true, cmd
	}
	return wizard.PickResult{}, false, cmd
}

// rejected reports whether msg tried to select a file of a type outside
// AllowedTypes.
func (p *photoPicker) rejected(msg tea.Msg) bool {
	ok, _ := p.fp.DidSelectDisabledFile(msg)
	return ok
}

func (p *photoPicker) view() string {
	return modalStyle.Render(titleStyle.Render("Selecionar foto") + "\n" +
		statusStyle.Render(p.fp.CurrentDirectory) + "\n\n" +
		p.fp.View() + "\n" +
		statusStyle.Render("enter escolher  esc cancelar"))
}
