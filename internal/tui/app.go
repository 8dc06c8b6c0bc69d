package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jask/cadastro/internal/config"
	"github.com/jask/cadastro/internal/history"
	"github.com/jask/cadastro/internal/validate"
	"github.com/jask/cadastro/internal/wizard"
)

// toastTTL is how long a notification stays on screen.
const toastTTL = 3 * time.Second

// App hosts both registration wizards, one per tab.
type App struct {
	ctx     context.Context
	cfg     config.Config
	log     *zap.SugaredLogger
	history *history.Store

	forms  []*form
	active int
	state  appState
	picker *photoPicker

	toast    *toast
	pending  []wizard.Notification
	toastSeq int

	entries []history.Entry
	status  string

	keys   keyMap
	help   help.Model
	width  int
	height int
}

// Deps are the optional collaborators of an App.
type Deps struct {
	// History records every notification when set.
	History *history.Store
	Logger  *zap.SugaredLogger
}

var tabLabels = map[wizard.Kind]string{
	wizard.KindProfessor: "Professor",
	wizard.KindAluno:     "Aluno",
}

type appState string

const (
	viewForm    appState = "form"
	viewHistory appState = "history"
)

type toast struct {
	id int
	wizard.Notification
}

type toastExpiredMsg struct{ id int }

type historyMsg []history.Entry

type historyClearedMsg struct{}

type errMsg struct{ error }

// New mounts a Professor and an Aluno wizard.
func New(ctx context.Context, cfg config.Config, deps Deps) (*App, error) {
	policy, err := cfg.PhonePolicy()
	if err != nil {
		return nil, err
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		log:     log,
		history: deps.History,
		state:   viewForm,
		keys:    defaultKeys(),
		help:    help.New(),
	}

	notifiers := wizard.Notifiers{
		wizard.NotifierFunc(func(n wizard.Notification) { a.pending = append(a.pending, n) }),
		wizard.LogNotifier(log),
	}
	if deps.History != nil {
		notifiers = append(notifiers, deps.History.Notifier(ctx, log))
	}

	for _, kind := range wizard.Kinds() {
		ctrl, err := wizard.NewController(kind, wizard.Options{
			Notifier:    notifiers,
			PhonePolicy: policy,
			Logger:      log,
		})
		if err != nil {
			return nil, err
		}
		a.forms = append(a.forms, newForm(ctrl))
	}
	return a, nil
}

// Controller returns the controller behind the tab for kind.
func (a *App) Controller(kind wizard.Kind) *wizard.Controller {
	for _, f := range a.forms {
		if f.ctrl.Kind() == kind {
			return f.ctrl
		}
	}
	return nil
}

func (a *App) current() *form { return a.forms[a.active] }

func (a *App) Init() tea.Cmd {
	return a.current().setFocus(0)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
	case toastExpiredMsg:
		if a.toast != nil && a.toast.id == m.id {
			a.toast = nil
		}
		return a, nil
	case historyMsg:
		a.entries = []history.Entry(m)
		return a, nil
	case historyClearedMsg:
		a.status = "histórico limpo"
		return a, a.loadHistory()
	case errMsg:
		a.status = "erro: " + m.Error()
		return a, nil
	case tea.KeyMsg:
		if key.Matches(m, a.keys.Quit) {
			a.unmount()
			return a, tea.Quit
		}
		if a.picker != nil {
			return a.updatePicker(m)
		}
		if a.state == viewHistory {
			return a.handleHistoryKey(m)
		}
		return a.handleFormKey(m)
	}
	if a.picker != nil {
		return a.updatePicker(msg)
	}
	return a, a.current().update(msg)
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := a.current()
	switch {
	case key.Matches(m, a.keys.NextTab):
		return a, a.switchTab(a.active + 1)
	case key.Matches(m, a.keys.Professor):
		return a, a.switchTab(0)
	case key.Matches(m, a.keys.Aluno):
		return a, a.switchTab(1)
	case key.Matches(m, a.keys.History):
		a.state = viewHistory
		a.status = ""
		return a, a.loadHistory()
	case key.Matches(m, a.keys.NextField):
		return a, f.setFocus(f.focus + 1)
	case key.Matches(m, a.keys.PrevField):
		return a, f.setFocus(f.focus - 1)
	case key.Matches(m, a.keys.Back):
		return a, a.retreat()
	case key.Matches(m, a.keys.AcceptHint):
		f.acceptHint()
		return a, nil
	case key.Matches(m, a.keys.Pick):
		if f.hasPhotoRow() {
			return a, a.openPicker()
		}
		return a, nil
	case key.Matches(m, a.keys.Next):
		if spec, ok := f.focused(); ok && spec.Mode == wizard.InputPhoto {
			return a, a.openPicker()
		}
		return a, a.advance()
	}
	return a, f.update(m)
}

func (a *App) handleHistoryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Back), key.Matches(m, a.keys.History):
		a.state = viewForm
		a.status = ""
		return a, a.current().setFocus(a.current().focus)
	case key.Matches(m, a.keys.Clear):
		return a, a.clearHistory()
	}
	return a, nil
}

func (a *App) switchTab(i int) tea.Cmd {
	a.active = (i%len(a.forms) + len(a.forms)) % len(a.forms)
	a.status = ""
	f := a.current()
	return f.setFocus(f.focus)
}

func (a *App) advance() tea.Cmd {
	f := a.current()
	out, err := f.ctrl.Advance(a.ctx)
	if err != nil {
		if _, ok := validate.AsError(err); !ok {
			a.status = "erro: " + err.Error()
		}
	}
	var cmd tea.Cmd
	if out == wizard.Advanced {
		cmd = f.sync()
	}
	return tea.Batch(cmd, a.flushToast())
}

func (a *App) retreat() tea.Cmd {
	f := a.current()
	before := f.ctrl.Step()
	if err := f.ctrl.Retreat(a.ctx); err != nil {
		a.status = "erro: " + err.Error()
		return nil
	}
	if f.ctrl.Step() == before {
		return nil
	}
	return f.sync()
}

// openPicker starts a photo request on the current wizard and shows the
// browser. A request that is already outstanding is left alone.
func (a *App) openPicker() tea.Cmd {
	f := a.current()
	if err := f.ctrl.BeginPick(); err != nil {
		a.status = "aguarde a seleção da foto em andamento"
		return nil
	}
	p, cmd := newPhotoPicker(a.cfg.Picker, f, a.height)
	a.picker = p
	return cmd
}

func (a *App) closePicker(res wizard.PickResult) {
	a.picker.owner.ctrl.CompletePick(res)
	a.picker = nil
}

func (a *App) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
		a.closePicker(wizard.Cancelled())
		return a, nil
	}
	res, done, cmd := a.picker.update(msg)
	if done {
		a.closePicker(res)
		return a, cmd
	}
	if a.picker.rejected(msg) {
		a.status = "tipo de arquivo não suportado"
	}
	return a, cmd
}

// flushToast shows the latest queued notification and schedules its
// removal.
func (a *App) flushToast() tea.Cmd {
	if len(a.pending) == 0 {
		return nil
	}
	n := a.pending[len(a.pending)-1]
	a.pending = a.pending[:0]
	a.toastSeq++
	id := a.toastSeq
	a.toast = &toast{id: id, Notification: n}
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}

// unmount discards every wizard's state, as leaving the screens does.
func (a *App) unmount() {
	if a.picker != nil {
		a.closePicker(wizard.Cancelled())
	}
	for _, f := range a.forms {
		f.ctrl.Reset()
		f.sync()
	}
}

func (a *App) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if a.history == nil {
			return historyMsg(nil)
		}
		entries, err := a.history.List(a.ctx, a.cfg.History.Limit)
		if err != nil {
			return errMsg{err}
		}
		return historyMsg(entries)
	}
}

func (a *App) clearHistory() tea.Cmd {
	return func() tea.Msg {
		if a.history == nil {
			return historyClearedMsg{}
		}
		if err := a.history.Clear(a.ctx); err != nil {
			return errMsg{err}
		}
		return historyClearedMsg{}
	}
}

func (a *App) View() string {
	// Without a known screen size the picker replaces the form.
	overlay := a.picker != nil && a.width > 0 && a.height > 0
	var body string
	switch {
	case a.picker != nil && !overlay:
		body = a.picker.view()
	case a.state == viewHistory:
		body = a.renderHistory()
	default:
		body = a.current().view()
	}

	sections := []string{a.renderTabs(), "", body, ""}
	if a.toast != nil {
		sections = append(sections, toastStyle(a.toast.Severity).Render(a.toast.Message))
	}
	if a.status != "" {
		sections = append(sections, statusStyle.Render(a.status))
	}
	if a.state == viewHistory {
		sections = append(sections, a.help.View(historyHelp(a.keys)))
	} else {
		sections = append(sections, a.help.View(a.keys))
	}
	screen := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if overlay {
		return placeOver(screen, a.picker.view(), a.width, a.height)
	}
	return screen
}

func (a *App) renderTabs() string {
	tabs := make([]string, 0, len(a.forms)+1)
	for i, f := range a.forms {
		style := tabStyle
		if i == a.active && a.state == viewForm {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(tabLabels[f.ctrl.Kind()]))
	}
	style := tabStyle
	if a.state == viewHistory {
		style = activeTabStyle
	}
	tabs = append(tabs, style.Render("Histórico"))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Notificações recentes"))
	b.WriteString("\n\n")
	if a.history == nil {
		b.WriteString(placeholderStyle.Render("histórico desativado"))
		return b.String()
	}
	if len(a.entries) == 0 {
		b.WriteString(placeholderStyle.Render("nenhuma notificação"))
		return b.String()
	}
	for _, e := range a.entries {
		badge := toastStyle(e.Severity).Render(fmt.Sprintf("%-7s", e.Severity))
		fmt.Fprintf(&b, "%s  %-9s %s %s\n",
			e.CreatedAt.Local().Format("02/01 15:04"), e.Kind, badge, e.Message)
	}
	return b.String()
}
