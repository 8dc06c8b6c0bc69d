package wizard

import (
	"time"

	"go.uber.org/zap"

	"github.com/jask/cadastro/internal/validate"
)

// Notification is what a controller reports to its host: a rejected step,
// or a completed registration.
type Notification struct {
	Kind     Kind
	Session  string
	Severity validate.Severity
	Message  string
	At       time.Time
}

// Notifier presents notifications. It is fire and forget; implementations
// must not block the wizard.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Notifiers fans a notification out to every non-nil member in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(n Notification) {
	for _, x := range ns {
		if x != nil {
			x.Notify(n)
		}
	}
}

// LogNotifier writes notifications to log, at warn level for danger and
// info otherwise.
func LogNotifier(log *zap.SugaredLogger) Notifier {
	return NotifierFunc(func(n Notification) {
		kv := []interface{}{"wizard", n.Kind, "session", n.Session, "severity", n.Severity}
		if n.Severity == validate.SeverityDanger {
			log.Warnw(n.Message, kv...)
			return
		}
		log.Infow(n.Message, kv...)
	})
}
