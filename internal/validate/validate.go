// Package validate holds the failure taxonomy and format checks shared by
// the wizard step rules.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Severity classifies a notification. Validation failures are either
// warning or danger; success is reserved for a completed submission.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeveritySuccess Severity = "success"
)

// ParseSeverity maps a stored or user supplied name back to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityWarning:
		return SeverityWarning, nil
	case SeverityDanger:
		return SeverityDanger, nil
	case SeveritySuccess:
		return SeveritySuccess, nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

var (
	// ErrMissingField marks a required value that is absent or blank.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidFormat marks a present value that fails its pattern.
	ErrInvalidFormat = errors.New("invalid format")
)

// Error is the verdict of a failed step check. It unwraps to
// ErrMissingField or ErrInvalidFormat.
type Error struct {
	Kind     error
	Severity Severity
	Fields   []string
	Message  string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v (%s): %s", e.Kind, strings.Join(e.Fields, ", "), e.Message)
}

func (e *Error) Unwrap() error { return e.Kind }

// Missing reports blank required fields.
func Missing(sev Severity, message string, fields ...string) *Error {
	return &Error{Kind: ErrMissingField, Severity: sev, Fields: fields, Message: message}
}

// Invalid reports a field whose value fails its format check. Format
// failures are always danger.
func Invalid(field, message string) *Error {
	return &Error{Kind: ErrInvalidFormat, Severity: SeverityDanger, Fields: []string{field}, Message: message}
}

// AsError extracts the step verdict from err, if there is one.
func AsError(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Blank reports whether s is empty after trimming surrounding whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// PhonePolicy selects which complete phone shapes are accepted.
type PhonePolicy string

const (
	// PhoneMobile accepts only the 11 digit "(DD) DDDDD-DDDD" shape.
	PhoneMobile PhonePolicy = "mobile"
	// PhoneAny also accepts the 10 digit landline shape "(DD) DDDD-DDDD".
	PhoneAny PhonePolicy = "any"
)

// ParsePhonePolicy accepts "mobile" or "any"; empty means mobile.
func ParsePhonePolicy(s string) (PhonePolicy, error) {
	switch PhonePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PhoneMobile:
		return PhoneMobile, nil
	case PhoneAny:
		return PhoneAny, nil
	}
	return "", fmt.Errorf("unknown phone policy %q (want %q or %q)", s, PhoneMobile, PhoneAny)
}

var (
	taxIDRegex       = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	mobilePhoneRegex = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
	anyPhoneRegex    = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
	emailRegex       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// TaxID reports whether s is a fully formatted CPF. Check digits are not
// verified.
func TaxID(s string) bool {
	return taxIDRegex.MatchString(s)
}

// Phone reports whether s is a complete phone number under policy.
func Phone(s string, policy PhonePolicy) bool {
	if policy == PhoneAny {
		return anyPhoneRegex.MatchString(s)
	}
	return mobilePhoneRegex.MatchString(s)
}

// Email performs a shape check only: no whitespace, a single "@" with a
// non-empty local part, and a dotted domain.
func Email(s string) bool {
	return emailRegex.MatchString(s)
}
