package wizard

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when writing a field the flow does not own.
var ErrUnknownField = errors.New("unknown field")

// PhotoRef is an opaque handle returned by a PhotoPicker. It is stored
// verbatim and never interpreted.
type PhotoRef string

// State holds the current step and every value of one wizard. Values are
// written only through Set and SetPhoto; the step only moves through a
// Controller.
type State struct {
	schema   *Schema
	step     Step
	photo    PhotoRef
	hasPhoto bool
	values   map[Field]string
}

// NewState returns an empty state on the first step.
func NewState(kind Kind) (*State, error) {
	schema, err := SchemaFor(kind)
	if err != nil {
		return nil, err
	}
	s := &State{schema: schema}
	s.Reset()
	return s, nil
}

func (s *State) Kind() Kind { return s.schema.Kind }

func (s *State) Schema() *Schema { return s.schema }

func (s *State) Step() Step { return s.step }

// Photo returns the selected photo, if any.
func (s *State) Photo() (PhotoRef, bool) { return s.photo, s.hasPhoto }

// SetPhoto stores ref as the selected photo.
func (s *State) SetPhoto(ref PhotoRef) {
	s.photo, s.hasPhoto = ref, true
}

// Value returns the stored value of field, "" when unset.
func (s *State) Value(field Field) string { return s.values[field] }

// Set stores raw for field, applying the field's formatter first, and
// returns the stored value.
func (s *State) Set(field Field, raw string) (string, error) {
	spec, ok := s.schema.Spec(field)
	if !ok || spec.Mode == InputPhoto {
		return "", fmt.Errorf("%w %q for %s", ErrUnknownField, field, s.schema.Kind)
	}
	v := raw
	if spec.Format != nil {
		v = spec.Format(raw)
	}
	s.values[field] = v
	return v, nil
}

// Values returns a copy of every text value, keyed by field.
func (s *State) Values() map[Field]string {
	out := make(map[Field]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Reset returns the state to its freshly mounted form.
func (s *State) Reset() {
	s.step = FirstStep
	s.photo, s.hasPhoto = "", false
	s.values = make(map[Field]string, len(s.schema.Fields))
}

// present reports whether field holds a usable value.
func (s *State) present(field Field) bool {
	if field == FieldPhoto {
		return s.hasPhoto && s.photo != ""
	}
	return !blank(s.values[field])
}
