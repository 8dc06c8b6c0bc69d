package wizard

import (
	"fmt"

	"github.com/jask/cadastro/internal/validate"
)

const (
	msgInvalidTaxID = "CPF inválido. Digite no formato xxx.xxx.xxx-xx"
	msgInvalidPhone = "Telefone inválido. Digite no formato (XX) XXXXX-XXXX"
	msgInvalidEmail = "Email inválido."
)

func msgIncomplete(step Step) string {
	return fmt.Sprintf("Preencha todos os campos da etapa %d.", step)
}

var blank = validate.Blank

// Rule judges one step. It returns nil or a *validate.Error; the first
// failing check wins and presence is checked before format.
type Rule func(s *State, policy validate.PhonePolicy) error

// Validate runs the rule of step against s.
func (sc *Schema) Validate(step Step, s *State, policy validate.PhonePolicy) error {
	rule, ok := sc.rules[step]
	if !ok {
		return fmt.Errorf("%s has no step %d", sc.Kind, step)
	}
	return rule(s, policy)
}

func missingFields(s *State, fields ...Field) []string {
	var out []string
	for _, f := range fields {
		if !s.present(f) {
			out = append(out, string(f))
		}
	}
	return out
}

// basics requires a photo, a name and the given identifier.
func basics(id Field) Rule {
	return func(s *State, _ validate.PhonePolicy) error {
		if missing := missingFields(s, FieldPhoto, FieldFullName, id); len(missing) > 0 {
			return validate.Missing(validate.SeverityDanger, msgIncomplete(StepBasics), missing...)
		}
		return nil
	}
}

func professorBasics(s *State, policy validate.PhonePolicy) error {
	if err := basics(FieldTaxID)(s, policy); err != nil {
		return err
	}
	if !validate.TaxID(s.Value(FieldTaxID)) {
		return validate.Invalid(string(FieldTaxID), msgInvalidTaxID)
	}
	return nil
}

// contact requires every field, then checks phone and email shapes. A
// missing contact field is only a warning.
func contact(required ...Field) Rule {
	return func(s *State, policy validate.PhonePolicy) error {
		if missing := missingFields(s, required...); len(missing) > 0 {
			return validate.Missing(validate.SeverityWarning, msgIncomplete(StepContact), missing...)
		}
		if !validate.Phone(s.Value(FieldPhone), policy) {
			return validate.Invalid(string(FieldPhone), msgInvalidPhone)
		}
		if !validate.Email(s.Value(FieldEmail)) {
			return validate.Invalid(string(FieldEmail), msgInvalidEmail)
		}
		return nil
	}
}

func details(required ...Field) Rule {
	return func(s *State, _ validate.PhonePolicy) error {
		if missing := missingFields(s, required...); len(missing) > 0 {
			return validate.Missing(validate.SeverityDanger, msgIncomplete(StepDetails), missing...)
		}
		return nil
	}
}
