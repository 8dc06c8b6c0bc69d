// Package wizard implements the three step registration flows. A Schema
// describes one entity kind (fields, step rules, messages), a State holds
// the values typed so far and a Controller moves between steps, validating
// the current step before every advance.
package wizard

import (
	"fmt"
	"strings"

	"github.com/jask/cadastro/internal/format"
)

// Kind identifies which registration flow a wizard runs.
type Kind string

const (
	KindProfessor Kind = "professor"
	KindAluno     Kind = "aluno"
)

// Kinds lists every flow in tab order.
func Kinds() []Kind { return []Kind{KindProfessor, KindAluno} }

// ParseKind accepts a kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindProfessor:
		return KindProfessor, nil
	case KindAluno:
		return KindAluno, nil
	}
	return "", fmt.Errorf("unknown wizard %q (want %q or %q)", s, KindProfessor, KindAluno)
}

// Step is a 1-based wizard step.
type Step int

const (
	StepBasics  Step = 1
	StepContact Step = 2
	StepDetails Step = 3

	FirstStep = StepBasics
	LastStep  = StepDetails
)

func (s Step) Valid() bool { return s >= FirstStep && s <= LastStep }

// Field names one value in a State.
type Field string

const (
	FieldPhoto          Field = "photo"
	FieldFullName       Field = "full_name"
	FieldRegistrationID Field = "registration_id"
	FieldTaxID          Field = "tax_id"
	FieldPhone          Field = "phone"
	FieldEmail          Field = "email"
	FieldAddress        Field = "address"
	FieldClassName      Field = "class_name"
	FieldInternship     Field = "internship"
	FieldSubject        Field = "subject"
	FieldEducation      Field = "education"
	FieldInstitution    Field = "institution"
)

// InputMode hints how a host should collect a field.
type InputMode int

const (
	InputText InputMode = iota
	InputPhoto
	InputNumeric
	InputPhone
	InputEmail
)

// FieldSpec is the static description of one field.
type FieldSpec struct {
	Field       Field
	Step        Step
	Label       string
	Placeholder string
	Mode        InputMode
	MaxLen      int
	// Format, when set, is applied to every write of the field.
	Format func(string) string
}

// Schema describes one registration flow.
type Schema struct {
	Kind    Kind
	Title   string
	Success string
	Fields  []FieldSpec
	rules   map[Step]Rule
}

// SchemaFor returns the schema of kind.
func SchemaFor(kind Kind) (*Schema, error) {
	switch kind {
	case KindProfessor:
		return professorSchema, nil
	case KindAluno:
		return alunoSchema, nil
	}
	return nil, fmt.Errorf("unknown wizard %q", kind)
}

// ActiveFields returns the fields rendered on step, in display order.
func (s *Schema) ActiveFields(step Step) []FieldSpec {
	var out []FieldSpec
	for _, f := range s.Fields {
		if f.Step == step {
			out = append(out, f)
		}
	}
	return out
}

// Spec looks up a field owned by this schema.
func (s *Schema) Spec(field Field) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Field == field {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// StepTitle is the heading shown above a step, e.g.
// "Cadastro de Aluno - Etapa 2/3".
func (s *Schema) StepTitle(step Step) string {
	return fmt.Sprintf("%s - Etapa %d/%d", s.Title, step, LastStep)
}

var professorSchema = &Schema{
	Kind:    KindProfessor,
	Title:   "Cadastro de Professor",
	Success: "Cadastro de professor concluído!",
	Fields: []FieldSpec{
		{Field: FieldPhoto, Step: StepBasics, Label: "Foto:", Placeholder: "Adicionar Foto", Mode: InputPhoto},
		{Field: FieldFullName, Step: StepBasics, Label: "Nome completo:", Placeholder: "Digite o nome"},
		{Field: FieldTaxID, Step: StepBasics, Label: "CPF:", Placeholder: "000.000.000-00", Mode: InputNumeric, MaxLen: 14, Format: format.TaxID},
		{Field: FieldPhone, Step: StepContact, Label: "Telefone:", Placeholder: "(11) 99999-9999", Mode: InputPhone, MaxLen: 15, Format: format.Phone},
		{Field: FieldEmail, Step: StepContact, Label: "Email:", Placeholder: "professor@email.com", Mode: InputEmail},
		{Field: FieldSubject, Step: StepDetails, Label: "Disciplina:", Placeholder: "Ex: Matemática"},
		{Field: FieldEducation, Step: StepDetails, Label: "Formação:", Placeholder: "Ex: Licenciatura em Física"},
		{Field: FieldInstitution, Step: StepDetails, Label: "Instituição:", Placeholder: "Nome da instituição"},
	},
	rules: map[Step]Rule{
		StepBasics:  professorBasics,
		StepContact: contact(FieldPhone, FieldEmail),
		StepDetails: details(FieldSubject, FieldEducation, FieldInstitution),
	},
}

var alunoSchema = &Schema{
	Kind:    KindAluno,
	Title:   "Cadastro de Aluno",
	Success: "Cadastro realizado com sucesso!",
	Fields: []FieldSpec{
		{Field: FieldPhoto, Step: StepBasics, Label: "Foto:", Placeholder: "Adicionar Foto", Mode: InputPhoto},
		{Field: FieldFullName, Step: StepBasics, Label: "Nome completo:", Placeholder: "Digite o nome"},
		{Field: FieldRegistrationID, Step: StepBasics, Label: "RM:", Placeholder: "Ex: 123456", Mode: InputNumeric},
		{Field: FieldPhone, Step: StepContact, Label: "Telefone:", Placeholder: "(11) 99999-9999", Mode: InputPhone, MaxLen: 15, Format: format.Phone},
		{Field: FieldEmail, Step: StepContact, Label: "Email:", Placeholder: "exemplo@email.com", Mode: InputEmail},
		{Field: FieldAddress, Step: StepContact, Label: "Endereço:", Placeholder: "Rua, número, bairro..."},
		{Field: FieldClassName, Step: StepDetails, Label: "Turma:", Placeholder: "Ex: 3ºA"},
		{Field: FieldInternship, Step: StepDetails, Label: "Estágio:", Placeholder: "Empresa ou área do estágio"},
	},
	rules: map[Step]Rule{
		StepBasics:  basics(FieldRegistrationID),
		StepContact: contact(FieldPhone, FieldEmail, FieldAddress),
		StepDetails: details(FieldClassName, FieldInternship),
	},
}
