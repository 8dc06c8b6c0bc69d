package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	valid := []string{"a@b.com", "ana.souza@escola.edu.br", "x+tag@mail.co"}
	invalid := []string{"", "a@b", "@b.com", "a@.com", "a@b.", "a b@c.com", "a@b@c.com", "ana", "a@b .com"}
	for _, s := range valid {
		require.True(t, Email(s), "Email(%q)", s)
	}
	for _, s := range invalid {
		require.False(t, Email(s), "Email(%q)", s)
	}
}

func TestPhonePolicy(t *testing.T) {
	require.True(t, Phone("(11) 99999-9999", PhoneMobile))
	require.False(t, Phone("(11) 9999-9999", PhoneMobile))
	require.True(t, Phone("(11) 9999-9999", PhoneAny))
	require.True(t, Phone("(11) 99999-9999", PhoneAny))
	require.False(t, Phone("(11) 9999", PhoneAny))
	require.False(t, Phone("11999999999", PhoneAny))

	p, err := ParsePhonePolicy("")
	require.NoError(t, err)
	require.Equal(t, PhoneMobile, p)
	p, err = ParsePhonePolicy(" ANY ")
	require.NoError(t, err)
	require.Equal(t, PhoneAny, p)
	_, err = ParsePhonePolicy("landline")
	require.Error(t, err)
}

func TestTaxID(t *testing.T) {
	require.True(t, TaxID("123.456.789-09"))
	require.False(t, TaxID("123.456.789-0"))
	require.False(t, TaxID("12345678909"))
	require.False(t, TaxID(""))
}

func TestErrorTaxonomy(t *testing.T) {
	var err error = Missing(SeverityWarning, "Preencha todos os campos da etapa 2.", "phone")
	require.True(t, errors.Is(err, ErrMissingField))
	require.False(t, errors.Is(err, ErrInvalidFormat))

	ve, ok := AsError(err)
	require.True(t, ok)
	require.Equal(t, SeverityWarning, ve.Severity)
	require.Equal(t, []string{"phone"}, ve.Fields)
	require.Contains(t, err.Error(), "phone")

	err = Invalid("email", "Email inválido.")
	require.ErrorIs(t, err, ErrInvalidFormat)
	ve, _ = AsError(err)
	require.Equal(t, SeverityDanger, ve.Severity)

	_, ok = AsError(errors.New("other"))
	require.False(t, ok)
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []Severity{SeverityWarning, SeverityDanger, SeveritySuccess} {
		got, err := ParseSeverity(string(s))
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
	_, err := ParseSeverity("info")
	require.Error(t, err)
}

func TestBlank(t *testing.T) {
	require.True(t, Blank(""))
	require.True(t, Blank(" \t\n"))
	require.False(t, Blank(" Ana "))
}

func TestSuggestEmail(t *testing.T) {
	got, ok := SuggestEmail("ana@gmial.com")
	require.True(t, ok)
	require.Equal(t, "ana@gmail.com", got)

	got, ok = SuggestEmail("ana@hotmal.com")
	require.True(t, ok)
	require.Equal(t, "ana@hotmail.com", got)

	_, ok = SuggestEmail("ana@gmail.com")
	require.False(t, ok)
	_, ok = SuggestEmail("ana@escola.edu.br")
	require.False(t, ok)
	_, ok = SuggestEmail("ana")
	require.False(t, ok)
	_, ok = SuggestEmail("ana@")
	require.False(t, ok)
}
