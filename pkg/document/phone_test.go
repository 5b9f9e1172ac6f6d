package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/t2-user-service/pkg/document"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "473533333", document.NormalizePhone("(47) 3533-333"))
	assert.Equal(t, "47999991234", document.NormalizePhone("+(47) 99999-1234"))
	assert.Equal(t, "", document.NormalizePhone("--"))
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "one digit", input: "4", want: "(4"},
		{name: "area code", input: "47", want: "(47"},
		{name: "area code and one digit", input: "473", want: "(47) 3"},
		{name: "five digits", input: "47353", want: "(47) 353"},
		{name: "six digits", input: "473533", want: "(47) 3533-"},
		{name: "nine digits", input: "473533333", want: "(47) 3533-333"},
		{name: "landline", input: "4735333333", want: "(47) 3533-3333"},
		{name: "mobile", input: "47999991234", want: "(47) 99999-1234"},
		{name: "extra digits dropped", input: "4799999123456", want: "(47) 99999-1234"},
		{name: "leading trunk zero", input: "0473533333", want: "(47) 3533-333"},
		{name: "already masked", input: "(47) 3533-333", want: "(47) 3533-333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, document.FormatPhone(tt.input))
		})
	}
}

func TestFormatPhone_NormalizeRoundTrip(t *testing.T) {
	// every length from 1 to 11 digits without a trunk zero
	const digits = "47999991234"
	for n := 1; n <= len(digits); n++ {
		x := digits[:n]
		assert.Equal(t, x, document.NormalizePhone(document.FormatPhone(x)), "input %q", x)
	}
	for _, x := range []string{"4735333333", "11988887777", "(47) 3533-333"} {
		norm := document.NormalizePhone(x)
		assert.Equal(t, norm, document.NormalizePhone(document.FormatPhone(norm)), "input %q", x)
	}
}

func TestFormatPhone_LossyInputs(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{name: "trunk zero is dropped", input: "0473533333", want: "473533333"},
		{name: "twelfth digit is dropped", input: "479999912345", want: "47999991234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, document.NormalizePhone(document.FormatPhone(tt.input)))
		})
	}
}
