package fel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNIT(t *testing.T) {
	assert.Equal(t, "1234567K", NormalizeNIT(" 1234567-k "))
	assert.Equal(t, "12345679", NormalizeNIT("1.234.567-9"))
	assert.Equal(t, "CF", NormalizeNIT("c/f"))
}

func TestComputeNITCheckDigit(t *testing.T) {
	tests := []struct {
		body string
		want byte
	}{
		{"1234567", '9'},
		{"576937", 'K'},
		{"1", '9'},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, err := ComputeNITCheckDigit(tt.body)
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), string(got))
		})
	}

	_, err := ComputeNITCheckDigit("")
	assert.Error(t, err)
	_, err = ComputeNITCheckDigit("12A4")
	assert.Error(t, err)
}

func TestValidateNIT(t *testing.T) {
	valid := []string{"CF", "cf", "1234567-9", "12345679", "576937-K", "576937k"}
	for _, n := range valid {
		assert.NoError(t, ValidateNIT(n), n)
	}
	invalid := []string{"", "1", "1234567-0", "576937-1"}
	for _, n := range invalid {
		assert.Error(t, ValidateNIT(n), n)
	}
}

func TestIsValidDocumentType(t *testing.T) {
	assert.True(t, IsValidDocumentType(DocumentFACT))
	assert.True(t, IsValidDocumentType(DocumentNCRE))
	assert.False(t, IsValidDocumentType("XXXX"))
}
