package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already normalized",
			input:    "the intelligent investor",
			expected: "the intelligent investor",
		},
		{
			name:     "case folded",
			input:    "The Intelligent INVESTOR",
			expected: "the intelligent investor",
		},
		{
			name:     "leading and trailing whitespace trimmed",
			input:    "  rich dad poor dad  ",
			expected: "rich dad poor dad",
		},
		{
			name:     "inner whitespace collapsed",
			input:    "rich   dad\tpoor\n dad",
			expected: "rich dad poor dad",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \t\n  ",
			expected: "",
		},
		{
			name:     "multibyte title",
			input:    "  金持ち父さん　Poor Dad ",
			expected: "金持ち父さん poor dad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTitle(tt.input))
		})
	}
}

func TestNormalizeTitleIdempotent(t *testing.T) {
	inputs := []string{"The  Intelligent Investor", " A Random Walk ", "ＦＩＲＥ 最強の早期リタイア術"}

	for _, in := range inputs {
		once := NormalizeTitle(in)
		assert.Equal(t, once, NormalizeTitle(once))
	}
}
