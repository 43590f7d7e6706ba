package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short change unchanged", "Enabled: null >>> true", 40, "Enabled: null >>> true"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long value cut", "Description: old >>> a much longer description", 24, "Description: old >>> ..."},
		{"multi line value flattened", "Config: null >>> {\n  \"a\": 1\n}", 60, "Config: null >>> { \"a\": 1 }"},
		{"whitespace collapsed", "  RootURL:\t\thttps://x  ", 40, "RootURL: https://x"},
		{"runes not bytes", "Name: 日本語テスト", 9, "Name: ..."},
		{"empty", "", 10, ""},
		{"maxLen clamped", "hello", 0, "h..."},
		{"negative maxLen clamped", "hello", -5, "h..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.maxLen))
		})
	}
}

func TestTruncate_RuneLength(t *testing.T) {
	result := Truncate("日本語テスト", 5)
	assert.Equal(t, "日本...", result)
	assert.Len(t, []rune(result), 5)
}
