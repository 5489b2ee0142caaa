package input

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		answer     string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"YES upper", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty default no", "\n", false, false},
		{"empty default yes", "\n", true, true},
		{"eof default yes", "", true, true},
		{"answer without newline", "yes", false, true},
		{"garbage", "maybe\n", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.answer), &out)

			assert.Equal(t, tt.want, p.Confirm("Overwrite?", tt.defaultYes))
			assert.Contains(t, out.String(), "Overwrite?")
		})
	}
}

func TestConfirm_Hint(t *testing.T) {
	var out bytes.Buffer
	NewPrompter(strings.NewReader("\n"), &out).Confirm("Go?", true)
	assert.Contains(t, out.String(), "[Y/n]")

	out.Reset()
	NewPrompter(strings.NewReader("\n"), &out).Confirm("Go?", false)
	assert.Contains(t, out.String(), "[y/N]")
}
