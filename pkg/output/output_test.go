package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureOutput redirects package output during f.
func captureOutput(f func()) string {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(nil)
	f()
	return buf.String()
}

func TestSuccess(t *testing.T) {
	got := captureOutput(func() { Success("fitted") })
	assert.Contains(t, got, "✓")
	assert.Contains(t, got, "fitted")
}

func TestError(t *testing.T) {
	got := captureOutput(func() { Error("broken") })
	assert.Contains(t, got, "✗")
	assert.Contains(t, got, "broken")
}

func TestInfoAndStep(t *testing.T) {
	got := captureOutput(func() {
		Info("Next steps:")
		Step("kestrel transform")
	})
	assert.Contains(t, got, "Next steps:")
	assert.Contains(t, got, "   kestrel transform")
}

func TestVerbose(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(false)
	assert.Empty(t, captureOutput(func() { Verbose("hidden") }))

	SetVerbose(true)
	assert.Contains(t, captureOutput(func() { Verbose("shown") }), "shown")
}

func TestCounts(t *testing.T) {
	got := captureOutput(func() {
		Counts("Raw types", []Count{
			{Label: "int", Value: 3},
			{Label: "datetime", Value: 1, Note: "timestamp"},
		})
	})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Raw types")
	assert.Contains(t, lines[1], "int")
	assert.Contains(t, lines[1], "3")
	assert.Contains(t, lines[2], "timestamp")
}

func TestCounts_Empty(t *testing.T) {
	got := captureOutput(func() { Counts("Special types", nil) })
	assert.Contains(t, got, "(none)")
}

func TestRunWithSpinner_NotATerminal(t *testing.T) {
	orig := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = orig }()

	var ran bool
	got := captureOutput(func() {
		err := RunWithSpinner("fitting", func() error {
			ran = true
			return nil
		})
		assert.NoError(t, err)
	})
	assert.True(t, ran)
	assert.Contains(t, got, "✓ fitting")

	boom := errors.New("boom")
	got = captureOutput(func() {
		err := RunWithSpinner("fitting", func() error { return boom })
		assert.ErrorIs(t, err, boom)
	})
	assert.Contains(t, got, "✗ fitting")
}

func TestSpinnerModel(t *testing.T) {
	m := newSpinnerModel("working")
	assert.Contains(t, m.View(), "working...")

	next, cmd := m.Update(spinnerDoneMsg{err: errors.New("x")})
	require.NotNil(t, cmd)
	final := next.(*spinnerModel)
	assert.True(t, final.done)
	assert.Contains(t, final.View(), "✗ working")

	_, cmd = final.Update(spinner.TickMsg{})
	assert.Nil(t, cmd, "no more ticks once done")
}
