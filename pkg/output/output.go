// Package output provides styled terminal output for the kestrel CLI.
//
// Functions use lipgloss for styling but hide the details from callers. Output
// goes to a package-level writer (stdout by default) so commands and tests can
// redirect it.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	verboseMode bool
	out         io.Writer = os.Stdout
)

// SetVerbose enables or disables verbose output for debugging.
func SetVerbose(v bool) {
	verboseMode = v
}

// SetWriter redirects all output. A nil writer restores stdout.
func SetWriter(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// Writer returns the current output writer.
func Writer() io.Writer {
	return out
}

// Success prints a success message in green.
//
// Example:
//
//	output.Success("Fitted identity generator: 4 features")
func Success(msg string) {
	fmt.Fprintln(out, successStyle.Render("✓ "+msg))
}

// Error prints an error message in red.
func Error(msg string) {
	fmt.Fprintln(out, errorStyle.Render("✗ "+msg))
}

// Info prints an informational message in cyan.
func Info(msg string) {
	fmt.Fprintln(out, infoStyle.Render("ℹ️  "+msg))
}

// Step prints an indented step message in gray.
func Step(msg string) {
	fmt.Fprintln(out, stepStyle.Render("   "+msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(out, stepStyle.Render("… "+msg))
	}
}

// Count is one row of a Counts section.
type Count struct {
	Label string
	Value int
	Note  string
}

// Counts prints a titled, aligned list of labeled counts.
//
// Example:
//
//	output.Counts("Raw types", []output.Count{{Label: "int", Value: 3}})
//	// Raw types
//	//   int    3
func Counts(title string, rows []Count) {
	fmt.Fprintln(out, headerStyle.Render(title))
	if len(rows) == 0 {
		Step("(none)")
		return
	}

	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Label))
	}

	for _, r := range rows {
		label := tagStyle.Render(r.Label) + strings.Repeat(" ", width-lipgloss.Width(r.Label))
		line := fmt.Sprintf("  %s  %d", label, r.Value)
		if r.Note != "" {
			line += "  " + stepStyle.Render(r.Note)
		}
		fmt.Fprintln(out, line)
	}
}
