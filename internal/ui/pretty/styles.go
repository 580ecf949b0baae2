// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultTermWidth is used when the output is not a terminal.
const DefaultTermWidth = 100

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Document styles
	Heading        lipgloss.Style
	CollapseMarker lipgloss.Style
	ScrollPrefix   lipgloss.Style
	Bullet         lipgloss.Style
	Bold           lipgloss.Style
	Italic         lipgloss.Style
	Underline      lipgloss.Style
	Strikethrough  lipgloss.Style
	Link           lipgloss.Style
	Component      lipgloss.Style
	ComponentError lipgloss.Style
	Cursor         lipgloss.Style
	Selection      lipgloss.Style

	// Gutter
	LineNumber lipgloss.Style
	FoldMarker lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	FilePath     lipgloss.Style
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style
	Warning      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableFolded    lipgloss.Style

	// Misc
	Dim lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Heading:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		CollapseMarker: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		ScrollPrefix:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bullet:         lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Bold:           lipgloss.NewStyle().Bold(true),
		Italic:         lipgloss.NewStyle().Italic(true),
		Underline:      lipgloss.NewStyle().Underline(true),
		Strikethrough:  lipgloss.NewStyle().Strikethrough(true),
		Link:           lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		Component:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		ComponentError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Cursor:         lipgloss.NewStyle().Reverse(true),
		Selection:      lipgloss.NewStyle().Background(lipgloss.Color("238")),

		LineNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		FoldMarker: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		FilePath:     lipgloss.NewStyle().Bold(true),
		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableFolded:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),

		Dim: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Heading:        plain,
		CollapseMarker: plain,
		ScrollPrefix:   plain,
		Bullet:         plain,
		Bold:           plain,
		Italic:         plain,
		Underline:      plain,
		Strikethrough:  plain,
		Link:           plain,
		Component:      plain,
		ComponentError: plain,
		Cursor:         plain,
		Selection:      plain,
		LineNumber:     plain,
		FoldMarker:     plain,
		DiffHeader:     plain,
		DiffHunk:       plain,
		DiffAdd:        plain,
		DiffRemove:     plain,
		DiffContext:    plain,
		FilePath:       plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		Warning:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		TableFolded:    plain,
		Dim:            plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the column count of writer when it is a terminal,
// or DefaultTermWidth otherwise.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return DefaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultTermWidth
	}
	return width
}
