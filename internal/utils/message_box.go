package utils

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// MessageType selects the style of a message box.
type MessageType int

const (
	// InfoMessage renders an informational box.
	InfoMessage MessageType = iota
	// SuccessMessage renders a success box.
	SuccessMessage
	// WarningMessage renders a warning box.
	WarningMessage
	// ErrorMessage renders an error box.
	ErrorMessage
)

const (
	infoPrefix    = "ℹ"
	successPrefix = "✓"
	warningPrefix = "⚠"
	errorPrefix   = "✗"
)

var boxColors = map[MessageType]lipgloss.Color{
	InfoMessage:    lipgloss.Color("86"),
	SuccessMessage: lipgloss.Color("42"),
	WarningMessage: lipgloss.Color("178"),
	ErrorMessage:   lipgloss.Color("196"),
}

var boxPrefixes = map[MessageType]string{
	InfoMessage:    infoPrefix,
	SuccessMessage: successPrefix,
	WarningMessage: warningPrefix,
	ErrorMessage:   errorPrefix,
}

// MessageBox renders a bordered box containing a title line and any
// number of detail lines, styled by message type.
func MessageBox(messageType MessageType, title string, lines ...string) string {
	color := boxColors[messageType]
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)

	width := terminalWidth() - 8
	if width > 0 {
		style = style.MaxWidth(width)
	}

	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	content := []string{titleStyle.Render(boxPrefixes[messageType] + " " + title)}
	content = append(content, lines...)

	return style.Render(strings.Join(content, "\n"))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
