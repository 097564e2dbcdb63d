package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// termNotifier prints session messages as single styled lines
type termNotifier struct {
	out io.Writer
}

func (n termNotifier) Error(msg string) {
	fmt.Fprintln(n.out, errorStyle.Render("✗ "+msg))
}

func (n termNotifier) Info(msg string) {
	fmt.Fprintln(n.out, infoStyle.Render("✓ "+msg))
}
