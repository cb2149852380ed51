package shell

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"gosh/internal/job"
)

// styles colors the prompt and job announcements. With color off every
// renderer is the identity, so output stays a stable two-column layout
// either way.
type styles struct {
	color      bool
	promptText lipgloss.Style
	running    lipgloss.Style
	stopped    lipgloss.Style
	done       lipgloss.Style
	failed     lipgloss.Style
}

func newStyles(color bool) styles {
	return styles{
		color:      color,
		promptText: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		running:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		stopped:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		done:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		failed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func (st styles) prompt(text string) string {
	if !st.color {
		return text
	}
	return st.promptText.Render(text)
}

func (st styles) notice(n job.Notice) string {
	if !st.color {
		return n.String()
	}
	var style lipgloss.Style
	switch n.Status.State {
	case job.Running:
		style = st.running
	case job.Stopped:
		style = st.stopped
	case job.Exited:
		if n.Status.Code == 0 {
			style = st.done
		} else {
			style = st.failed
		}
	default:
		style = st.failed
	}
	return fmt.Sprintf("[%d]  %s  %s", n.ID, style.Render(n.Status.Label()), n.Display)
}
