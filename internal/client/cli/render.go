package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/gotodo/internal/todov1"
)

var (
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(6).Align(lipgloss.Right)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func checkbox(complete bool) string {
	if complete {
		return doneStyle.Render("[x]")
	}
	return pendingStyle.Render("[ ]")
}

// renderRow formats a todo as one list line.
func renderRow(t *todov1.Todo) string {
	return fmt.Sprintf("%s %s %s", idStyle.Render(fmt.Sprintf("#%d", t.ID)), checkbox(t.Complete), titleStyle.Render(t.Title))
}

func renderList(todos []*todov1.Todo) string {
	if len(todos) == 0 {
		return mutedStyle.Render("no todos")
	}
	rows := make([]string, 0, len(todos))
	for _, t := range todos {
		rows = append(rows, renderRow(t))
	}
	return strings.Join(rows, "\n")
}

// renderCard formats a single todo with its description.
func renderCard(t *todov1.Todo) string {
	status := "pending"
	if t.Complete {
		status = "complete"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s %s", checkbox(t.Complete), titleStyle.Render(t.Title)),
		mutedStyle.Render(fmt.Sprintf("#%d · %s", t.ID, status)),
		"",
		t.Description,
	)
	return cardStyle.Render(body)
}

func renderError(err error) string {
	return errorStyle.Render("error: " + err.Error())
}
