package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/kanso-habit-tracker/internal/core/domain"
)

const (
	IconFlame = "🔥"
	IconBook  = "📚"
	IconCheck = "✅"
	IconTodo  = "⬜"
	IconWarn  = "⚠️"
	IconError = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Muted = lipgloss.NewStyle().Foreground(cMuted)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// HabitLine renders one checklist row.
func HabitLine(h domain.Habit) string {
	mark := IconTodo
	name := h.Name
	if h.Completed {
		mark = IconCheck
		name = Good.Render(name)
	}
	return fmt.Sprintf("%s %s %s", mark, name, Muted.Render("("+string(h.Category)+")"))
}

// StreakText colours a streak length: zero is muted, a week or more is good.
func StreakText(days int) string {
	label := fmt.Sprintf("%d day", days)
	if days != 1 {
		label += "s"
	}
	switch {
	case days == 0:
		return Muted.Render(label)
	case days >= 7:
		return Good.Render(label)
	default:
		return Warn.Render(label)
	}
}

// StreakPanel boxes both streaks for terminal output.
func StreakPanel(s domain.Streaks) string {
	body := strings.Join([]string{
		LabelValue(IconFlame+" Exercise", StreakText(s.Exercise)),
		LabelValue(IconBook+" Learning", StreakText(s.Learning)),
	}, "\n")
	return Panel.Render(body)
}
