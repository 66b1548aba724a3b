package display

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipeflow/internal/domain"
)

// Status colours for the tray. The bar gradient is solid per status so a
// glance tells active from warning from done.
var statusColor = map[domain.TimerStatus]string{
	domain.TimerActive:   "#86efac",
	domain.TimerWarning:  "#fde68a",
	domain.TimerComplete: "#fca5a5",
}

const barWidth = 16

// TrayLine renders one timer: name, MM:SS, a progress bar and a badge.
// Paused timers are dimmed.
func TrayLine(t domain.Timer) string {
	status := t.Status()
	color := statusColor[status]

	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)

	clock := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(domain.FormatClock(t.RemainingSeconds))
	name := labelStyle.Render(t.Name)

	var badge string
	switch {
	case status == domain.TimerComplete:
		badge = timerDoneStyle.Render("Done!")
	case !t.Running:
		badge = timerPendingStyle.Render("paused")
	}

	parts := []string{name, clock, bar.ViewAs(t.Progress())}
	if badge != "" {
		parts = append(parts, badge)
	}
	if t.LinkedIngredient != "" {
		parts = append(parts, secondaryStyle.Render("· "+t.LinkedIngredient))
	}
	return strings.Join(parts, " ")
}

// RenderTray renders every timer on its own line inside the tray bar.
// Timers are ordered by step so the tray doesn't shuffle between ticks.
func RenderTray(timers []domain.Timer, width int) string {
	if len(timers) == 0 {
		return ""
	}
	sorted := slices.Clone(timers)
	slices.SortStableFunc(sorted, func(a, b domain.Timer) int {
		return a.StepIndex - b.StepIndex
	})

	if width <= 0 {
		width = 80
	}
	lines := make([]string, len(sorted))
	for i, t := range sorted {
		lines[i] = barBg.Width(width).Render(" " + TrayLine(t))
	}
	return strings.Join(lines, "\n")
}

// WindowTitle summarises the timers for the terminal title.
func WindowTitle(timers []domain.Timer) string {
	if len(timers) == 0 {
		return "RecipeFlow"
	}
	p := make([]string, len(timers))
	for i, t := range timers {
		if t.Status() == domain.TimerComplete {
			p[i] = t.Name + ": DONE!"
		} else {
			p[i] = t.Name + ": " + domain.FormatClock(t.RemainingSeconds)
		}
	}
	return "RecipeFlow | " + strings.Join(p, " | ")
}
