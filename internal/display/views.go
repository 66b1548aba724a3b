package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/filter"
	"github.com/hammamikhairi/recipeflow/internal/session"
)

// Catalog colour keys. Unknown keys fall back to the default accent.
var cuisineColor = map[string]string{
	"south-indian-green": "#4ade80",
	"north-indian-warm":  "#fb923c",
	"indian-chili":       "#f87171",
	"global-basil":       "#a3e635",
	"global-tomato":      "#fb7185",
	"global-teal":        "#2dd4bf",
}

const defaultAccent = "#94a3b8"

func accent(key string) lipgloss.Style {
	c, ok := cuisineColor[key]
	if !ok {
		c = defaultAccent
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// StepTimerLabel is the label of a step's timer button.
func StepTimerLabel(step domain.Step, running bool) string {
	if running {
		return "Timer Running"
	}
	return fmt.Sprintf("Start %dm Timer", step.TimerMin)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// RecipeList renders the heading, active filters and the numbered list of
// visible recipes. Numbers are 1-based positions in snap.Visible.
func RecipeList(snap session.Snapshot) []string {
	lines := []string{headingStyle.Render("  " + filter.Heading(snap.Selection))}

	if active := filter.ActiveFilters(snap.Selection); len(active) > 0 {
		lines = append(lines, secondaryStyle.Render("  Filters: "+strings.Join(active, "  ")))
	}
	lines = append(lines, secondaryStyle.Render(fmt.Sprintf("  %d of %d recipes", len(snap.Visible), snap.TotalRecipes)))

	if len(snap.Visible) == 0 {
		return append(lines, chatStyle.Render("  Nothing matches. Try \"clear\" to reset the filters."))
	}
	for i, r := range snap.Visible {
		var moods strings.Builder
		for _, m := range r.MoodTags {
			moods.WriteString(domain.MoodEmoji(m))
		}
		lines = append(lines, fmt.Sprintf("  %2d. %s  %s %s",
			i+1,
			primaryStyle.Render(r.Title),
			secondaryStyle.Render(fmt.Sprintf("%s · %dm · %s", r.Cuisine.Subregion, r.TotalTimeMin, r.Difficulty)),
			moods.String(),
		))
	}
	return lines
}

// CuisineMenu renders the region/subregion tree. The current selection is
// marked.
func CuisineMenu(groups []domain.CuisineGroup, sel domain.Selection) []string {
	var lines []string
	for _, g := range groups {
		lines = append(lines, headingStyle.Render("  "+g.Region))
		for _, sub := range g.Subregions {
			mark := "  "
			if sel.Region == g.Region && sel.Subregion == sub.Name {
				mark = "> "
			}
			lines = append(lines, fmt.Sprintf("   %s%s  %s", mark,
				accent(sub.Color).Render(sub.Name),
				secondaryStyle.Render(sub.Description)))
		}
	}
	var moods []string
	for _, m := range domain.Moods {
		moods = append(moods, m.Emoji+" "+m.Name)
	}
	lines = append(lines, secondaryStyle.Render("  Moods: "+strings.Join(moods, "  ")))
	return lines
}

// RecipeDetail renders the open recipe with completion marks and timer
// button labels. It returns nil when no recipe is open.
func RecipeDetail(snap session.Snapshot) []string {
	r := snap.Recipe
	if r == nil {
		return nil
	}

	lines := []string{
		headingStyle.Render("  " + r.Title),
		chatStyle.Render("  " + r.Description),
		secondaryStyle.Render(fmt.Sprintf("  %s / %s · %s · serves %d · %d min",
			r.Cuisine.Region, r.Cuisine.Subregion, r.Difficulty, r.Serves, r.TotalTimeMin)),
	}

	var badges []string
	badges = append(badges, r.Diet...)
	for _, m := range r.MoodTags {
		badges = append(badges, domain.MoodEmoji(m)+" "+m)
	}
	if len(badges) > 0 {
		lines = append(lines, secondaryStyle.Render("  "+strings.Join(badges, " · ")))
	}

	if len(r.Prerequisites) > 0 {
		lines = append(lines, "", headingStyle.Render("  Before you start"))
		for i, p := range r.Prerequisites {
			lines = append(lines, fmt.Sprintf("   %s %d. %s", checkbox(snap.PrerequisiteDone(i)), i+1, p))
		}
	}

	lines = append(lines, "", headingStyle.Render("  Ingredients"))
	for _, ing := range r.Ingredients {
		qty := strings.TrimSpace(ing.Qty + " " + ing.Unit)
		line := fmt.Sprintf("   • %s %s", ing.Name, secondaryStyle.Render(qty))
		if len(ing.Substitutions) > 0 {
			line += secondaryStyle.Render(" (or " + strings.Join(ing.Substitutions, ", ") + ")")
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", headingStyle.Render("  Steps"))
	for _, s := range r.Steps {
		lines = append(lines, fmt.Sprintf("   %s %d. %s %s", checkbox(snap.StepDone(s.Index)), s.Index, s.Emoji, primaryStyle.Render(s.Title)))
		lines = append(lines, secondaryStyle.Render("        "+s.Text))
		if s.HasTimer() {
			label := StepTimerLabel(s, snap.StepTimerRunning(s.Index))
			lines = append(lines, chatStyle.Render("        ["+label+"]"))
		}
	}

	n := r.Nutrition
	lines = append(lines, "", secondaryStyle.Render(fmt.Sprintf("  Per serving: %d kcal · protein %s · carbs %s · fat %s",
		n.Calories, n.Protein, n.Carbs, n.Fat)))
	return lines
}

// TimerList renders the timers with their 1-based numbers, as used by the
// pause/resume/reset/remove commands.
func TimerList(timers []domain.Timer) []string {
	if len(timers) == 0 {
		return []string{secondaryStyle.Render("  No timers.")}
	}
	lines := make([]string, len(timers))
	for i, t := range timers {
		lines[i] = fmt.Sprintf("  %d. %s", i+1, TrayLine(t))
	}
	return lines
}
