// Package filter narrows the recipe catalog by the active discovery
// selection. Everything here is pure: no state, no logging.
package filter

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/recipeflow/internal/domain"
)

// Visible returns the recipes that satisfy every active predicate of sel,
// in catalog order. Inactive predicates impose no constraint.
func Visible(recipes []domain.Recipe, sel domain.Selection) []domain.Recipe {
	query := strings.ToLower(strings.TrimSpace(sel.Query))

	out := make([]domain.Recipe, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		if sel.HasCuisine() && !matchCuisine(r, sel.Region, sel.Subregion) {
			continue
		}
		if query != "" && !matchSearch(r, query) {
			continue
		}
		if sel.Mood != "" && !r.HasMood(sel.Mood) {
			continue
		}
		out = append(out, *r)
	}
	return out
}

func matchCuisine(r *domain.Recipe, region, subregion string) bool {
	return r.Cuisine.Region == region && r.Cuisine.Subregion == subregion
}

// matchSearch expects query already trimmed and lower-cased.
func matchSearch(r *domain.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), query) {
			return true
		}
	}
	return false
}

// ActiveFilters lists human-readable labels for the predicates currently
// constraining the list, cuisine first.
func ActiveFilters(sel domain.Selection) []string {
	var out []string
	if sel.HasCuisine() {
		out = append(out, sel.Region+" / "+sel.Subregion)
	}
	if sel.Mood != "" {
		label := sel.Mood
		if e := domain.MoodEmoji(sel.Mood); e != "" {
			label = e + " " + label
		}
		out = append(out, label)
	}
	if q := strings.TrimSpace(sel.Query); q != "" {
		out = append(out, fmt.Sprintf("%q", q))
	}
	return out
}

// Heading is the title shown above the recipe list.
func Heading(sel domain.Selection) string {
	if sel.HasCuisine() {
		return sel.Subregion + " Recipes"
	}
	return "Discover Recipes"
}
