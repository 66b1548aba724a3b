// Package domain defines the core types and interfaces for the cooking guide.
// All other packages depend on domain; domain depends on nothing.
package domain

// Recipe represents a complete recipe record from the catalog. Records are
// immutable once loaded.
type Recipe struct {
	ID            string
	Title         string
	Description   string
	Cuisine       Cuisine
	HeroImage     string
	Difficulty    string
	Serves        int
	TotalTimeMin  int
	Prerequisites []string
	Diet          []string
	MoodTags      []string
	Steps         []Step
	Ingredients   []Ingredient
	Nutrition     Nutrition
}

// Cuisine places a recipe in the cuisine tree.
type Cuisine struct {
	Region    string
	Subregion string
}

// Step is a single cooking step. Index is 1-based and matches the step's
// position in Recipe.Steps.
type Step struct {
	Index             int
	Emoji             string
	Title             string
	Text              string
	Image             string
	TimerMin          int // 0 = no timer
	LinkedIngredients []string
	Video             string
}

// HasTimer reports whether the step offers a countdown timer.
func (s Step) HasTimer() bool { return s.TimerMin > 0 }

// Ingredient is a single ingredient line. Qty is free-form because recipes
// mix numbers ("2") with phrases ("to taste").
type Ingredient struct {
	Name          string
	Qty           string
	Unit          string
	Substitutions []string
}

// Nutrition holds per-serving nutritional info.
type Nutrition struct {
	Calories int
	Protein  string
	Carbs    string
	Fat      string
}

// CuisineGroup is a top-level region with its browsable subregions.
type CuisineGroup struct {
	Region     string
	Subregions []Subregion
}

// Subregion is a selectable cuisine within a region.
type Subregion struct {
	Name        string
	Description string
	Color       string
}

// Step returns the step with the given 1-based index.
func (r *Recipe) Step(index int) (Step, bool) {
	for _, s := range r.Steps {
		if s.Index == index {
			return s, true
		}
	}
	return Step{}, false
}

// HasMood reports whether the recipe carries the exact mood tag.
func (r *Recipe) HasMood(tag string) bool {
	for _, m := range r.MoodTags {
		if m == tag {
			return true
		}
	}
	return false
}

// Moods is the fixed mood palette offered for filtering.
var Moods = []Mood{
	{Name: "fast", Emoji: "⚡"},
	{Name: "lazy", Emoji: "😌"},
	{Name: "relax", Emoji: "🧘"},
	{Name: "enjoy", Emoji: "🎉"},
}

// Mood is a filterable mood tag.
type Mood struct {
	Name  string
	Emoji string
}

// MoodEmoji returns the emoji for a known mood, or "".
func MoodEmoji(name string) string {
	for _, m := range Moods {
		if m.Name == name {
			return m.Emoji
		}
	}
	return ""
}
