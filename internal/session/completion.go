package session

import (
	"maps"
	"slices"
)

// Completion tracks checked-off prerequisites and steps for the open
// recipe. Steps are keyed by their 1-based index, prerequisites by their
// 0-based position in the recipe's list. No ordering is enforced.
type Completion struct {
	steps   map[int]bool
	prereqs map[int]bool
}

// NewCompletion returns an empty tracker.
func NewCompletion() *Completion {
	return &Completion{
		steps:   make(map[int]bool),
		prereqs: make(map[int]bool),
	}
}

// ToggleStep flips a step and reports whether it is now done.
func (c *Completion) ToggleStep(index int) bool {
	return toggle(c.steps, index)
}

// TogglePrerequisite flips a prerequisite and reports whether it is now done.
func (c *Completion) TogglePrerequisite(index int) bool {
	return toggle(c.prereqs, index)
}

// StepDone reports whether the step is checked off.
func (c *Completion) StepDone(index int) bool { return c.steps[index] }

// PrerequisiteDone reports whether the prerequisite is checked off.
func (c *Completion) PrerequisiteDone(index int) bool { return c.prereqs[index] }

// Steps returns the completed step indices in ascending order.
func (c *Completion) Steps() []int { return sortedKeys(c.steps) }

// Prerequisites returns the completed prerequisite positions in ascending order.
func (c *Completion) Prerequisites() []int { return sortedKeys(c.prereqs) }

// Reset empties both sets.
func (c *Completion) Reset() {
	clear(c.steps)
	clear(c.prereqs)
}

func toggle(set map[int]bool, index int) bool {
	if set[index] {
		delete(set, index)
		return false
	}
	set[index] = true
	return true
}

func sortedKeys(set map[int]bool) []int {
	return slices.Sorted(maps.Keys(set))
}
