// Package session implements the cooking session coordinator: discovery
// selection, recipe navigation, per-recipe completion and step timers.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/filter"
	"github.com/hammamikhairi/recipeflow/internal/logger"
	"github.com/hammamikhairi/recipeflow/internal/timer"
)

// Option configures the session.
type Option func(*Session)

// WithCadence sets the pulse source that drives the timers. Defaults to a
// one-second wall-clock ticker.
func WithCadence(c timer.Cadence) Option {
	return func(s *Session) {
		s.cadence = c
	}
}

// WithEvents sets the sink that receives timer events.
func WithEvents(sink domain.EventSink) Option {
	return func(s *Session) {
		s.sink = sink
	}
}

// filterKey is exactly the input the visible list depends on. RecipeID is
// deliberately not part of it.
type filterKey struct {
	region, subregion, query, mood string
}

// Session is the single owner of all mutable state. Every operation and
// every cadence pulse runs under mu.
type Session struct {
	log      *logger.Logger
	recipes  []domain.Recipe
	byID     map[string]int
	cuisines []domain.CuisineGroup
	sink     domain.EventSink
	cadence  timer.Cadence

	mu      sync.Mutex
	sel     domain.Selection
	done    *Completion
	timers  *timer.Engine
	armed   bool
	gen     uint64
	memoKey filterKey
	memo    []domain.Recipe
	memoOK  bool
}

// New loads the catalog once and returns a session with nothing selected.
func New(ctx context.Context, catalog domain.Catalog, log *logger.Logger, opts ...Option) (*Session, error) {
	recipes, err := catalog.Recipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}
	cuisines, err := catalog.Cuisines(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading cuisines: %w", err)
	}

	s := &Session{
		log:      log,
		recipes:  recipes,
		byID:     make(map[string]int, len(recipes)),
		cuisines: cuisines,
		done:     NewCompletion(),
	}
	for i, r := range recipes {
		s.byID[r.ID] = i
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cadence == nil {
		s.cadence = timer.NewTicker(log.Named("cadence"))
	}
	s.timers = timer.NewEngine(s.sink, log.Named("timer"))

	log.Info("session ready with %d recipes", len(recipes))
	return s, nil
}

// Close stops the cadence. The session stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.armed {
		s.armed = false
		s.cadence.Stop()
	}
}

// --- Discovery -------------------------------------------------------------

// SelectCuisine sets the cuisine filter. An empty region clears both parts,
// which is the "view all" action. The open recipe is always closed.
func (s *Session) SelectCuisine(region, subregion string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if region == "" {
		subregion = ""
	}
	s.sel.Region = region
	s.sel.Subregion = subregion
	s.closeRecipe()
	s.log.Debug("cuisine selected: %q / %q", region, subregion)
}

// SetSearch stores the query verbatim; trimming happens when filtering.
func (s *Session) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Query = text
}

// ToggleMood selects a mood, or clears it when it is already selected.
func (s *Session) ToggleMood(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sel.Mood == tag {
		s.sel.Mood = ""
		return
	}
	s.sel.Mood = tag
}

// ClearFilters drops the cuisine, search and mood filters.
func (s *Session) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sel.Region = ""
	s.sel.Subregion = ""
	s.sel.Query = ""
	s.sel.Mood = ""
}

// --- Navigation ------------------------------------------------------------

// SelectRecipe opens a recipe. Opening a different recipe than the current
// one resets completion; re-opening the same one keeps it. Unknown ids are
// stored as-is and simply open nothing.
func (s *Session) SelectRecipe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.sel.RecipeID {
		s.done.Reset()
	}
	s.sel.RecipeID = id
	if _, ok := s.byID[id]; !ok {
		s.log.Warn("selected unknown recipe %q", id)
		return
	}
	s.log.Debug("opened recipe %s", id)
}

// BackToList closes the open recipe.
func (s *Session) BackToList() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeRecipe()
}

func (s *Session) closeRecipe() {
	s.sel.RecipeID = ""
	s.done.Reset()
}

// --- Timers ----------------------------------------------------------------

// StartStepTimer creates a countdown for a step of the open recipe and
// returns the timer id. At most one timer with time left exists per step.
func (s *Session) StartStepTimer(stepIndex int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.openRecipe()
	if !ok {
		return "", domain.ErrNoRecipeOpen
	}
	step, ok := r.Step(stepIndex)
	if !ok {
		return "", fmt.Errorf("step %d of %s: %w", stepIndex, r.ID, domain.ErrStepNotFound)
	}
	if !step.HasTimer() {
		return "", fmt.Errorf("step %d of %s: %w", stepIndex, r.ID, domain.ErrStepHasNoTimer)
	}
	if s.timers.HasRunningForStep(stepIndex) {
		return "", fmt.Errorf("step %d: %w", stepIndex, domain.ErrTimerAlreadyRunning)
	}

	linked := ""
	if len(step.LinkedIngredients) > 0 {
		linked = step.LinkedIngredients[0]
	}
	name := fmt.Sprintf("Step %d: %s", stepIndex, step.Title)

	id, err := s.timers.Create(name, stepIndex, step.TimerMin*60, linked)
	if err != nil {
		return "", fmt.Errorf("creating timer: %w", err)
	}
	s.syncCadence()
	return id, nil
}

// PauseTimer pauses a timer. Unknown or finished timers are ignored.
func (s *Session) PauseTimer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers.SetRunning(id, false)
}

// ResumeTimer resumes a paused timer.
func (s *Session) ResumeTimer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers.SetRunning(id, true)
}

// ResetTimer restores a timer to its full duration, paused.
func (s *Session) ResetTimer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers.Reset(id)
}

// RemoveTimer deletes a timer. It will not be ticked again.
func (s *Session) RemoveTimer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers.Remove(id)
	s.syncCadence()
}

// ClearTimers deletes every timer.
func (s *Session) ClearTimers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers.Clear()
	s.syncCadence()
}

// syncCadence arms the cadence when the first timer appears and stops it
// when the last one is removed. Each arming gets a new generation so a
// pulse in flight from a previous arming is dropped.
func (s *Session) syncCadence() {
	switch {
	case s.timers.Len() > 0 && !s.armed:
		s.armed = true
		s.gen++
		gen := s.gen
		s.cadence.Start(func(pulse uint64) { s.pulse(gen, pulse) })
		s.log.Debug("cadence armed (generation %d)", gen)
	case s.timers.Len() == 0 && s.armed:
		s.armed = false
		s.cadence.Stop()
		s.log.Debug("cadence stopped")
	}
}

func (s *Session) pulse(gen, n uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.armed || gen != s.gen {
		return
	}
	s.timers.Advance(n)
}

// --- Completion ------------------------------------------------------------

// ToggleStep flips a step's completion and reports the new state.
func (s *Session) ToggleStep(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done.ToggleStep(index)
}

// TogglePrerequisite flips a prerequisite's completion and reports the new state.
func (s *Session) TogglePrerequisite(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done.TogglePrerequisite(index)
}

// --- Views -----------------------------------------------------------------

// Selection returns the current discovery and navigation state.
func (s *Session) Selection() domain.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// VisibleRecipes returns the filtered recipe list in catalog order.
func (s *Session) VisibleRecipes() []domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible()
}

func (s *Session) visible() []domain.Recipe {
	key := filterKey{s.sel.Region, s.sel.Subregion, s.sel.Query, s.sel.Mood}
	if !s.memoOK || key != s.memoKey {
		s.memo = filter.Visible(s.recipes, s.sel)
		s.memoKey = key
		s.memoOK = true
	}
	out := make([]domain.Recipe, len(s.memo))
	copy(out, s.memo)
	return out
}

// OpenRecipe returns the recipe being viewed, if any.
func (s *Session) OpenRecipe() (*domain.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openRecipe()
}

func (s *Session) openRecipe() (*domain.Recipe, bool) {
	if s.sel.RecipeID == "" {
		return nil, false
	}
	i, ok := s.byID[s.sel.RecipeID]
	if !ok {
		return nil, false
	}
	r := s.recipes[i]
	return &r, true
}

// Timers returns snapshots of every timer in creation order.
func (s *Session) Timers() []domain.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers.Timers()
}

// HasRunningTimerForStep reports whether the step has a timer with time left.
func (s *Session) HasRunningTimerForStep(stepIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers.HasRunningForStep(stepIndex)
}

// CompletedSteps returns the checked-off step indices.
func (s *Session) CompletedSteps() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done.Steps()
}

// CompletedPrerequisites returns the checked-off prerequisite positions.
func (s *Session) CompletedPrerequisites() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done.Prerequisites()
}

// Cuisines returns the browsable cuisine tree.
func (s *Session) Cuisines() []domain.CuisineGroup {
	return s.cuisines
}

// Recipes returns the whole catalog in order.
func (s *Session) Recipes() []domain.Recipe {
	out := make([]domain.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Snapshot is a consistent copy of every derived view, taken under one lock.
type Snapshot struct {
	Selection              domain.Selection
	Visible                []domain.Recipe
	Recipe                 *domain.Recipe // nil when no recipe is open
	Timers                 []domain.Timer
	CompletedSteps         []int
	CompletedPrerequisites []int
	TotalRecipes           int
}

// Snapshot captures the current state for renderers.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Selection:              s.sel,
		Visible:                s.visible(),
		Timers:                 s.timers.Timers(),
		CompletedSteps:         s.done.Steps(),
		CompletedPrerequisites: s.done.Prerequisites(),
		TotalRecipes:           len(s.recipes),
	}
	if r, ok := s.openRecipe(); ok {
		snap.Recipe = r
	}
	return snap
}

// StepDone reports whether a step is checked off in the snapshot.
func (snap Snapshot) StepDone(index int) bool {
	for _, i := range snap.CompletedSteps {
		if i == index {
			return true
		}
	}
	return false
}

// PrerequisiteDone reports whether a prerequisite is checked off in the snapshot.
func (snap Snapshot) PrerequisiteDone(index int) bool {
	for _, i := range snap.CompletedPrerequisites {
		if i == index {
			return true
		}
	}
	return false
}

// StepTimerRunning reports whether the step has a timer with time left.
func (snap Snapshot) StepTimerRunning(stepIndex int) bool {
	for _, t := range snap.Timers {
		if t.StepIndex == stepIndex && t.RemainingSeconds > 0 {
			return true
		}
	}
	return false
}
