package session

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/hammamikhairi/recipeflow/internal/catalog"
	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/logger"
	"github.com/hammamikhairi/recipeflow/internal/timer"
)

type recordingSink struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recordingSink) Emit(ev domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingSink) kinds() []domain.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventKind, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Kind)
	}
	return out
}

type failingCatalog struct{}

func (failingCatalog) Recipes(context.Context) ([]domain.Recipe, error) {
	return nil, errors.New("disk on fire")
}

func (failingCatalog) Cuisines(context.Context) ([]domain.CuisineGroup, error) {
	return nil, nil
}

func testCatalog() *catalog.MemorySource {
	recipes := []domain.Recipe{
		{
			ID:            "r1",
			Title:         "Sambar",
			Cuisine:       domain.Cuisine{Region: "Indian", Subregion: "South Indian"},
			MoodTags:      []string{"relax"},
			Prerequisites: []string{"Soak dal", "Chop vegetables"},
			Steps: []domain.Step{
				{Index: 1, Title: "Boil dal", TimerMin: 5, LinkedIngredients: []string{"toor dal", "water"}},
				{Index: 2, Title: "Temper", TimerMin: 0},
				{Index: 3, Title: "Simmer", TimerMin: 2},
			},
			Ingredients: []domain.Ingredient{{Name: "toor dal"}, {Name: "tamarind"}},
		},
		{
			ID:       "r2",
			Title:    "Paneer Tikka",
			Cuisine:  domain.Cuisine{Region: "Indian", Subregion: "North Indian"},
			MoodTags: []string{"enjoy"},
			Steps: []domain.Step{
				{Index: 1, Title: "Marinate", TimerMin: 1},
			},
			Ingredients: []domain.Ingredient{{Name: "paneer"}},
		},
		{
			ID:       "r3",
			Title:    "Pasta",
			Cuisine:  domain.Cuisine{Region: "Global", Subregion: "Italian"},
			MoodTags: []string{"fast"},
		},
	}
	return catalog.New(recipes, nil, logger.New(logger.LevelOff, nil))
}

func setupSession(t *testing.T) (*Session, *timer.Manual, *recordingSink) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	cadence := timer.NewManual()
	sink := &recordingSink{}
	s, err := New(context.Background(), testCatalog(), log, WithCadence(cadence), WithEvents(sink))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	t.Cleanup(s.Close)
	return s, cadence, sink
}

func visibleIDs(s *Session) []string {
	var out []string
	for _, r := range s.VisibleRecipes() {
		out = append(out, r.ID)
	}
	return out
}

func TestNewFailsWhenCatalogFails(t *testing.T) {
	_, err := New(context.Background(), failingCatalog{}, logger.New(logger.LevelOff, nil), WithCadence(timer.NewManual()))
	if err == nil {
		t.Fatal("expected error from failing catalog")
	}
}

func TestDiscoveryFilters(t *testing.T) {
	s, _, _ := setupSession(t)

	if got := visibleIDs(s); !reflect.DeepEqual(got, []string{"r1", "r2", "r3"}) {
		t.Fatalf("initial list = %v", got)
	}

	s.SelectCuisine("Indian", "South Indian")
	if got := visibleIDs(s); !reflect.DeepEqual(got, []string{"r1"}) {
		t.Fatalf("after cuisine = %v", got)
	}

	s.SelectCuisine("", "North Indian")
	sel := s.Selection()
	if sel.Region != "" || sel.Subregion != "" {
		t.Fatalf("empty region must clear both parts, got %+v", sel)
	}

	s.SetSearch("  PANEER ")
	if got := s.Selection().Query; got != "  PANEER " {
		t.Fatalf("query must be stored verbatim, got %q", got)
	}
	if got := visibleIDs(s); !reflect.DeepEqual(got, []string{"r2"}) {
		t.Fatalf("after search = %v", got)
	}

	s.ClearFilters()
	if got := visibleIDs(s); len(got) != 3 {
		t.Fatalf("after clear = %v", got)
	}
}

func TestToggleMood(t *testing.T) {
	s, _, _ := setupSession(t)

	s.ToggleMood("fast")
	if got := s.Selection().Mood; got != "fast" {
		t.Fatalf("mood = %q, want fast", got)
	}
	if got := visibleIDs(s); !reflect.DeepEqual(got, []string{"r3"}) {
		t.Fatalf("fast recipes = %v", got)
	}

	s.ToggleMood("enjoy")
	if got := s.Selection().Mood; got != "enjoy" {
		t.Fatalf("other mood must replace, got %q", got)
	}

	s.ToggleMood("enjoy")
	if got := s.Selection().Mood; got != "" {
		t.Fatalf("same mood must clear, got %q", got)
	}
}

func TestVisibleRecipesMemoIgnoresOpenRecipe(t *testing.T) {
	s, _, _ := setupSession(t)

	s.ToggleMood("relax")
	first := s.VisibleRecipes()
	s.SelectRecipe("r1")
	second := s.VisibleRecipes()
	if !reflect.DeepEqual(first, second) {
		t.Fatal("opening a recipe must not change the visible list")
	}

	// Callers get their own copy.
	second[0].Title = "mutated"
	if s.VisibleRecipes()[0].Title != "Sambar" {
		t.Fatal("visible list leaked internal state")
	}
}

func TestNavigationAndCompletionIsolation(t *testing.T) {
	s, _, _ := setupSession(t)

	s.SelectRecipe("r1")
	r, ok := s.OpenRecipe()
	if !ok || r.ID != "r1" {
		t.Fatalf("expected r1 open, got %v %v", r, ok)
	}

	if !s.ToggleStep(1) || !s.ToggleStep(3) {
		t.Fatal("toggling an unchecked step should check it")
	}
	s.TogglePrerequisite(0)
	if got := s.CompletedSteps(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("completed steps = %v", got)
	}

	// Re-selecting the same recipe keeps progress.
	s.SelectRecipe("r1")
	if got := s.CompletedSteps(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("same recipe reselected, steps = %v", got)
	}

	// Opening a different recipe starts clean.
	s.SelectRecipe("r2")
	if len(s.CompletedSteps()) != 0 || len(s.CompletedPrerequisites()) != 0 {
		t.Fatal("completion leaked across recipes")
	}

	s.ToggleStep(1)
	s.BackToList()
	if _, ok := s.OpenRecipe(); ok {
		t.Fatal("back must close the recipe")
	}
	if len(s.CompletedSteps()) != 0 {
		t.Fatal("back must reset completion")
	}

	s.SelectRecipe("r1")
	s.ToggleStep(2)
	s.SelectCuisine("Global", "Italian")
	if _, ok := s.OpenRecipe(); ok {
		t.Fatal("selecting a cuisine must close the recipe")
	}
	if len(s.CompletedSteps()) != 0 {
		t.Fatal("selecting a cuisine must reset completion")
	}

	s.SelectRecipe("nope")
	if _, ok := s.OpenRecipe(); ok {
		t.Fatal("unknown recipe must not open")
	}
}

func TestToggleStepTwiceUnchecks(t *testing.T) {
	s, _, _ := setupSession(t)
	s.SelectRecipe("r1")

	s.ToggleStep(2)
	if s.ToggleStep(2) {
		t.Fatal("second toggle should uncheck")
	}
	if len(s.CompletedSteps()) != 0 {
		t.Fatalf("steps = %v", s.CompletedSteps())
	}
}

func TestStartStepTimerErrors(t *testing.T) {
	s, _, _ := setupSession(t)

	if _, err := s.StartStepTimer(1); !errors.Is(err, domain.ErrNoRecipeOpen) {
		t.Fatalf("expected ErrNoRecipeOpen, got %v", err)
	}

	s.SelectRecipe("r1")
	tests := []struct {
		name string
		step int
		want error
	}{
		{"missing step", 9, domain.ErrStepNotFound},
		{"step without timer", 2, domain.ErrStepHasNoTimer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.StartStepTimer(tt.step); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if len(s.Timers()) != 0 {
		t.Fatal("rejected starts must not create timers")
	}
}

func TestPerStepExclusivity(t *testing.T) {
	s, cadence, _ := setupSession(t)
	s.SelectRecipe("r1")

	id, err := s.StartStepTimer(3)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := s.StartStepTimer(3); !errors.Is(err, domain.ErrTimerAlreadyRunning) {
		t.Fatalf("expected ErrTimerAlreadyRunning, got %v", err)
	}

	// Paused with time left still blocks.
	s.PauseTimer(id)
	if _, err := s.StartStepTimer(3); !errors.Is(err, domain.ErrTimerAlreadyRunning) {
		t.Fatalf("paused timer should still block, got %v", err)
	}

	// Once exhausted, a new timer may start for the same step.
	s.ResumeTimer(id)
	cadence.Fire(120)
	if s.HasRunningTimerForStep(3) {
		t.Fatal("exhausted timer still counts as running")
	}
	if _, err := s.StartStepTimer(3); err != nil {
		t.Fatalf("restart after completion: %v", err)
	}
	if n := len(s.Timers()); n != 2 {
		t.Fatalf("expected 2 timers, got %d", n)
	}
}

func TestTimersSurviveNavigation(t *testing.T) {
	s, cadence, _ := setupSession(t)
	s.SelectRecipe("r1")
	if _, err := s.StartStepTimer(1); err != nil {
		t.Fatalf("start: %v", err)
	}

	s.BackToList()
	s.SelectRecipe("r2")
	cadence.Fire(10)

	timers := s.Timers()
	if len(timers) != 1 || timers[0].RemainingSeconds != 290 {
		t.Fatalf("timers after navigation: %+v", timers)
	}
}

func TestEndToEndStepTimer(t *testing.T) {
	s, cadence, sink := setupSession(t)

	s.SelectCuisine("Indian", "South Indian")
	if got := visibleIDs(s); !reflect.DeepEqual(got, []string{"r1"}) {
		t.Fatalf("visible = %v", got)
	}
	s.SelectRecipe("r1")

	id, err := s.StartStepTimer(1)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !cadence.Armed() {
		t.Fatal("cadence should be armed once a timer exists")
	}

	timers := s.Timers()
	if len(timers) != 1 {
		t.Fatalf("expected one timer, got %d", len(timers))
	}
	tm := timers[0]
	if tm.ID != id || tm.Name != "Step 1: Boil dal" || tm.TotalSeconds != 300 || tm.LinkedIngredient != "toor dal" {
		t.Fatalf("unexpected timer %+v", tm)
	}

	cadence.Fire(150)
	cadence.Redeliver()
	if got := s.Timers()[0].RemainingSeconds; got != 150 {
		t.Fatalf("remaining after 150 pulses and a duplicate = %d", got)
	}
	if got := s.Timers()[0].Status(); got != domain.TimerActive {
		t.Fatalf("status = %s, want active", got)
	}

	cadence.Fire(125)
	if got := s.Timers()[0].Status(); got != domain.TimerWarning {
		t.Fatalf("status at 25s = %s, want warning", got)
	}

	cadence.Fire(25)
	tm = s.Timers()[0]
	if tm.RemainingSeconds != 0 || tm.Status() != domain.TimerComplete {
		t.Fatalf("after 300 pulses: %+v", tm)
	}

	cadence.Fire(10)
	want := []domain.EventKind{domain.EventTimerStarted, domain.EventTimerCompleted}
	if got := sink.kinds(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestCadenceFollowsTimerSet(t *testing.T) {
	s, cadence, _ := setupSession(t)
	s.SelectRecipe("r1")

	if cadence.Armed() {
		t.Fatal("cadence must start stopped")
	}

	a, _ := s.StartStepTimer(1)
	b, _ := s.StartStepTimer(3)
	if cadence.Arms() != 1 {
		t.Fatalf("second timer must not re-arm, arms = %d", cadence.Arms())
	}

	s.RemoveTimer(a)
	if !cadence.Armed() {
		t.Fatal("cadence stopped while a timer remains")
	}
	s.RemoveTimer(b)
	s.RemoveTimer(b)
	if cadence.Armed() {
		t.Fatal("cadence still armed with no timers")
	}

	c, _ := s.StartStepTimer(1)
	if cadence.Arms() != 2 {
		t.Fatalf("expected re-arm, arms = %d", cadence.Arms())
	}
	cadence.Fire(3)
	if got := s.Timers()[0]; got.ID != c || got.RemainingSeconds != 297 {
		t.Fatalf("re-armed timer: %+v", got)
	}

	s.ClearTimers()
	if cadence.Armed() || len(s.Timers()) != 0 {
		t.Fatal("clear must drop timers and stop the cadence")
	}
}

func TestResetAndPause(t *testing.T) {
	s, cadence, _ := setupSession(t)
	s.SelectRecipe("r2")
	id, _ := s.StartStepTimer(1)

	cadence.Fire(20)
	s.PauseTimer(id)
	cadence.Fire(20)
	if got := s.Timers()[0].RemainingSeconds; got != 40 {
		t.Fatalf("paused timer moved: %d", got)
	}

	s.ResetTimer(id)
	tm := s.Timers()[0]
	if tm.RemainingSeconds != 60 || tm.Running {
		t.Fatalf("after reset: %+v", tm)
	}

	s.PauseTimer("unknown")
	s.ResumeTimer("unknown")
	s.ResetTimer("unknown")
}

func TestSnapshot(t *testing.T) {
	s, _, _ := setupSession(t)
	s.SelectRecipe("r1")
	s.ToggleStep(3)
	s.TogglePrerequisite(1)
	if _, err := s.StartStepTimer(1); err != nil {
		t.Fatalf("start: %v", err)
	}

	snap := s.Snapshot()
	if snap.Recipe == nil || snap.Recipe.ID != "r1" {
		t.Fatalf("snapshot recipe = %v", snap.Recipe)
	}
	if !snap.StepDone(3) || snap.StepDone(1) {
		t.Fatal("snapshot step completion wrong")
	}
	if !snap.PrerequisiteDone(1) || snap.PrerequisiteDone(0) {
		t.Fatal("snapshot prerequisite completion wrong")
	}
	if !snap.StepTimerRunning(1) || snap.StepTimerRunning(3) {
		t.Fatal("snapshot timer lookup wrong")
	}
	if snap.TotalRecipes != 3 || len(snap.Visible) != 3 {
		t.Fatalf("snapshot counts: total=%d visible=%d", snap.TotalRecipes, len(snap.Visible))
	}
}
