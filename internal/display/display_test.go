package display

import (
	"strings"
	"testing"

	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/session"
)

func TestTrayLine(t *testing.T) {
	tests := []struct {
		name    string
		timer   domain.Timer
		want    []string
		notWant []string
	}{
		{
			name:    "running",
			timer:   domain.Timer{Name: "Step 1: Boil", TotalSeconds: 300, RemainingSeconds: 120, Running: true, LinkedIngredient: "pasta"},
			want:    []string{"Step 1: Boil", "02:00", "pasta"},
			notWant: []string{"Done!", "paused"},
		},
		{
			name:    "complete",
			timer:   domain.Timer{Name: "Step 2: Rest", TotalSeconds: 60, RemainingSeconds: 0, Running: true},
			want:    []string{"00:00", "Done!"},
			notWant: []string{"paused"},
		},
		{
			name:  "paused",
			timer: domain.Timer{Name: "Step 3: Fry", TotalSeconds: 120, RemainingSeconds: 90},
			want:  []string{"01:30", "paused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := TrayLine(tt.timer)
			for _, w := range tt.want {
				if !strings.Contains(line, w) {
					t.Errorf("expected %q in %q", w, line)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(line, w) {
					t.Errorf("did not expect %q in %q", w, line)
				}
			}
		})
	}
}

func TestRenderTray(t *testing.T) {
	if RenderTray(nil, 80) != "" {
		t.Fatal("expected empty tray without timers")
	}

	tray := RenderTray([]domain.Timer{
		{Name: "Step 3: Later", TotalSeconds: 60, RemainingSeconds: 60, StepIndex: 3},
		{Name: "Step 1: First", TotalSeconds: 60, RemainingSeconds: 60, StepIndex: 1},
	}, 60)

	lines := strings.Split(tray, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per timer, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Step 1: First") {
		t.Fatalf("expected timers ordered by step, got %q", lines[0])
	}
}

func TestWindowTitle(t *testing.T) {
	if got := WindowTitle(nil); got != "RecipeFlow" {
		t.Fatalf("unexpected idle title %q", got)
	}
	got := WindowTitle([]domain.Timer{
		{Name: "A", TotalSeconds: 90, RemainingSeconds: 75},
		{Name: "B", TotalSeconds: 60},
	})
	if got != "RecipeFlow | A: 01:15 | B: DONE!" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestStepTimerLabel(t *testing.T) {
	step := domain.Step{Index: 1, TimerMin: 5}
	if got := StepTimerLabel(step, false); got != "Start 5m Timer" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := StepTimerLabel(step, true); got != "Timer Running" {
		t.Fatalf("unexpected label %q", got)
	}
}

func testRecipe() *domain.Recipe {
	return &domain.Recipe{
		ID:            "r1",
		Title:         "Sambar",
		Description:   "Lentil stew",
		Cuisine:       domain.Cuisine{Region: "Indian", Subregion: "South Indian"},
		Difficulty:    "Easy",
		Serves:        4,
		TotalTimeMin:  30,
		Prerequisites: []string{"Dal soaked"},
		Diet:          []string{"vegan"},
		MoodTags:      []string{"relax"},
		Steps: []domain.Step{
			{Index: 1, Title: "Cook dal", TimerMin: 5},
			{Index: 2, Title: "Temper"},
		},
		Ingredients: []domain.Ingredient{{Name: "toor dal", Qty: "1", Unit: "cup", Substitutions: []string{"moong dal"}}},
		Nutrition:   domain.Nutrition{Calories: 210, Protein: "9g", Carbs: "30g", Fat: "5g"},
	}
}

func TestRecipeDetail(t *testing.T) {
	if RecipeDetail(session.Snapshot{}) != nil {
		t.Fatal("expected nil without an open recipe")
	}

	snap := session.Snapshot{
		Recipe:                 testRecipe(),
		CompletedSteps:         []int{2},
		CompletedPrerequisites: []int{0},
		Timers:                 []domain.Timer{{StepIndex: 1, TotalSeconds: 300, RemainingSeconds: 200, Running: true}},
	}
	out := strings.Join(RecipeDetail(snap), "\n")

	for _, want := range []string{
		"Sambar",
		"[x] 1. Dal soaked",
		"or moong dal",
		"[ ] 1.",
		"[x] 2.",
		"[Timer Running]",
		"210 kcal",
		"🧘 relax",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in detail:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Start 5m Timer") {
		t.Error("running timer should replace the start label")
	}
}

func TestRecipeList(t *testing.T) {
	snap := session.Snapshot{
		Selection:    domain.Selection{Region: "Indian", Subregion: "South Indian", Mood: "relax"},
		Visible:      []domain.Recipe{*testRecipe()},
		TotalRecipes: 3,
	}
	out := strings.Join(RecipeList(snap), "\n")
	for _, want := range []string{"South Indian Recipes", "Indian / South Indian", "1 of 3 recipes", " 1. Sambar"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in list:\n%s", want, out)
		}
	}

	empty := strings.Join(RecipeList(session.Snapshot{TotalRecipes: 3}), "\n")
	if !strings.Contains(empty, "Discover Recipes") || !strings.Contains(empty, "Nothing matches") {
		t.Errorf("unexpected empty list:\n%s", empty)
	}
}

func TestCenterBanner(t *testing.T) {
	out := centerBanner("ab\nabcd\n", 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "   ") || strings.HasPrefix(lines[1], "    ") {
		t.Fatalf("expected 3 columns of padding, got %q", lines[1])
	}
}
