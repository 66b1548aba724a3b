package conversation

import (
	"context"
	"testing"

	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input       string
		wantType    domain.IntentType
		wantPayload string
	}{
		// Global
		{"quit", domain.IntentQuit, ""},
		{"Q", domain.IntentQuit, ""},
		{"help", domain.IntentHelp, ""},
		{"?", domain.IntentHelp, ""},

		// Discovery
		{"list", domain.IntentListRecipes, ""},
		{"cuisines", domain.IntentListCuisines, ""},
		{"view all", domain.IntentViewAll, ""},
		{"cuisine Indian/South Indian", domain.IntentSelectCuisine, "Indian/South Indian"},
		{"cuisine italian", domain.IntentSelectCuisine, "italian"},
		{"search paneer", domain.IntentSearch, "paneer"},
		{"find  garlic bread ", domain.IntentSearch, "garlic bread"},
		{"search", domain.IntentSearch, ""},
		{"mood Fast", domain.IntentToggleMood, "fast"},
		{"relax", domain.IntentToggleMood, "relax"},
		{"clear filters", domain.IntentClearFilters, ""},

		// Navigation
		{"2", domain.IntentOpenRecipe, "2"},
		{"open masala-dosa", domain.IntentOpenRecipe, "masala-dosa"},
		{"back", domain.IntentBack, ""},

		// Timers
		{"timer 3", domain.IntentStartTimer, "3"},
		{"start timer 1", domain.IntentStartTimer, "1"},
		{"start step 4", domain.IntentStartTimer, "4"},
		{"pause 1", domain.IntentPauseTimer, "1"},
		{"resume timer 2", domain.IntentResumeTimer, "2"},
		{"reset 1", domain.IntentResetTimer, "1"},
		{"dismiss 1", domain.IntentRemoveTimer, "1"},
		{"timers", domain.IntentShowTimers, ""},
		{"clear timers", domain.IntentClearTimers, ""},
		{"stop all timers", domain.IntentClearTimers, ""},

		// Completion
		{"done 3", domain.IntentToggleStep, "3"},
		{"prep 1", domain.IntentTogglePrereq, "1"},

		// Unknown
		{"make me a sandwich", domain.IntentUnknown, "make me a sandwich"},
		{"", domain.IntentUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if intent.Type != tt.wantType {
				t.Fatalf("input %q: expected %s, got %s", tt.input, tt.wantType, intent.Type)
			}
			if intent.Payload != tt.wantPayload {
				t.Fatalf("input %q: expected payload %q, got %q", tt.input, tt.wantPayload, intent.Payload)
			}
		})
	}
}

func TestIntentNamesRoundTrip(t *testing.T) {
	for _, it := range []domain.IntentType{domain.IntentSearch, domain.IntentStartTimer, domain.IntentQuit, domain.IntentClearTimers} {
		if got := domain.IntentFromString(it.String()); got != it {
			t.Fatalf("IntentFromString(%q) = %s", it.String(), got)
		}
	}
}
