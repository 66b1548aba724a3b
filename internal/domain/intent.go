package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentListRecipes
	IntentListCuisines
	IntentSelectCuisine // payload: "region/subregion"
	IntentViewAll
	IntentSearch // payload: query, may be empty to clear
	IntentToggleMood
	IntentClearFilters
	IntentOpenRecipe // payload: list number or recipe id
	IntentBack
	IntentToggleStep
	IntentTogglePrereq
	IntentStartTimer // payload: step index
	IntentPauseTimer // payload: tray position
	IntentResumeTimer
	IntentResetTimer
	IntentRemoveTimer
	IntentShowTimers
	IntentClearTimers
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	for name, t := range intentNames {
		if t == i {
			return name
		}
	}
	return "unknown"
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string
}

// intentNames maps snake_case names to IntentType values.
var intentNames = map[string]IntentType{
	"list_recipes":   IntentListRecipes,
	"list_cuisines":  IntentListCuisines,
	"select_cuisine": IntentSelectCuisine,
	"view_all":       IntentViewAll,
	"search":         IntentSearch,
	"toggle_mood":    IntentToggleMood,
	"clear_filters":  IntentClearFilters,
	"open_recipe":    IntentOpenRecipe,
	"back":           IntentBack,
	"toggle_step":    IntentToggleStep,
	"toggle_prereq":  IntentTogglePrereq,
	"start_timer":    IntentStartTimer,
	"pause_timer":    IntentPauseTimer,
	"resume_timer":   IntentResumeTimer,
	"reset_timer":    IntentResetTimer,
	"remove_timer":   IntentRemoveTimer,
	"show_timers":    IntentShowTimers,
	"clear_timers":   IntentClearTimers,
	"help":           IntentHelp,
	"quit":           IntentQuit,
	"unknown":        IntentUnknown,
}

// IntentFromString converts a snake_case intent name to an IntentType.
// Returns IntentUnknown for unrecognized names.
func IntentFromString(name string) IntentType {
	if t, ok := intentNames[name]; ok {
		return t
	}
	return IntentUnknown
}
