package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/recipeflow/internal/conversation"
	"github.com/hammamikhairi/recipeflow/internal/display"
	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/logger"
	"github.com/hammamikhairi/recipeflow/internal/session"
	"github.com/hammamikhairi/recipeflow/internal/speech"
)

type cliApp struct {
	session  *session.Session
	parser   domain.IntentParser
	recorder *conversation.Recorder
	voice    *speech.Voice // nil when sound is disabled
	ear      *speech.Ear   // nil when voice input is disabled
	log      *logger.Logger
	ui       *display.UI
}

// say prints a conversational line and speaks it when TTS is on. Menus and
// recipe text are printed only.
func (a *cliApp) say(text string) {
	a.ui.PrintChat(text)
	if a.voice != nil {
		a.voice.Say(text, nil, speech.PriorityNormal)
	}
}

func (a *cliApp) run(ctx context.Context) {
	a.say(speech.LineWelcome(len(a.session.Recipes())))
	a.ui.Println("")
	a.showList()

	// Receiving on a nil channel blocks forever, so without an ear only
	// the keyboard case fires.
	var voiceCh <-chan string
	if a.ear != nil {
		voiceCh = a.ear.C()
	}
	uiCh := a.ui.InputChan()

	for {
		var input string
		select {
		case <-ctx.Done():
			return
		case in, ok := <-uiCh:
			if !ok {
				return
			}
			input = in
		case in := <-voiceCh:
			a.ui.PrintVoice(in)
			input = in
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		intent, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}
		a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)

		if intent.Type == domain.IntentQuit {
			a.say(speech.LineBye())
			return
		}
		a.handleIntent(intent)
	}
}

func (a *cliApp) handleIntent(intent *domain.Intent) {
	// A new command makes whatever is being spoken stale.
	if a.voice != nil {
		a.voice.Interrupt()
	}

	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentListRecipes:
		a.showList()
	case domain.IntentListCuisines:
		a.ui.PrintLines(display.CuisineMenu(a.session.Cuisines(), a.session.Selection()))
	case domain.IntentSelectCuisine:
		a.selectCuisine(intent.Payload)
	case domain.IntentViewAll:
		a.session.SelectCuisine("", "")
		a.showList()
	case domain.IntentSearch:
		a.session.SetSearch(intent.Payload)
		a.showList()
	case domain.IntentToggleMood:
		if domain.MoodEmoji(intent.Payload) == "" {
			a.say(fmt.Sprintf("Unknown mood %q. Try fast, lazy, relax or enjoy.", intent.Payload))
			return
		}
		a.session.ToggleMood(intent.Payload)
		a.showList()
	case domain.IntentClearFilters:
		a.session.ClearFilters()
		a.showList()
	case domain.IntentOpenRecipe:
		a.openRecipe(intent.Payload)
	case domain.IntentBack:
		a.session.BackToList()
		a.showList()
	case domain.IntentToggleStep:
		a.toggleStep(intent.Payload)
	case domain.IntentTogglePrereq:
		a.togglePrerequisite(intent.Payload)
	case domain.IntentStartTimer:
		a.startTimer(intent.Payload)
	case domain.IntentPauseTimer:
		a.withTimer(intent.Payload, "Paused", a.session.PauseTimer)
	case domain.IntentResumeTimer:
		a.withTimer(intent.Payload, "Resumed", a.session.ResumeTimer)
	case domain.IntentResetTimer:
		a.withTimer(intent.Payload, "Reset", a.session.ResetTimer)
	case domain.IntentRemoveTimer:
		a.withTimer(intent.Payload, "Removed", a.session.RemoveTimer)
	case domain.IntentShowTimers:
		a.showTimers()
	case domain.IntentClearTimers:
		n := len(a.session.Timers())
		a.session.ClearTimers()
		a.ui.PrintHint(fmt.Sprintf("Removed %d timers.", n))
	default:
		a.say(speech.LineUnknown())
	}
}

func (a *cliApp) showList() {
	a.ui.PrintLines(display.RecipeList(a.session.Snapshot()))
}

func (a *cliApp) showDetail() {
	a.ui.PrintLines(display.RecipeDetail(a.session.Snapshot()))
}

// selectCuisine accepts "Region/Subregion" or a subregion name on its own.
func (a *cliApp) selectCuisine(payload string) {
	wantRegion, wantSub, hasRegion := strings.Cut(payload, "/")
	if !hasRegion {
		wantSub, wantRegion = wantRegion, ""
	}
	wantRegion = strings.TrimSpace(wantRegion)
	wantSub = strings.TrimSpace(wantSub)

	for _, g := range a.session.Cuisines() {
		if wantRegion != "" && !strings.EqualFold(g.Region, wantRegion) {
			continue
		}
		for _, sub := range g.Subregions {
			if strings.EqualFold(sub.Name, wantSub) {
				a.session.SelectCuisine(g.Region, sub.Name)
				a.showList()
				return
			}
		}
	}
	a.say(fmt.Sprintf("I don't know the cuisine %q. Say cuisines to see them all.", payload))
}

// openRecipe takes a position in the visible list, a recipe id or a title.
func (a *cliApp) openRecipe(payload string) {
	id := ""
	if n, err := strconv.Atoi(payload); err == nil {
		visible := a.session.VisibleRecipes()
		if n < 1 || n > len(visible) {
			a.say(fmt.Sprintf("Pick a number between 1 and %d.", len(visible)))
			return
		}
		id = visible[n-1].ID
	} else {
		for _, r := range a.session.Recipes() {
			if r.ID == payload || strings.EqualFold(r.Title, payload) {
				id = r.ID
				break
			}
		}
	}
	if id == "" {
		a.say(fmt.Sprintf("No recipe called %q.", payload))
		return
	}

	a.session.SelectRecipe(id)
	r, ok := a.session.OpenRecipe()
	if !ok {
		return
	}
	a.showDetail()
	a.say(speech.LineRecipeOpened(r.Title, r.Prerequisites))
}

func (a *cliApp) toggleStep(payload string) {
	n, _ := strconv.Atoi(payload)
	r, ok := a.session.OpenRecipe()
	if !ok {
		a.say(speech.LineNoRecipeOpen())
		return
	}
	step, found := r.Step(n)
	if !found {
		a.say(fmt.Sprintf("%s has no step %d.", r.Title, n))
		return
	}
	if a.session.ToggleStep(n) {
		a.ui.PrintHint(fmt.Sprintf("Step %d done: %s", n, step.Title))
	} else {
		a.ui.PrintHint(fmt.Sprintf("Step %d unchecked.", n))
	}
}

// togglePrerequisite takes the 1-based number shown in the detail view.
func (a *cliApp) togglePrerequisite(payload string) {
	n, _ := strconv.Atoi(payload)
	r, ok := a.session.OpenRecipe()
	if !ok {
		a.say(speech.LineNoRecipeOpen())
		return
	}
	if n < 1 || n > len(r.Prerequisites) {
		a.say(fmt.Sprintf("%s has %d prerequisites.", r.Title, len(r.Prerequisites)))
		return
	}
	state := "not ready"
	if a.session.TogglePrerequisite(n - 1) {
		state = "ready"
	}
	a.ui.PrintHint(fmt.Sprintf("%s: %s", r.Prerequisites[n-1], state))
}

func (a *cliApp) startTimer(payload string) {
	n, _ := strconv.Atoi(payload)
	_, err := a.session.StartStepTimer(n)
	switch {
	case err == nil:
		// The started notification is printed by the event dispatcher.
	case errors.Is(err, domain.ErrNoRecipeOpen):
		a.say(speech.LineNoRecipeOpen())
	case errors.Is(err, domain.ErrStepNotFound):
		a.say(fmt.Sprintf("There is no step %d.", n))
	case errors.Is(err, domain.ErrStepHasNoTimer):
		a.say(fmt.Sprintf("Step %d has no timer.", n))
	case errors.Is(err, domain.ErrTimerAlreadyRunning):
		a.say(fmt.Sprintf("Step %d already has a timer running.", n))
	default:
		a.log.Error("starting timer for step %d: %v", n, err)
	}
}

// withTimer resolves a 1-based tray position and applies op to that timer.
func (a *cliApp) withTimer(payload, verb string, op func(id string)) {
	n, _ := strconv.Atoi(payload)
	timers := a.session.Timers()
	if n < 1 || n > len(timers) {
		if len(timers) == 0 {
			a.say("No timers.")
		} else {
			a.say(fmt.Sprintf("Pick a timer between 1 and %d.", len(timers)))
		}
		return
	}
	t := timers[n-1]
	op(t.ID)
	a.ui.PrintHint(fmt.Sprintf("%s %s.", verb, t.Name))
}

func (a *cliApp) showTimers() {
	a.ui.PrintLines(display.TimerList(a.session.Timers()))
	if recent := a.recorder.Recent(); len(recent) > 0 {
		a.ui.PrintHint("Recent alerts:")
		for _, msg := range recent[max(0, len(recent)-5):] {
			a.ui.PrintHint("  " + msg)
		}
	}
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeading("Browse")
	a.ui.PrintHint("list | cuisines | cuisine <name> | all | search <text> | mood <fast|lazy|relax|enjoy> | clear")
	a.ui.PrintHeading("Recipe")
	a.ui.PrintHint("<n> or open <n|name> | back | done <step> | prep <n>")
	a.ui.PrintHeading("Timers")
	a.ui.PrintHint("timer <step> | timers | pause <n> | resume <n> | reset <n> | remove <n> | clear timers")
	a.ui.PrintHint("quit")
}
