// Package conversation provides intent parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/recipeflow/internal/domain"
	"github.com/hammamikhairi/recipeflow/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches typed or transcribed input to intents using
// keywords and simple patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

// patternRule maps a regex to an intent. When the regex has a capture
// group, the first group becomes the payload.
type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(?:quit|exit|q|bye)$`), domain.IntentQuit},
		{regexp.MustCompile(`(?i)^(?:help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(?:list|ls|recipes|browse|show)$`), domain.IntentListRecipes},
		{regexp.MustCompile(`(?i)^(?:cuisines|regions|menu)$`), domain.IntentListCuisines},
		{regexp.MustCompile(`(?i)^(?:all|view all|show all|everything)$`), domain.IntentViewAll},
		{regexp.MustCompile(`(?i)^(?:clear|clear filters|clear all|reset filters)$`), domain.IntentClearFilters},
		{regexp.MustCompile(`(?i)^(?:back|b|close)$`), domain.IntentBack},
		{regexp.MustCompile(`(?i)^(?:timers|status|t)$`), domain.IntentShowTimers},
		{regexp.MustCompile(`(?i)^(?:clear|remove|stop)\s+(?:all\s+)?timers$`), domain.IntentClearTimers},

		{regexp.MustCompile(`(?i)^(?:cuisine|region|cook)\s+(.+)$`), domain.IntentSelectCuisine},
		{regexp.MustCompile(`(?i)^(?:search|find|s)(?:\s+(.*))?$`), domain.IntentSearch},
		{regexp.MustCompile(`(?i)^mood\s+(\w+)$`), domain.IntentToggleMood},
		{regexp.MustCompile(`(?i)^(fast|lazy|relax|enjoy)$`), domain.IntentToggleMood},
		{regexp.MustCompile(`(?i)^(?:open|select|pick|view)\s+(.+)$`), domain.IntentOpenRecipe},

		{regexp.MustCompile(`(?i)^(?:start\s+)?timer\s+(\d+)$`), domain.IntentStartTimer},
		{regexp.MustCompile(`(?i)^start\s+(?:step\s+)?(\d+)$`), domain.IntentStartTimer},
		{regexp.MustCompile(`(?i)^pause(?:\s+timer)?\s+(\d+)$`), domain.IntentPauseTimer},
		{regexp.MustCompile(`(?i)^(?:resume|unpause)(?:\s+timer)?\s+(\d+)$`), domain.IntentResumeTimer},
		{regexp.MustCompile(`(?i)^(?:reset|restart)(?:\s+timer)?\s+(\d+)$`), domain.IntentResetTimer},
		{regexp.MustCompile(`(?i)^(?:remove|dismiss|stop|rm)(?:\s+timer)?\s+(\d+)$`), domain.IntentRemoveTimer},

		{regexp.MustCompile(`(?i)^(?:done|check|step|tick)\s+(\d+)$`), domain.IntentToggleStep},
		{regexp.MustCompile(`(?i)^(?:prep|prereq|have)\s+(\d+)$`), domain.IntentTogglePrereq},
	}
	return p
}

// Parse converts user input into an intent.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// A bare number opens the recipe at that position in the list.
	if len(trimmed) <= 3 && isDigits(trimmed) {
		return &domain.Intent{Type: domain.IntentOpenRecipe, Payload: trimmed}, nil
	}

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		payload := ""
		if len(m) > 1 {
			payload = strings.TrimSpace(m[1])
		}
		if rule.intent == domain.IntentToggleMood {
			payload = strings.ToLower(payload)
		}
		p.log.Debug("matched intent: %s (payload=%q)", rule.intent, payload)
		return &domain.Intent{Type: rule.intent, Payload: payload}, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
