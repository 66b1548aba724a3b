package speech

import (
	"fmt"
	"math/rand"
	"strings"
)

// Spoken replies outside timer notifications. Keep them short; the TTS
// engine handles inflection.

func LineWelcome(recipes int) string {
	return fmt.Sprintf("Hello. I have %d recipes. What are we cooking today?", recipes)
}

func LineBye() string {
	return "Bye. Happy cooking."
}

// LineRecipeOpened reads out the prerequisites so the cook can check them.
func LineRecipeOpened(title string, prerequisites []string) string {
	if len(prerequisites) == 0 {
		return title + "."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s. Before you start: ", title)
	for i, p := range prerequisites {
		switch {
		case i > 0 && i == len(prerequisites)-1:
			b.WriteString(", and ")
		case i > 0:
			b.WriteString(", ")
		}
		b.WriteString(p)
	}
	b.WriteString(".")
	return b.String()
}

func LineNoRecipeOpen() string {
	return "Open a recipe first."
}

func LineUnknown() string {
	return "Sorry, I didn't get that. Say help for commands."
}

var listeningFillers = []string{
	"Yes?",
	"I'm listening.",
	"Go ahead.",
}

// LineListening is spoken when the wake phrase is heard on its own.
func LineListening() string {
	return listeningFillers[rand.Intn(len(listeningFillers))]
}
