package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound            = errors.New("not found")
	ErrNoRecipeOpen        = errors.New("no recipe is open")
	ErrStepNotFound        = errors.New("step not found in open recipe")
	ErrStepHasNoTimer      = errors.New("step has no timer")
	ErrTimerAlreadyRunning = errors.New("a timer is already running for this step")
	ErrInvalidDuration     = errors.New("timer duration must be positive")
	ErrInvalidCatalog      = errors.New("invalid catalog")
)
