package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Source file errors (load taxonomy: not-found, validation; anything
	// else wrapped during a load counts as unexpected)
	ErrSourceNotFound = fmt.Errorf("source file not found")
	ErrSourceInvalid  = fmt.Errorf("source file invalid")

	// Lookup errors
	ErrSongNotFound     = fmt.Errorf("song not found")
	ErrMusicianNotFound = fmt.Errorf("musician not found")
	ErrSessionNotFound  = fmt.Errorf("session not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
