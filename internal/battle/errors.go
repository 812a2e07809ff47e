package battle

import "errors"

var (
	// ErrInvalidInput is returned when a battle precondition does not hold,
	// such as a deck and dungeon of different lengths.
	ErrInvalidInput = errors.New("invalid battle input")

	// ErrConfiguration is returned when a dungeon slot is neither a plain
	// card nor a valid leader card.
	ErrConfiguration = errors.New("malformed dungeon slot")
)
