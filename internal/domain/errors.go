package domain

import "errors"

// Lookup errors
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("not allowed for this user")
	ErrInUse     = errors.New("still referenced by other records")
	ErrConflict  = errors.New("already exists")
)

// Content validation errors
var (
	ErrInvalidUserRole    = errors.New("invalid user role")
	ErrInvalidElement     = errors.New("invalid element")
	ErrInvalidBoostType   = errors.New("invalid boost type")
	ErrInvalidCategory    = errors.New("invalid dungeon category")
	ErrInvalidStats       = errors.New("damage and health must be non-negative")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidComposition = errors.New("dungeon slots do not match its category")
	ErrForeignCard        = errors.New("card belongs to another environment")
)

// Deck errors
var (
	ErrDeckSize          = errors.New("deck must hold between 1 and 6 cards")
	ErrDuplicateDeckCard = errors.New("card appears more than once in deck")
	ErrCardNotOwned      = errors.New("card does not belong to this game")
)

// Battle errors
var (
	ErrRewardUnavailable = errors.New("battle was not won or reward already claimed")
)
