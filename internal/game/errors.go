package game

import "errors"

// Roster and setup errors.
var (
	ErrInvalidBlinds      = errors.New("invalid blinds")
	ErrInvalidPlayerCount = errors.New("invalid player count")
	ErrDuplicatePlayer    = errors.New("duplicate player")
	ErrInvalidChips       = errors.New("invalid chip count")
	ErrHandInProgress     = errors.New("hand already in progress")
)

// Action errors. A rejected action leaves the game exactly as it was.
var (
	ErrHandNotInProgress = errors.New("no hand in progress")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrPlayerFolded      = errors.New("player has folded")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrInvalidAction     = errors.New("invalid action")
	ErrBetTooLow         = errors.New("bet must be at least the current bet")
	ErrInsufficientChips = errors.New("insufficient chips")
	ErrCannotCheck       = errors.New("cannot check when there is a bet")
	ErrBettingRoundOpen  = errors.New("betting round still open")
)
