package tilewalk

import "errors"

var (
	// ErrNotFound is returned when an image or font path cannot be loaded.
	ErrNotFound = errors.New("tilewalk: resource not found")

	// ErrMapTooSmall is returned when a map's pixel area is smaller than the display.
	ErrMapTooSmall = errors.New("tilewalk: map too small")

	// ErrMapTooLarge is returned when a map's pixel extent overflows int16.
	ErrMapTooLarge = errors.New("tilewalk: map too large")

	// ErrFollowCycle is returned when attaching a follower would make a node
	// follow itself, directly or transitively.
	ErrFollowCycle = errors.New("tilewalk: follower would create a cycle")

	// ErrInvalidFPSLimit is returned for a non-positive frame limiter target.
	ErrInvalidFPSLimit = errors.New("tilewalk: fps limit must be positive")

	// ErrNoPlayer is returned when a map handles the activate key without a player.
	ErrNoPlayer = errors.New("tilewalk: no player set for map")

	// ErrUnknownKey is returned when a key name does not name an Ebitengine key.
	ErrUnknownKey = errors.New("tilewalk: unknown key name")
)
