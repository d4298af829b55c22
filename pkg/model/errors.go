package model

import "errors"

var (
	// ErrInvalidCapacity is returned whenever the seats-per-group capacity is smaller than 1
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
	// ErrInvalidSlotRange is returned for empty or non-positive slot ranges
	ErrInvalidSlotRange = errors.New("invalid slot range")
	// ErrNoColoringFound means no slot count within the requested range admits a proper coloring
	ErrNoColoringFound = errors.New("no coloring found")
	// ErrTrialFailed means a single heuristic trial got stuck; the search simply discards it
	ErrTrialFailed = errors.New("heuristic trial failed")
	// ErrNoSolutionFound means every trial of a search failed
	ErrNoSolutionFound = errors.New("no solution found")
	ErrUnknownStrategy = errors.New("unknown strategy")
)
