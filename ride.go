package ridequeue

import (
	"errors"
	"fmt"
)

// ErrRideExists is returned when a ride with the same ID is already pending.
var ErrRideExists = errors.New("ridequeue: ride already exists")

// Ride is a pending ride request.
type Ride struct {
	ID       int
	Cost     int
	Duration int
}

// Less reports whether r is dispatched before other: cheaper first, then shorter.
// It ignores ID; two rides with equal cost and duration are equal in priority.
func (r Ride) Less(other Ride) bool {
	if r.Cost != other.Cost {
		return r.Cost < other.Cost
	}
	return r.Duration < other.Duration
}

func (r Ride) String() string {
	return fmt.Sprintf("(%d,%d,%d)", r.ID, r.Cost, r.Duration)
}
