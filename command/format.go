package command

import (
	"strings"

	"github.com/andrewortman/ridequeue"
)

const (
	// NoRide is printed for a lookup or range that matched nothing.
	NoRide = "(0,0,0)"
	// NoActiveRides is printed when GetNextRide finds the pool empty.
	NoActiveRides = "No active ride requests"
	// DuplicateRide is printed when Insert names a pending ride.
	DuplicateRide = "Duplicate RideNumber"
)

// FormatRide renders a lookup result.
func FormatRide(r ridequeue.Ride, ok bool) string {
	if !ok {
		return NoRide
	}
	return r.String()
}

// FormatRides renders a range result as a comma separated list.
func FormatRides(rides []ridequeue.Ride) string {
	if len(rides) == 0 {
		return NoRide
	}
	parts := make([]string, len(rides))
	for i, r := range rides {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// FormatNextRide renders the result of GetNextRide.
func FormatNextRide(r ridequeue.Ride, ok bool) string {
	if !ok {
		return NoActiveRides
	}
	return r.String()
}
