package ridequeue

import "fmt"

// TripUpdate is the outcome of Dispatcher.UpdateTrip.
type TripUpdate int

const (
	// TripNotFound means no ride with the given ID is pending.
	TripNotFound TripUpdate = iota
	// TripUnchanged means the new duration is not longer than the current one.
	TripUnchanged
	// TripRepriced means the ride was re-queued with a surcharge and the new duration.
	TripRepriced
	// TripDropped means the new duration is more than twice the current one and
	// the ride was cancelled.
	TripDropped
)

// RepriceSurcharge is added to a ride's cost when its trip is extended.
const RepriceSurcharge = 10

func (u TripUpdate) String() string {
	switch u {
	case TripNotFound:
		return "not_found"
	case TripUnchanged:
		return "unchanged"
	case TripRepriced:
		return "repriced"
	case TripDropped:
		return "dropped"
	default:
		return fmt.Sprintf("TripUpdate(%d)", int(u))
	}
}

// Dispatcher is a pool of pending rides. It keeps a tree ordered by ride ID
// for lookups and a heap ordered by priority for dispatch, and applies every
// mutation to both.
//
// A Dispatcher is not safe for concurrent use.
type Dispatcher struct {
	index rideTree
	queue rideQueue
}

// New constructs an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{queue: newRideQueue()}
}

// Len returns the number of pending rides.
func (d *Dispatcher) Len() int {
	return d.index.len()
}

// Insert adds a new ride.
// Returns an error wrapping ErrRideExists if a ride with the same ID is pending;
// the pool is then unchanged.
func (d *Dispatcher) Insert(r Ride) error {
	if d.index.contains(r.ID) {
		return fmt.Errorf("%w: id %d", ErrRideExists, r.ID)
	}

	d.index.insert(r)
	d.queue.push(r)
	return nil
}

// Load adds many rides at once, building the heap in linear time.
// Every ride is checked before anything is inserted: if any ride is already
// pending or repeated within rides, Load returns an error and the pool is
// unchanged.
func (d *Dispatcher) Load(rides ...Ride) error {
	// pre-flight checks before mutating state
	seen := make(map[int]struct{}, len(rides))
	for _, r := range rides {
		if _, dup := seen[r.ID]; dup || d.index.contains(r.ID) {
			return fmt.Errorf("%w: id %d", ErrRideExists, r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	for _, r := range rides {
		d.index.insert(r)
	}
	d.queue.build(rides)
	return nil
}

// Lookup returns the pending ride with the given ID.
func (d *Dispatcher) Lookup(id int) (Ride, bool) {
	return d.index.get(id)
}

// Range returns the pending rides with lo <= ID <= hi in ascending ID order.
// It returns nil if there are none.
func (d *Dispatcher) Range(lo, hi int) []Ride {
	if lo > hi {
		return nil
	}
	return d.index.rangeScan(lo, hi)
}

// Peek returns the ride NextRide would dispatch, without removing it.
func (d *Dispatcher) Peek() (Ride, bool) {
	return d.queue.peek()
}

// NextRide removes and returns the cheapest pending ride, breaking cost ties
// by the shorter duration and rides equal in both by the lower ID. It returns
// false if no ride is pending.
func (d *Dispatcher) NextRide() (Ride, bool) {
	r, ok := d.queue.popMin()
	if !ok {
		return Ride{}, false
	}
	d.index.delete(r.ID)
	return r, true
}

// CancelRide removes the ride with the given ID. It returns false if no such
// ride is pending.
func (d *Dispatcher) CancelRide(id int) bool {
	if !d.index.delete(id) {
		return false
	}
	d.queue.remove(id)
	return true
}

// UpdateTrip applies a new trip duration to a pending ride with duration d
// and cost c:
//
//   - newDuration <= d: nothing changes.
//   - d < newDuration <= 2*d: the ride is re-queued with cost c+RepriceSurcharge
//     and duration newDuration.
//   - newDuration > 2*d: the ride is cancelled.
//
// Priority is never changed in place; a repriced ride is removed and inserted again.
func (d *Dispatcher) UpdateTrip(id, newDuration int) TripUpdate {
	existing, ok := d.index.get(id)
	if !ok {
		return TripNotFound
	}

	switch {
	case newDuration <= existing.Duration:
		return TripUnchanged
	case existing.Duration >= 0 && newDuration-existing.Duration <= existing.Duration:
		// Same as newDuration <= 2*d without overflowing for large durations.
		repriced := Ride{ID: id, Cost: existing.Cost + RepriceSurcharge, Duration: newDuration}
		d.CancelRide(id)
		d.index.insert(repriced)
		d.queue.push(repriced)
		return TripRepriced
	default:
		d.CancelRide(id)
		return TripDropped
	}
}
