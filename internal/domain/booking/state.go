package booking

import (
	"errors"
	"strings"
)

var ErrUnknownState = errors.New("unknown state")

// State is the logical grouping a caller may filter booking listings by.
// It resolves to a concrete status/time Filter via a total lookup table,
// so adding a state is a one-line data change.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
	StateCanceled State = "CANCELED"
)

// Temporal classifies a booking against a single sampled instant.
// CURRENT is inclusive on both ends while PAST/FUTURE are strict; at
// now == end a booking is CURRENT and not yet PAST. Callers depend on
// this exact boundary convention.
type Temporal int

const (
	TemporalAny Temporal = iota
	TemporalCurrent      // start <= now <= end
	TemporalPast         // end < now
	TemporalFuture       // start > now
)

// Filter is the concrete condition a State resolves to. A nil Status
// means no status restriction.
type Filter struct {
	Status   *Status
	Temporal Temporal
}

func statusPtr(s Status) *Status { return &s }

var stateFilters = map[State]Filter{
	StateAll:      {},
	StateCurrent:  {Temporal: TemporalCurrent},
	StatePast:     {Temporal: TemporalPast},
	StateFuture:   {Temporal: TemporalFuture},
	StateWaiting:  {Status: statusPtr(StatusWaiting)},
	StateRejected: {Status: statusPtr(StatusRejected)},
	StateCanceled: {Status: statusPtr(StatusCanceled)},
}

// ParseState resolves a case-insensitive state keyword.
func ParseState(raw string) (State, error) {
	s := State(strings.ToUpper(raw))
	if _, ok := stateFilters[s]; !ok {
		return "", ErrUnknownState
	}
	return s, nil
}

func (s State) Filter() Filter {
	return stateFilters[s]
}

func (s State) String() string {
	return string(s)
}
