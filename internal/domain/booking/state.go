package booking

import (
	"strings"
	"time"

	"github.com/shareit-platform/service-booking/internal/platform/domain"
)

// State selects one bucket of bookings for listing.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var knownStates = map[State]struct{}{
	StateAll:      {},
	StateCurrent:  {},
	StatePast:     {},
	StateFuture:   {},
	StateWaiting:  {},
	StateRejected: {},
}

// ParseState parses a state token. An empty token means ALL.
func ParseState(s string) (State, error) {
	if strings.TrimSpace(s) == "" {
		return StateAll, nil
	}
	state := State(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := knownStates[state]; !ok {
		return "", domain.NewUnknownStateError(s)
	}
	return state, nil
}

// StateFilter pairs a bucket with the single instant it is evaluated at.
// The temporal buckets partition bookings:
//
//	FUTURE  start > now
//	CURRENT start <= now <= end
//	PAST    end < now
type StateFilter struct {
	State State
	Now   time.Time
}
