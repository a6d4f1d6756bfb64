package status

import (
	"database/sql/driver"
	"errors"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusConfirmed Status = "CONFIRMED"
	StatusPreparing Status = "PREPARING"
	StatusFinished  Status = "FINISHED"
	StatusCanceled  Status = "CANCELED"
)

var ErrInvalidStatus = errors.New("invalid status")

// rank orders the forward progression CREATED -> CONFIRMED -> PREPARING -> FINISHED.
// CANCELED sits outside the progression.
var rank = map[Status]int{
	StatusCreated:   0,
	StatusConfirmed: 1,
	StatusPreparing: 2,
	StatusFinished:  3,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusCanceled
}

// CanTransition reports whether moving from s to next is a legal step:
// one step forward in the progression, or cancellation from any
// non-terminal state.
func (s Status) CanTransition(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCanceled {
		return true
	}

	from, ok := rank[s]
	if !ok {
		return false
	}
	to, ok := rank[next]
	if !ok {
		return false
	}

	return to == from+1
}

// All returns every status in progression order, CANCELED last.
func All() []Status {
	return []Status{
		StatusCreated,
		StatusConfirmed,
		StatusPreparing,
		StatusFinished,
		StatusCanceled,
	}
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCreated, StatusConfirmed, StatusPreparing, StatusFinished, StatusCanceled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
