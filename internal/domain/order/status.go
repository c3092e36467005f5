package order

import (
	"fmt"

	"github.com/sweetdreamlabs/sweetdream/internal/httperr"
)

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// Sequence is the only legal forward progression. CANCELLED sits outside it.
var Sequence = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
}

var level = map[Status]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusPreparing: 2,
	StatusReady:     3,
	StatusDelivered: 4,
	StatusCancelled: -1,
}

// SupportContact is surfaced to customers whose order can no longer be
// cancelled through the storefront.
const SupportContact = "0767218023"

const supportMessage = "Đơn hàng đang được xử lý, vui lòng liên hệ: " + SupportContact

func InitialStatus() Status {
	return StatusPending
}

func Valid(s Status) bool {
	_, ok := level[s]
	return ok
}

func ValidStatuses() []Status {
	return append(append([]Status{}, Sequence...), StatusCancelled)
}

// Next returns the immediate successor in the progression. ok is false for
// terminal states and CANCELLED.
func Next(current Status) (Status, bool) {
	l, known := level[current]
	if !known || l < 0 || l >= len(Sequence)-1 {
		return "", false
	}
	return Sequence[l+1], true
}

// TransitionError rejects a non-cancel move that is not the single next step.
type TransitionError struct {
	Current Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s", e.Current)
}

// AllowedNext names the only status the order may move to.
func (e *TransitionError) AllowedNext() (Status, bool) {
	return Next(e.Current)
}

// ===============================
// Validations
// ===============================

// CanTransition checks a non-cancel status update: exactly one step forward,
// never out of a terminal state.
func CanTransition(current, target Status) error {
	switch current {
	case StatusCancelled:
		return httperr.ErrBusiness("order_cancelled")
	case StatusDelivered:
		return httperr.ErrBusiness("order_delivered")
	}

	next, ok := Next(current)
	if !ok || next != target {
		return &TransitionError{Current: current}
	}
	return nil
}

// CanCancel checks cancel eligibility. Admins may cancel anything that is not
// terminal; customers only before preparation starts.
func CanCancel(current Status, isAdmin bool) error {
	switch current {
	case StatusCancelled:
		return httperr.ErrBusiness("already_cancelled")
	case StatusDelivered:
		return httperr.ErrBusiness("cancel_delivered")
	}

	if !isAdmin && level[current] > level[StatusConfirmed] {
		return httperr.ErrBusinessMsg("cancel_forbidden", supportMessage)
	}
	return nil
}
