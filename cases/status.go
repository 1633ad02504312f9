package cases

import "fmt"

// Status is the closed, ordered set of processing stages a case may occupy.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusReview    Status = "review"
	StatusPayment   Status = "payment"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
)

// statusOrder is the required forward progression. No backward transitions,
// no branching, no skip-ahead.
var statusOrder = []Status{
	StatusSubmitted,
	StatusReview,
	StatusPayment,
	StatusReady,
	StatusCompleted,
}

// StatusMeta is the display contract each status carries: a label key for
// the translator plus a fixed icon and color class. The mapping is part of
// the public contract between the state machine and its consumers.
type StatusMeta struct {
	LabelKey string
	Icon     string
	Color    string
}

var statusMeta = map[Status]StatusMeta{
	StatusSubmitted: {LabelKey: "cases.submitted", Icon: "clock", Color: "status-submitted"},
	StatusReview:    {LabelKey: "cases.underReview", Icon: "file-check", Color: "status-review"},
	StatusPayment:   {LabelKey: "cases.paymentPending", Icon: "credit-card", Color: "status-payment"},
	StatusReady:     {LabelKey: "cases.readyForPickup", Icon: "package", Color: "status-ready"},
	StatusCompleted: {LabelKey: "cases.completed", Icon: "check-circle", Color: "status-completed"},
}

// Valid reports whether the status belongs to the enumeration.
func (s Status) Valid() bool {
	_, ok := statusMeta[s]
	return ok
}

// Rank returns the position of the status in the forward progression,
// starting at 0 for submitted. Panics on an unknown status: the enumeration
// is closed, so an out-of-set value is a programming error.
func (s Status) Rank() int {
	for i, status := range statusOrder {
		if status == s {
			return i
		}
	}
	panic(fmt.Sprintf("cases: unknown status %q", s))
}

// Next returns the following stage and false once the case is completed.
func (s Status) Next() (Status, bool) {
	rank := s.Rank()
	if rank == len(statusOrder)-1 {
		return s, false
	}
	return statusOrder[rank+1], true
}

// Meta returns the display contract for the status. Panics on an unknown
// status for the same reason as Rank.
func (s Status) Meta() StatusMeta {
	meta, ok := statusMeta[s]
	if !ok {
		panic(fmt.Sprintf("cases: unknown status %q", s))
	}
	return meta
}

// Statuses returns the enumeration in forward order.
func Statuses() []Status {
	out := make([]Status, len(statusOrder))
	copy(out, statusOrder)
	return out
}
