package models

import "time"

// RequestStatus is the reversal request state machine:
// PENDING -> APPROVED | REJECTED, both terminal.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// Resolution is the evaluator's verdict on a pending request. DENIED maps
// to the stored status REJECTED.
type Resolution string

const (
	ResolutionApproved Resolution = "APPROVED"
	ResolutionDenied   Resolution = "DENIED"
)

// Valid reports whether r is a defined resolution value.
func (r Resolution) Valid() bool {
	return r == ResolutionApproved || r == ResolutionDenied
}

// RequestStatus returns the stored status a resolution produces.
func (r Resolution) RequestStatus() RequestStatus {
	if r == ResolutionApproved {
		return RequestApproved
	}
	return RequestRejected
}

// TransactionStatus returns the status the owning transaction moves to when
// a request resolves this way: APPROVED voids it, DENIED restores it.
func (r Resolution) TransactionStatus() TransactionStatus {
	if r == ResolutionApproved {
		return TransactionReversed
	}
	return TransactionRegistered
}

// ReversalRequest is a cashier's petition to void one of their own
// transactions. At most one request exists per transaction, enforced by a
// unique constraint on TransactionID.
type ReversalRequest struct {
	ID            int64
	TransactionID int64
	Message       string
	RequestedBy   int64
	RequestStamp  time.Time
	Status        RequestStatus
	Answer        *string
	AnswerStamp   *time.Time
	EvaluatedBy   *int64
}
