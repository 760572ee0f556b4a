package models

import "time"

// TransactionStatus tracks where a transaction sits in the reversal
// protocol. Status only ever changes through that protocol; every other
// field is frozen at creation time.
type TransactionStatus string

const (
	TransactionRegistered         TransactionStatus = "REGISTERED"
	TransactionReversionRequested TransactionStatus = "REVERSION_REQUESTED"
	TransactionReversed           TransactionStatus = "REVERSED"
)

// Transaction is one recorded cash movement. Amount and Commission are
// minor units; Commission is computed from the concept at creation time and
// never recomputed, so later concept edits do not touch history.
type Transaction struct {
	ID         int64
	BankID     int64
	ConceptID  int64
	CashierID  int64
	Amount     int64
	Commission int64
	Moment     time.Time
	Status     TransactionStatus
}
