package domain

import (
	"errors"
	"time"
)

// JobStatus represents the lifecycle state of a print job.
type JobStatus string

const (
	StatusPendingPayment JobStatus = "pending_payment"
	StatusInQueue        JobStatus = "in_queue"
	StatusPrinting       JobStatus = "printing"
	StatusReady          JobStatus = "ready"
	StatusCollected      JobStatus = "collected"
)

// validTransitions defines the allowed state machine transitions.
// The lifecycle is strictly linear; collected is terminal.
var validTransitions = map[JobStatus][]JobStatus{
	StatusPendingPayment: {StatusInQueue},
	StatusInQueue:        {StatusPrinting, StatusReady},
	StatusPrinting:       {StatusReady},
	StatusReady:          {StatusCollected},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrJobNotFound = errors.New("print job not found")
var ErrActiveJobExists = errors.New("an active print job already exists")
var ErrNoActiveJob = errors.New("no active print job")
var ErrPaymentNotPending = errors.New("job is not awaiting payment")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions apply.
func (s JobStatus) IsTerminal() bool {
	return s == StatusCollected
}

// IsValid reports whether s is a known status value.
func (s JobStatus) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusInQueue, StatusPrinting, StatusReady, StatusCollected:
		return true
	}
	return false
}

// PrintJob is the core aggregate root. At most one non-terminal job exists
// per customer at any time; a collected job is moved to the history archive
// and the active slot is cleared.
type PrintJob struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	ShopID          string    `json:"shop_id" bson:"shop_id"`
	CustomerID      string    `json:"customer_id" bson:"customer_id"`
	FileName        string    `json:"file_name" bson:"file_name"`
	PageCount       int       `json:"page_count" bson:"page_count"`
	Color           bool      `json:"color" bson:"color"`
	Duplex          bool      `json:"duplex" bson:"duplex"`
	Status          JobStatus `json:"status" bson:"status"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	ExpectedMinutes int       `json:"expected_minutes" bson:"expected_minutes"`
	// Cost is frozen at submission by the pricing engine and never
	// recomputed, even if the shop later edits its rate table.
	Cost float64 `json:"cost" bson:"cost"`
}

// EstimatedReady derives the expected ready time from the creation timestamp
// and the expected offset. It is recomputed on every read, never stored.
func (j *PrintJob) EstimatedReady() time.Time {
	return j.CreatedAt.Add(time.Duration(j.ExpectedMinutes) * time.Minute)
}
