package ports

import (
	"context"
	"time"

	"github.com/pickit/print-system/internal/core/domain"
)

// SubmitJobInput carries everything needed to create a new print job.
// The target shop comes from the customer's session binding, not the input.
type SubmitJobInput struct {
	CustomerID string
	FileName   string
	PageCount  int
	Color      bool
	Duplex     bool
}

// AdvanceJobInput is an operator command moving the active job forward.
type AdvanceJobInput struct {
	JobID string
	To    domain.JobStatus
	// Role and ShopID enforce the transition table's caller column:
	// only the operator of the job's shop may advance it.
	Role   string
	ShopID string
}

// JobView is the read-only snapshot both role views observe. EstimatedReady
// is derived on read from the creation timestamp and expected offset.
type JobView struct {
	ID              string           `json:"id"`
	ShopID          string           `json:"shop_id"`
	FileName        string           `json:"file_name"`
	PageCount       int              `json:"page_count"`
	Color           bool             `json:"color"`
	Duplex          bool             `json:"duplex"`
	Status          domain.JobStatus `json:"status"`
	Cost            float64          `json:"cost"`
	CreatedAt       time.Time        `json:"created_at"`
	ExpectedMinutes int              `json:"expected_minutes"`
	EstimatedReady  time.Time        `json:"estimated_ready"`
}

// JobService owns the print job lifecycle state machine.
type JobService interface {
	// Submit creates a job in pending_payment with its cost frozen.
	Submit(ctx context.Context, in SubmitJobInput) (*JobView, error)
	// Active returns the customer's current job snapshot.
	Active(ctx context.Context, customerID string) (*JobView, error)
	// StartPayment launches the payment task for the pending job. The
	// lifecycle machine consumes exactly one completion event from it.
	StartPayment(ctx context.Context, customerID string) (*JobView, error)
	// CancelPayment abandons a payment task that has not committed yet.
	CancelPayment(ctx context.Context, customerID string) error
	// Advance applies one operator transition from the table. Requesting
	// the job's current status is an idempotent no-op.
	Advance(ctx context.Context, in AdvanceJobInput) (*JobView, error)
	// DiscardActive drops a customer's non-terminal job, used when the
	// session rebinds to a different shop.
	DiscardActive(ctx context.Context, customerID string) error
}
