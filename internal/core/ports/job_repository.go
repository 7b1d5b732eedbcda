package ports

import (
	"context"

	"github.com/pickit/print-system/internal/core/domain"
)

// JobRepository persists the single active (non-terminal) job per customer.
// Collected jobs do not live here; they move to the history archive.
type JobRepository interface {
	Create(ctx context.Context, job *domain.PrintJob) error
	// FindActiveByCustomer returns the customer's active job, or
	// domain.ErrNoActiveJob when the slot is empty.
	FindActiveByCustomer(ctx context.Context, customerID string) (*domain.PrintJob, error)
	FindByID(ctx context.Context, jobID string) (*domain.PrintJob, error)
	Update(ctx context.Context, job *domain.PrintJob) error
	// Delete clears the active slot. Deleting an absent job is not an error.
	Delete(ctx context.Context, jobID string) error
}

// HistoryRepository is the append-only archive of collected jobs.
// Append is the sole mutation; there is no edit or delete.
type HistoryRepository interface {
	Append(ctx context.Context, job *domain.PrintJob) error
	// Remove backs out an entry whose paired active-slot clear failed.
	// It exists only for that compensation; the archive is otherwise
	// append-only.
	Remove(ctx context.Context, jobID string) error
	// List returns archived jobs most recent first.
	List(ctx context.Context, shopID string) ([]*domain.PrintJob, error)
}
