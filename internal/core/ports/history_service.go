package ports

import (
	"context"
	"time"

	"github.com/pickit/print-system/internal/core/domain"
)

// HistoryItem is one archived job as shown in the payment history.
type HistoryItem struct {
	JobID     string           `json:"job_id"`
	FileName  string           `json:"file_name"`
	PageCount int              `json:"page_count"`
	Color     bool             `json:"color"`
	Duplex    bool             `json:"duplex"`
	Cost      float64          `json:"cost"`
	Status    domain.JobStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// HistorySummary aggregates the archive by folding over it on demand; the
// values are never cached independently of the underlying list.
type HistorySummary struct {
	Jobs       int     `json:"jobs"`
	TotalCost  float64 `json:"total_cost"`
	TotalPages int     `json:"total_pages"`
}

// HistoryService reads the append-only archive of collected jobs.
type HistoryService interface {
	List(ctx context.Context, shopID string) ([]HistoryItem, error)
	Summary(ctx context.Context, shopID string) (*HistorySummary, error)
}
