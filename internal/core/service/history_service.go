package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pickit/print-system/internal/core/ports"
)

// HistoryService reads the append-only archive of collected jobs. Aggregates
// are folded over the list on demand so they can never drift from it.
type HistoryService struct {
	history ports.HistoryRepository
	log     zerolog.Logger
}

func NewHistoryService(history ports.HistoryRepository, log zerolog.Logger) *HistoryService {
	return &HistoryService{history: history, log: log}
}

// List returns archived jobs most recent first.
func (s *HistoryService) List(ctx context.Context, shopID string) ([]ports.HistoryItem, error) {
	jobs, err := s.history.List(ctx, shopID)
	if err != nil {
		return nil, err
	}

	items := make([]ports.HistoryItem, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, ports.HistoryItem{
			JobID:     j.ID,
			FileName:  j.FileName,
			PageCount: j.PageCount,
			Color:     j.Color,
			Duplex:    j.Duplex,
			Cost:      j.Cost,
			Status:    j.Status,
			CreatedAt: j.CreatedAt,
		})
	}
	return items, nil
}

// Summary folds count, cost, and page totals over the archive.
func (s *HistoryService) Summary(ctx context.Context, shopID string) (*ports.HistorySummary, error) {
	jobs, err := s.history.List(ctx, shopID)
	if err != nil {
		return nil, err
	}

	summary := &ports.HistorySummary{}
	for _, j := range jobs {
		summary.Jobs++
		summary.TotalCost += j.Cost
		summary.TotalPages += j.PageCount
	}
	return summary, nil
}
