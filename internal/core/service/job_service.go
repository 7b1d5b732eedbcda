package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pickit/print-system/internal/api/metrics"
	"github.com/pickit/print-system/internal/core/domain"
	"github.com/pickit/print-system/internal/core/ports"
)

const (
	// submitExpectedMinutes is the ETA offset shown to a freshly submitted
	// job, before it enters the queue.
	submitExpectedMinutes = 8
	// queueHandlingMinutes is added on top of raw printing time once the
	// job is paid and queued.
	queueHandlingMinutes = 5
)

// JobService owns the canonical PrintJob record and enforces the lifecycle
// transition table. Both role views command and observe it; there is no
// per-role copy of the job.
type JobService struct {
	jobs     ports.JobRepository
	shops    ports.ShopRepository
	history  ports.HistoryRepository
	sessions ports.SessionStore
	payments ports.PaymentGateway
	effects  ports.EffectDispatcher
	log      zerolog.Logger

	mu             sync.Mutex
	paymentCancels map[string]context.CancelFunc // jobID -> cancel
}

func NewJobService(
	jobs ports.JobRepository,
	shops ports.ShopRepository,
	history ports.HistoryRepository,
	sessions ports.SessionStore,
	payments ports.PaymentGateway,
	effects ports.EffectDispatcher,
	log zerolog.Logger,
) *JobService {
	return &JobService{
		jobs:           jobs,
		shops:          shops,
		history:        history,
		sessions:       sessions,
		payments:       payments,
		effects:        effects,
		log:            log,
		paymentCancels: make(map[string]context.CancelFunc),
	}
}

// Submit creates a new job in pending_payment. The cost is computed once from
// the shop's current rate table and frozen; later rate edits never reprice it.
func (s *JobService) Submit(ctx context.Context, in ports.SubmitJobInput) (*ports.JobView, error) {
	shopID, err := s.sessions.Binding(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("submit: read binding: %w", err)
	}
	if shopID == "" {
		return nil, domain.ErrNotConnected
	}

	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	if !shop.Configured {
		return nil, domain.ErrShopNotConfigured
	}
	if shop.Paused {
		return nil, domain.ErrShopPaused
	}

	// One non-terminal job per customer: a second submission is only
	// possible after the prior job is collected and archived.
	if _, err := s.jobs.FindActiveByCustomer(ctx, in.CustomerID); err == nil {
		return nil, domain.ErrActiveJobExists
	} else if !errors.Is(err, domain.ErrNoActiveJob) {
		return nil, fmt.Errorf("submit: %w", err)
	}

	job := &domain.PrintJob{
		ID:              "JOB-" + uuid.NewString(),
		ShopID:          shop.ID,
		CustomerID:      in.CustomerID,
		FileName:        in.FileName,
		PageCount:       in.PageCount,
		Color:           in.Color,
		Duplex:          in.Duplex,
		Status:          domain.StatusPendingPayment,
		CreatedAt:       time.Now().UTC(),
		ExpectedMinutes: submitExpectedMinutes,
		Cost:            shop.Rates.Cost(in.Color, in.Duplex, in.PageCount),
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		s.log.Error().Err(err).Str("customer_id", in.CustomerID).Msg("failed to create job")
		return nil, err
	}

	metrics.JobsSubmittedTotal.WithLabelValues(colorLabel(job.Color), duplexLabel(job.Duplex)).Inc()

	s.log.Info().
		Str("job_id", job.ID).
		Str("shop_id", shop.ID).
		Str("file_name", job.FileName).
		Float64("cost", job.Cost).
		Msg("job submitted")

	return jobView(job), nil
}

// Active returns the customer's current job snapshot.
func (s *JobService) Active(ctx context.Context, customerID string) (*ports.JobView, error) {
	job, err := s.jobs.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return jobView(job), nil
}

// StartPayment launches the asynchronous payment task for the pending job.
// The task is cancellable until its completion event arrives; the completion
// commit itself always runs to the end.
func (s *JobService) StartPayment(ctx context.Context, customerID string) (*ports.JobView, error) {
	job, err := s.jobs.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.StatusPendingPayment {
		return nil, domain.ErrPaymentNotPending
	}

	s.mu.Lock()
	if _, running := s.paymentCancels[job.ID]; running {
		s.mu.Unlock()
		return jobView(job), nil // already in flight
	}
	// The task outlives the HTTP request; it is tied to its own context so
	// closing the payment sheet, not the connection, cancels it.
	payCtx, cancel := context.WithCancel(context.Background())
	s.paymentCancels[job.ID] = cancel
	s.mu.Unlock()

	results, err := s.payments.Start(payCtx, ports.PaymentRequest{
		JobID:      job.ID,
		CustomerID: customerID,
		Amount:     job.Cost,
	})
	if err != nil {
		s.dropPaymentCancel(job.ID)
		return nil, fmt.Errorf("start payment: %w", err)
	}

	go s.awaitPayment(job.ID, time.Now(), results)

	s.log.Info().Str("job_id", job.ID).Float64("amount", job.Cost).Msg("payment started")
	return jobView(job), nil
}

// CancelPayment abandons an in-flight payment task. Once the gateway has
// emitted its completion event the cancel is a no-op.
func (s *JobService) CancelPayment(ctx context.Context, customerID string) error {
	job, err := s.jobs.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	cancel, ok := s.paymentCancels[job.ID]
	delete(s.paymentCancels, job.ID)
	s.mu.Unlock()

	if ok {
		cancel()
		s.log.Info().Str("job_id", job.ID).Msg("payment cancelled")
	}
	return nil
}

// awaitPayment consumes the single completion event and re-enters the
// lifecycle machine exactly once.
func (s *JobService) awaitPayment(jobID string, started time.Time, results <-chan ports.PaymentResult) {
	res, ok := <-results
	s.dropPaymentCancel(jobID)
	if !ok {
		metrics.PaymentDuration.WithLabelValues("cancelled").Observe(time.Since(started).Seconds())
		s.log.Debug().Str("job_id", jobID).Msg("payment task ended without result")
		return
	}
	if !res.Approved {
		metrics.PaymentDuration.WithLabelValues("declined").Observe(time.Since(started).Seconds())
		s.log.Warn().Str("job_id", jobID).Str("provider", res.Provider).Msg("payment declined")
		return
	}
	metrics.PaymentDuration.WithLabelValues("approved").Observe(time.Since(started).Seconds())

	// The commit is past the point of no return: detach from any caller
	// context and run to completion.
	if err := s.completePayment(context.Background(), res.JobID); err != nil {
		s.log.Error().Err(err).Str("job_id", res.JobID).Msg("payment commit failed")
	}
}

// completePayment applies pending_payment -> in_queue. The creation timestamp
// resets to now, restarting the ETA baseline with a queue-derived offset.
func (s *JobService) completePayment(ctx context.Context, jobID string) error {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status == domain.StatusInQueue {
		return nil // duplicate completion event, already applied
	}
	if !job.Status.CanTransitionTo(domain.StatusInQueue) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, job.Status, domain.StatusInQueue)
	}

	updated := *job
	updated.Status = domain.StatusInQueue
	updated.CreatedAt = time.Now().UTC()
	updated.ExpectedMinutes = s.queueMinutes(ctx, job)

	if err := s.jobs.Update(ctx, &updated); err != nil {
		return fmt.Errorf("complete payment: %w", err)
	}

	metrics.JobTransitionsTotal.WithLabelValues(string(job.Status), string(updated.Status)).Inc()
	s.log.Info().Str("job_id", job.ID).Int("expected_minutes", updated.ExpectedMinutes).Msg("payment confirmed, job queued")
	return nil
}

// queueMinutes derives the in-queue ETA offset from the shop's rated
// throughput, falling back to the submission default when the shop record
// is unavailable.
func (s *JobService) queueMinutes(ctx context.Context, job *domain.PrintJob) int {
	shop, err := s.shops.FindByID(ctx, job.ShopID)
	if err != nil || shop.PagesPerMin <= 0 {
		return submitExpectedMinutes
	}
	printing := (job.PageCount + shop.PagesPerMin - 1) / shop.PagesPerMin
	if printing < 1 {
		printing = 1
	}
	return printing + queueHandlingMinutes
}

// Advance applies one operator transition from the table. Requesting the
// job's current status again is a no-op that re-fires nothing.
func (s *JobService) Advance(ctx context.Context, in ports.AdvanceJobInput) (*ports.JobView, error) {
	if in.Role != domain.RoleOperator {
		return nil, domain.ErrForbidden
	}

	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if in.ShopID != "" && job.ShopID != in.ShopID {
		return nil, domain.ErrForbidden
	}

	if job.Status == in.To {
		return jobView(job), nil // idempotent advance
	}
	// pending_payment -> in_queue belongs to the customer's payment flow,
	// not to the operator console.
	if !in.To.IsValid() || in.To == domain.StatusInQueue || in.To == domain.StatusPendingPayment {
		metrics.InvalidTransitionsTotal.WithLabelValues(string(in.To)).Inc()
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, job.Status, in.To)
	}
	if !job.Status.CanTransitionTo(in.To) {
		metrics.InvalidTransitionsTotal.WithLabelValues(string(in.To)).Inc()
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, job.Status, in.To)
	}

	updated := *job
	updated.Status = in.To

	if in.To == domain.StatusCollected {
		// Terminal: archive first, then clear the active slot. The job
		// survives as a history record only. A failed clear backs the
		// archive entry out again so the command stays all-or-nothing.
		if err := s.history.Append(ctx, &updated); err != nil {
			return nil, fmt.Errorf("archive job: %w", err)
		}
		if err := s.jobs.Delete(ctx, job.ID); err != nil {
			if rmErr := s.history.Remove(ctx, job.ID); rmErr != nil {
				s.log.Error().Err(rmErr).Str("job_id", job.ID).Msg("archived job still holds the active slot")
			}
			return nil, fmt.Errorf("clear active slot: %w", err)
		}
	} else {
		if err := s.jobs.Update(ctx, &updated); err != nil {
			return nil, fmt.Errorf("advance job: %w", err)
		}
	}

	// Side effects fire only after the state commit.
	if in.To == domain.StatusReady {
		s.effects.JobReady(ports.ReadyNotification{
			JobID:      updated.ID,
			FileName:   updated.FileName,
			ShopID:     updated.ShopID,
			CustomerID: updated.CustomerID,
		})
	}

	metrics.JobTransitionsTotal.WithLabelValues(string(job.Status), string(in.To)).Inc()

	s.log.Info().
		Str("job_id", job.ID).
		Str("from", string(job.Status)).
		Str("to", string(in.To)).
		Msg("job advanced")

	return jobView(&updated), nil
}

// DiscardActive drops the customer's non-terminal job, cancelling any
// in-flight payment task first. Used when the session rebinds to a new shop.
func (s *JobService) DiscardActive(ctx context.Context, customerID string) error {
	job, err := s.jobs.FindActiveByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveJob) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	if cancel, ok := s.paymentCancels[job.ID]; ok {
		delete(s.paymentCancels, job.ID)
		cancel()
	}
	s.mu.Unlock()

	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		return fmt.Errorf("discard job: %w", err)
	}
	s.log.Info().Str("job_id", job.ID).Str("customer_id", customerID).Msg("active job discarded")
	return nil
}

func (s *JobService) dropPaymentCancel(jobID string) {
	s.mu.Lock()
	delete(s.paymentCancels, jobID)
	s.mu.Unlock()
}

func colorLabel(color bool) string {
	if color {
		return "color"
	}
	return "mono"
}

func duplexLabel(duplex bool) string {
	if duplex {
		return "double"
	}
	return "single"
}

func jobView(job *domain.PrintJob) *ports.JobView {
	return &ports.JobView{
		ID:              job.ID,
		ShopID:          job.ShopID,
		FileName:        job.FileName,
		PageCount:       job.PageCount,
		Color:           job.Color,
		Duplex:          job.Duplex,
		Status:          job.Status,
		Cost:            job.Cost,
		CreatedAt:       job.CreatedAt,
		ExpectedMinutes: job.ExpectedMinutes,
		EstimatedReady:  job.EstimatedReady(),
	}
}
