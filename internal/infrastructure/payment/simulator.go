package payment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pickit/print-system/internal/core/ports"
)

const (
	defaultProcessingDelay = 1500 * time.Millisecond
	defaultVerifyingDelay  = 2 * time.Second

	providerName = "upi-sim"
)

// Config holds the stage delays for the simulated gateway.
type Config struct {
	ProcessingDelay time.Duration
	VerifyingDelay  time.Duration
}

// Simulator is a stand-in UPI gateway that walks each payment through the
// processing and verifying stages on a timer and then approves it. Cancelling
// the context mid-flight closes the result channel without an event, exactly
// what an abandoned payment sheet looks like.
type Simulator struct {
	cfg Config
	log zerolog.Logger
}

func NewSimulator(cfg Config, log zerolog.Logger) *Simulator {
	if cfg.ProcessingDelay <= 0 {
		cfg.ProcessingDelay = defaultProcessingDelay
	}
	if cfg.VerifyingDelay <= 0 {
		cfg.VerifyingDelay = defaultVerifyingDelay
	}
	return &Simulator{cfg: cfg, log: log}
}

func (s *Simulator) Start(ctx context.Context, req ports.PaymentRequest) (<-chan ports.PaymentResult, error) {
	results := make(chan ports.PaymentResult, 1)

	go func() {
		defer close(results)

		stages := []struct {
			name  string
			delay time.Duration
		}{
			{"processing", s.cfg.ProcessingDelay},
			{"verifying", s.cfg.VerifyingDelay},
		}

		for _, stage := range stages {
			s.log.Debug().
				Str("job_id", req.JobID).
				Str("stage", stage.name).
				Msg("payment stage")

			select {
			case <-ctx.Done():
				s.log.Info().
					Str("job_id", req.JobID).
					Str("stage", stage.name).
					Msg("payment abandoned")
				return
			case <-time.After(stage.delay):
			}
		}

		results <- ports.PaymentResult{
			JobID:    req.JobID,
			Approved: true,
			Provider: providerName,
		}
	}()

	return results, nil
}
