package payment

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pickit/print-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

func fastSimulator() *Simulator {
	return NewSimulator(Config{
		ProcessingDelay: time.Millisecond,
		VerifyingDelay:  time.Millisecond,
	}, discardLogger)
}

func TestSimulator_ApprovesAfterStages(t *testing.T) {
	sim := fastSimulator()

	results, err := sim.Start(context.Background(), ports.PaymentRequest{JobID: "JOB-1", Amount: 45})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case res, ok := <-results:
		if !ok {
			t.Fatal("channel closed without result")
		}
		if !res.Approved || res.JobID != "JOB-1" || res.Provider != providerName {
			t.Fatalf("unexpected result: %+v", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for payment result")
	}

	// one completion event, then close
	if _, ok := <-results; ok {
		t.Fatal("expected channel to close after the result")
	}
}

func TestSimulator_CancellationClosesWithoutResult(t *testing.T) {
	sim := NewSimulator(Config{
		ProcessingDelay: time.Hour,
		VerifyingDelay:  time.Hour,
	}, discardLogger)

	ctx, cancel := context.WithCancel(context.Background())
	results, err := sim.Start(ctx, ports.PaymentRequest{JobID: "JOB-2", Amount: 10})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	cancel()

	select {
	case res, ok := <-results:
		if ok {
			t.Fatalf("expected close without result, got %+v", res)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
