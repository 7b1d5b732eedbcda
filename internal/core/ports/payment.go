package ports

import "context"

// PaymentRequest describes the charge for one pending job.
type PaymentRequest struct {
	JobID      string
	CustomerID string
	Amount     float64
}

// PaymentResult is the single completion event of a payment task.
type PaymentResult struct {
	JobID    string
	Approved bool
	Provider string
}

// PaymentGateway starts an asynchronous payment task and returns the channel
// its completion event arrives on. Cancelling ctx before completion closes
// the channel without a result; once a result has been sent the commit is no
// longer cancellable. The lifecycle machine only consumes the completion
// event, so a timed simulation and a real gateway are interchangeable here.
type PaymentGateway interface {
	Start(ctx context.Context, req PaymentRequest) (<-chan PaymentResult, error)
}
