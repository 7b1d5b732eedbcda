package domain

import "errors"

// ScanState represents the pairing handshake between a customer session and
// a shop. The flow is idle → awaiting_permission → scanning → bound, with
// scanning → denied on a camera failure and denied re-entrant back to
// awaiting_permission on retry.
type ScanState string

const (
	ScanIdle               ScanState = "idle"
	ScanAwaitingPermission ScanState = "awaiting_permission"
	ScanScanning           ScanState = "scanning"
	ScanBound              ScanState = "bound"
	ScanDenied             ScanState = "denied"
)

var ErrScanNotActive = errors.New("scanner is not active")

var validScanTransitions = map[ScanState][]ScanState{
	ScanIdle:               {ScanAwaitingPermission},
	ScanAwaitingPermission: {ScanScanning, ScanDenied},
	ScanScanning:           {ScanBound, ScanDenied},
	ScanDenied:             {ScanAwaitingPermission},
	ScanBound:              {ScanIdle},
}

// CanTransitionTo reports whether the handshake may move from s to next.
func (s ScanState) CanTransitionTo(next ScanState) bool {
	for _, allowed := range validScanTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
