package inventory

import "time"

// Recorder recibe los eventos observables del núcleo (implementado por metrics.Metrics).
type Recorder interface {
	MovementRecorded(direction, outcome string)
	MovementDeleted(outcome string)
	PartialFailure(operation string)
	BalanceRetry()
	BalanceConflict()
	BalanceAdjusted(d time.Duration)
}

// NopRecorder descarta todos los eventos.
type NopRecorder struct{}

func (NopRecorder) MovementRecorded(string, string) {}
func (NopRecorder) MovementDeleted(string)          {}
func (NopRecorder) PartialFailure(string)           {}
func (NopRecorder) BalanceRetry()                   {}
func (NopRecorder) BalanceConflict()                {}
func (NopRecorder) BalanceAdjusted(time.Duration)   {}
