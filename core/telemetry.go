package core

import "time"

// TelemetryHook receives notifications about call lifecycle events.
//
// Events carry operational metadata only. Inputs, outputs, downloads and
// session tokens are never included, so events can be exported to external
// monitoring systems as they are.
type TelemetryHook interface {
	// OnCallStart is called before a call is sent.
	OnCallStart(e CallStartEvent)

	// OnCallEnd is called when a call completes, successfully or not.
	OnCallEnd(e CallEndEvent)
}

// CallStartEvent describes a starting call.
type CallStartEvent struct {
	ID            uint64    // Unique per call, shared with the matching CallEndEvent
	Func          string    // Remote function name
	Files         int       // Number of attachments
	Authenticated bool      // Whether a session token is attached
	Start         time.Time // When the call started
}

// CallEndEvent describes a completed call.
type CallEndEvent struct {
	ID        uint64
	Func      string
	Start     time.Time
	End       time.Time
	Downloads int   // Number of downloads in the reply
	Err       error // nil on success
}

// Duration returns the elapsed time for the call.
func (e CallEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is the default TelemetryHook.
type NoopTelemetryHook struct{}

// OnCallStart does nothing.
func (NoopTelemetryHook) OnCallStart(CallStartEvent) {}

// OnCallEnd does nothing.
func (NoopTelemetryHook) OnCallEnd(CallEndEvent) {}

var _ TelemetryHook = NoopTelemetryHook{}
