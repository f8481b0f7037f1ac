// Package api
// Author: momentics
//
// Interrupt subsystem contract, consumed by the timer driver and
// hardware-backed reactor backends. The platform interrupt controller
// itself lives outside this module.

package api

// IRQRegistry dispatches interrupt causes to registered callbacks. Handlers
// run in interrupt context: they must not suspend and should only invoke
// wakers or other interrupt-safe operations.
type IRQRegistry interface {
	// Register attaches fn to the given cause. Multiple handlers per cause
	// are invoked in registration order.
	Register(cause uint, fn func())

	// Trigger dispatches all handlers registered for cause.
	Trigger(cause uint)
}
