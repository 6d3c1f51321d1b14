// Package observer fans out before/after notifications of protocol operations to
// registered observers.
//
// Observers are registered by name for an operation pattern. Operation names have
// the form "<module>/<Operation>", e.g. "locations/GetLocation", and patterns use
// doublestar glob syntax:
//
//	bus.OnBefore("audit", "locations/*", auditFn)   // every Locations operation
//	bus.OnAfter("slow", "*/Patch*", slowPatchFn)    // PATCHes of any module
//	bus.OnAfter("all", "", everythingFn)            // empty pattern matches all
//
// A failing observer never affects the operation or the other observers: returned
// errors and panics are handed to the bus's ErrorHandler, which logs them by
// default.
//
// In async mode notifications are queued to a single dispatcher goroutine, so
// they are delivered in the order the pipeline produced them. Close drains the
// queue.
package observer
