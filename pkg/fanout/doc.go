// Package fanout runs independent fetches concurrently and flattens their
// results in input order.
//
// Each unit of work reports a [Result] that is one of three outcomes:
//
//   - [StatusOK]: the unit produced items (possibly none)
//   - [StatusDegraded]: the unit's response was unusable; it contributes
//     nothing, and the run carries on
//   - [StatusFailed]: a hard failure; the whole run fails
//
// [Run] returns on the first hard failure without waiting for the other
// units. A failure does not cancel units that are already in flight; it only
// stops new ones from starting.
package fanout
