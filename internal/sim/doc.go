// Package sim provides the discrete-event simulation engine for
// preemptive earliest-deadline-first scheduling of periodic task sets.
//
// A run is driven by two min-priority queues. The future queue holds
// not-yet-released jobs keyed by (release time, admission sequence); the
// ready queue holds released, incomplete jobs keyed by (absolute
// deadline, release time, admission sequence). The trailing sequence
// number makes every tie deterministic, so identical inputs always
// produce identical timelines.
//
// The event loop advances a virtual clock from one event boundary to the
// next: a job runs until it finishes, the next release arrives, or the
// horizon cuts it off. Only a new release can change the deadline
// ordering, so evaluating the queue at those boundaries yields full
// preemptivity without intermediate checks. Cost is linear in the number
// of jobs released within the horizon.
//
// Simulate is a pure function: queues, clock and per-job state live on
// the call stack and are discarded on return. Independent runs may be
// executed concurrently; a single run is strictly sequential.
package sim
