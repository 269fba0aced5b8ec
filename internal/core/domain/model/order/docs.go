// Package order implements the Order aggregate and its lifecycle state machine.
//
// The aggregate enforces the marketplace's core invariants: transporter assignment
// is coupled to the pending -> accepted boundary, the status history is an
// append-only audit trail whose entries always form a valid path through the
// transition table, pricing is written once at creation, and post-delivery ratings
// are write-once per party.
//
// Authorization (who may drive which transition) is deliberately a caller concern:
// the state machine stays pure and independently testable, while the application
// layer enforces that only the assigned transporter advances an order and only a
// party to the order may cancel or rate it.
package order
