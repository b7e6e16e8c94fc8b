// Package simulation implements the Monty Hall trial kernel: the door model,
// the host's opening rule, the two player strategies, and the Tally type used
// to reduce many trial outcomes into win counts.
//
// A Simulator owns its random generator. Simulators are not safe for
// concurrent use; parallel callers create one per worker, typically seeded
// with DeriveSeed so that a single base seed reproduces a whole run.
package simulation
