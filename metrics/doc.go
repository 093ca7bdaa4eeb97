// Package metrics evaluates the cryptographic strength of a 256-entry
// substitution box.
//
// It implements the standard S-box quality measures: nonlinearity via
// the Walsh-Hadamard transform, the strict avalanche criterion, the
// bit independence criterion (both its nonlinearity and avalanche
// forms), and the maximum linear and differential approximation
// probabilities from exhaustive scans.
//
// Every function is pure and deterministic over an immutable S-box
// snapshot. The expensive scans partition their outer loop across
// workers and reduce with order-independent min/max/sum, and every
// entry point takes a context so an interactive caller can abandon a
// recomputation the moment the S-box changes again.
package metrics
