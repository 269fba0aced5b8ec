// Package services contains stateless domain services that implement business
// logic spanning aggregates, currently the deterministic pricing engine.
package services
