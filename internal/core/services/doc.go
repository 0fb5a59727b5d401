// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. Similarity scoring comes from the
// internal similarity package; everything else goes through driven ports.
package services
