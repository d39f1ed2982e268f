// Package services defines the shared error taxonomy for the engine and
// holds the clients that talk to external collaborators.
//
// Every error that crosses a package boundary is tagged with one of the
// sentinel errors declared here so callers can classify failures without
// string matching.
package services
