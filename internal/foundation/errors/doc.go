// Package errors provides the classified error type used across slidedeck.
//
// Every failure that reaches the command layer is expected to carry a
// category so the CLI can pick an exit code and a message:
//   - CategoryValidation: bad input or malformed registry data (fatal to the operation)
//   - CategoryNotFound: an asset has no revision history (reported, not fatal)
//   - CategoryExtraction: one revision could not be read (scoped to that revision)
//   - CategoryFileSystem: registry or output files could not be read or written
//   - CategoryGit: the revision-control backend failed in a way that is not "no history"
//
// Example usage:
//
//	err := errors.ValidationError("unknown topic").
//		WithContext("topic", topic).
//		WithContext("valid_topics", ids).
//		Build()
package errors
