// Package registry owns the slides.yaml registry: the typed Registry, Topic
// and Slide model, a validating loader, a deterministic writer, slide id
// allocation and the "add a figure" workflow.
//
// The registry is read from disk on every operation; nothing is cached
// between invocations. All mutations go through Store.Update, which holds an
// advisory lock file for the duration of the read-modify-write and replaces
// the registry file atomically.
package registry
