// Package workspace manages the short-lived scratch directory used while
// extracting historical versions of a figure.
//
// A Manager creates one uniquely named directory per comparison run and
// removes it, with everything written into it, on Cleanup. Callers defer
// Cleanup immediately after a successful Create so the directory never
// outlives the call, whatever happens to the extractions in between.
package workspace
