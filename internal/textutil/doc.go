// Package textutil provides filename sanitization for job output folders.
//
// CleanForFilename is the single mapping from free text (series names, disc
// labels) to a path segment. The planner and the executor both build folder
// names through it, so any change to the mapping changes every computed
// rename target.
package textutil
