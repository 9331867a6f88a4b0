// Package watch re-runs a pipeline whenever one of a set of files changes.
package watch
