// Package browse implements an interactive terminal browser over the merged
// variables of dotenv sources.
//
// Typing filters keys by fuzzy match. Up and Down (or Tab and Shift-Tab)
// move the selection, whose declaration and annotation sites are shown
// below the list. Esc clears the filter, or quits when it is empty.
package browse
