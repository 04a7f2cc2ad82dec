// Package pager shows a rendered table in a full-screen, scrollable view.
//
// It backs the --interactive flag. The model wraps a bubbles viewport; q, esc
// and ctrl+c quit, g and G jump to either end, and the viewport's own bindings
// handle line and page scrolling.
package pager
