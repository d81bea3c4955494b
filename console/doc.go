// Package console prints assembled transcripts to a terminal. It provides the
// layout primitives (headings, dividers, message groups) and one leaf renderer
// per descriptor kind. Leaf renderers can be replaced with Printer.Register.
package console
