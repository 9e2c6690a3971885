// Package normalisers provides implementations of the Normaliser interface.
// A normaliser rewrites fetched entry content into the layout of the
// combined changelog document.
//
// The markdown normaliser is wired into the combine service at startup.
package normalisers
