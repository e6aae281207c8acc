// Package match implements exact substring matching over normalized
// document text. Queries are folded the same way documents are, so a query
// written with diacritics finds text written without them and vice versa.
// Matches are reported in original-document coordinates.
package match
