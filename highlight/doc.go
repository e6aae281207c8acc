// Package highlight renders possibly-overlapping match ranges back onto the
// original document text as a flat list of segments safe for any renderer.
package highlight
