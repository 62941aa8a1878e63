// Package textutil provides the title text processing used to group catalog
// records into series.
//
// The primary use cases are:
//   - Normalizing raw titles into a comparable lower-case form
//   - Extracting base titles with season, part, numeral and format suffixes removed
//   - Reducing titles to core words and scoring the overlap between two titles
//
// Everything here is pure and never fails; degenerate input yields an empty
// string or a zero score.
package textutil
