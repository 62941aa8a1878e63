// Package consolidation groups catalog records into series.
//
// The Engine handles one record: it stores the anime, looks for a series
// through the record's relation edges, falls back to title similarity, asks
// the disambiguation gate when the evidence is borderline, and finally creates
// or attaches through the series mutator. The Driver feeds the Engine from
// catalog pages or an explicit id list, strictly one record at a time, and
// saves the checkpoint after every record so an interrupted run resumes where
// it stopped.
package consolidation
