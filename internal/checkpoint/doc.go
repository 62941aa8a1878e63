// Package checkpoint persists consolidation progress between runs.
//
// The checkpoint is a small JSON document holding the next catalog page to
// fetch, the external ids already processed, and the ids the catalog could not
// supply. It is rewritten atomically after every record so a run interrupted at
// any point resumes without reprocessing anything it already finished.
package checkpoint
