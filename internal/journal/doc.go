// Package journal records publication runs in a local SQLite database.
//
// The journal is an observability aid, not durable job state: the pipeline
// appends status transitions as a run progresses and the CLI reads them
// back, but nothing ever resumes from the journal after a restart.
package journal
