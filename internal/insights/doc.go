// Package insights caches and computes the derived fields of a transcript:
// summary, recommended actions, and key topics.
//
// Records are keyed by a fingerprint of the trimmed transcript text and are
// partial: each field is computed independently and merged into the cached
// record without disturbing the others. The on-disk cache accepts both the
// structured JSON format and the legacy raw-summary-text format that
// predates it.
package insights
