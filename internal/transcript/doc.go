// Package transcript resolves transcript text for source recordings.
//
// Reads are backward-compatible: an older release stored transcripts as
// sidecar .txt files next to the audio, and those are still honored and
// migrated into managed storage on first read. Writes only ever target the
// managed location.
package transcript
