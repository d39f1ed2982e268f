// Package transcriber orchestrates transcription runs: it calls the
// external transcription service, lands transcripts in managed storage, and
// records language and duration metadata. Batch runs are strictly
// sequential by design.
package transcriber
