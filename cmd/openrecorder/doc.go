// Command openrecorder is the CLI for the local-first audio library: it
// scans folders for recordings, materializes managed storage, transcribes
// audio, derives cached insights from transcripts, and reports library
// analytics.
package main
