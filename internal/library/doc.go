// Package library scans the user's audio tree and aggregates it into usage
// analytics: KPIs, a daily series, a duration histogram, language and
// file-type distributions, and a recent-recordings table.
//
// Aggregation is deliberately a pure function over scanned items plus
// caller-supplied transcription metadata so two passes over an unchanged
// tree render identical output.
package library
