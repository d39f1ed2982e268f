// Package probe shells out to ffprobe to read audio durations. Failures are
// reported as "unknown" instead of errors so a missing ffprobe install never
// breaks a library scan.
package probe
