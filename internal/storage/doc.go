// Package storage owns the managed recording tree under the application
// storage root:
//
//	<storage-root>/
//	  audios/<stem>-<hash6>/
//	    audio.<ext>
//	    transcript.txt
//	  summaries/<fingerprint>.txt
//
// The Locator is the pure path mapping; the Manager performs the idempotent
// materialization of directories and audio copies. Callers must never write
// into the tree directly.
package storage
