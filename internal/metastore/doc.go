// Package metastore persists transcription metadata (language, transcribed
// seconds) per source path in a small SQLite database under the storage
// root. The analytics aggregator takes this data as a plain map; the store
// is only one possible supplier of it.
package metastore
