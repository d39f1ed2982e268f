// Package fingerprint derives deterministic content digests used as stable
// lookup keys: managed-storage directory suffixes are derived from source
// path strings and insights cache filenames from transcript text.
//
// The digest is md5 rendered as lowercase hex. It partitions namespaces and
// keys caches; it is not used for integrity verification, so cryptographic
// strength is not required. The on-disk layout depends on this exact digest,
// so the algorithm must never change.
package fingerprint
