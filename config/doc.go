// Package config loads tool configuration from defaults, an optional config
// file, SWAYABI_* environment variables and command line flags, in increasing
// order of precedence.
//
// Keys:
//
//	codec.pointer_base       absolute address of the first payload byte
//	codec.max_heap_size      encoder heap limit in bytes
//	codec.max_vector_length  element limit for decoded Vec/Bytes/String
//	revert.panic_docs_url    page panic messages link to
//	log.level                debug, info, warn or error
//	log.development          human-readable console logging
//	programs                 contract id (0x hex) to ABI file path
//
// Nested keys map to environment variables with dots replaced by
// underscores, e.g. SWAYABI_CODEC_POINTER_BASE.
package config
