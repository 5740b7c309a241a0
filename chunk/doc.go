// Package chunk splits long text into token-bounded segments with overlap,
// so each segment fits a model context window while preserving continuity
// across segment boundaries.
package chunk
