// Package compress provides the payload compression codecs used by the
// binary envelope.
//
// An encoded document is line-oriented UTF-8 with heavy token repetition
// (column names, rule specs, dictionary strings), which compresses well under
// every supported algorithm. Zstd gives the best ratio, S2 and LZ4 trade
// ratio for speed, and the no-op codec keeps the payload readable inside the
// envelope.
//
// Zstd has two implementations selected by build tag: the cgo build binds
// valyala/gozstd, pure-Go builds use klauspost/compress/zstd. Both produce
// interchangeable frames.
package compress
