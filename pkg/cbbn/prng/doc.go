// Package prng provides the random sources used by key generation and
// padding.
//
// System returns crypto/rand and is the default everywhere. Pool is an
// Arcfour keystream keyed from a 256-byte entropy pool; NewBenchmarkPool
// builds one with a fixed seed so benchmark runs are reproducible. The
// benchmark pool is not suitable for real keys.
package prng
