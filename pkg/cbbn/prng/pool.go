package prng

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	mathrand "math/rand"
	"sync"
	"time"
)

// PoolSize is the number of entropy bytes that key the Arcfour state. It is a
// multiple of 4 and larger than 32.
const PoolSize = 256

// BenchmarkSeed is the fixed timestamp mixed into benchmark pools so their
// output does not depend on the wall clock.
const BenchmarkSeed int64 = 1122926989487

var (
	// ErrShortEntropy indicates the entropy source ran dry before the pool
	// was filled.
	ErrShortEntropy = errors.New("prng: short entropy read")
	// ErrUnknownSource indicates an unrecognized entropy source name.
	ErrUnknownSource = errors.New("prng: unknown entropy source")
)

// Pool is an Arcfour-backed byte generator keyed from a 256-byte entropy pool.
// The seed is mixed into the pool when it is created and again when the first
// byte is requested; at that point the pool keys the Arcfour state and is
// wiped. Pool is safe for concurrent use.
type Pool struct {
	mu    sync.Mutex
	pool  [PoolSize]byte
	pptr  int
	seed  uint32
	state *Arcfour
}

// NewPool fills a pool from entropy and mixes in seed.
func NewPool(entropy io.Reader, seed uint32) (*Pool, error) {
	p := &Pool{seed: seed}
	if _, err := io.ReadFull(entropy, p.pool[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShortEntropy, err)
	}
	p.mix(seed)
	return p, nil
}

// NewBenchmarkPool returns a fully deterministic pool: the pool bytes come
// from a math/rand source seeded with BenchmarkSeed and the mixed seed is the
// low 32 bits of BenchmarkSeed. Two benchmark pools produce identical output.
func NewBenchmarkPool() *Pool {
	p := &Pool{seed: uint32(BenchmarkSeed & 0xffffffff)}
	rng := mathrand.New(mathrand.NewSource(BenchmarkSeed))
	for i := 0; i < PoolSize; i += 2 {
		t := rng.Intn(1 << 16)
		p.pool[i] = byte(t >> 8)
		p.pool[i+1] = byte(t)
	}
	p.mix(p.seed)
	return p
}

// mix XORs x into the next four pool bytes, least significant first.
func (p *Pool) mix(x uint32) {
	for i := 0; i < 4; i++ {
		p.pool[p.pptr] ^= byte(x >> (8 * i))
		p.pptr++
	}
	if p.pptr >= PoolSize {
		p.pptr -= PoolSize
	}
}

// Seed mixes an extra 32-bit value into the pool. It has no effect once the
// first byte has been produced.
func (p *Pool) Seed(x uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == nil {
		p.mix(x)
	}
}

func (p *Pool) next() byte {
	if p.state == nil {
		p.mix(p.seed)
		p.state = &Arcfour{}
		p.state.Init(p.pool[:])
		for i := range p.pool {
			p.pool[i] = 0
		}
		p.pptr = 0
	}
	return p.state.Next()
}

// Read fills b with keystream bytes. It never fails.
func (p *Pool) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range b {
		b[i] = p.next()
	}
	return len(b), nil
}

// System returns the operating system CSPRNG.
func System() io.Reader {
	return rand.Reader
}

// Source names an entropy source.
type Source string

const (
	// SourceSystem reads crypto/rand directly.
	SourceSystem Source = "system"
	// SourcePool keys a Pool from crypto/rand and the current time.
	SourcePool Source = "pool"
	// SourceBenchmark is the deterministic benchmark pool.
	SourceBenchmark Source = "benchmark"
)

// New returns a reader for the named source. The empty name selects
// SourceSystem.
func New(src Source) (io.Reader, error) {
	switch src {
	case "", SourceSystem:
		return System(), nil
	case SourcePool:
		p, err := NewPool(rand.Reader, uint32(time.Now().UnixMilli()))
		if err != nil {
			return nil, err
		}
		return p, nil
	case SourceBenchmark:
		return NewBenchmarkPool(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, string(src))
	}
}

// NonZeroByte reads bytes from r until it gets one that is not zero.
func NonZeroByte(r io.Reader) (byte, error) {
	var b [1]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		if b[0] != 0 {
			return b[0], nil
		}
	}
}
