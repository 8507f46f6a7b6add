package cbbn

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/coinbase/cb-bn-go/pkg/cbbn/bigint"
	"github.com/coinbase/cb-bn-go/pkg/cbbn/logging"
	"github.com/coinbase/cb-bn-go/pkg/cbbn/prng"
	"github.com/coinbase/cb-bn-go/pkg/cbbn/rsa"
)

// Library binds a digit kernel, a random source and a logger. Keys created
// through it share all three. Methods are safe for concurrent use; keys are
// not.
type Library struct {
	cfg  Config
	kern *bigint.Kernel
	rng  io.Reader
	log  logging.Logger

	mu     sync.Mutex
	closed bool
}

// Option configures Open.
type Option func(*Library)

// WithLogger routes library and key logs to l.
func WithLogger(l logging.Logger) Option {
	return func(lib *Library) {
		if l != nil {
			lib.log = l
		}
	}
}

// WithRand overrides the entropy source named in the config.
func WithRand(r io.Reader) Option {
	return func(lib *Library) {
		if r != nil {
			lib.rng = r
		}
	}
}

// Open validates cfg and builds the kernel and random source it names.
func Open(cfg Config, opts ...Option) (*Library, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	mode, err := bigint.ParseMulAddMode(cfg.MulAdd)
	if err != nil {
		return nil, err
	}
	kern, err := bigint.NewKernel(cfg.DigitBits, mode)
	if err != nil {
		return nil, err
	}
	lib := &Library{cfg: cfg, kern: kern, log: logging.Discard()}
	for _, opt := range opts {
		opt(lib)
	}
	if lib.rng == nil {
		if lib.rng, err = prng.New(cfg.Entropy); err != nil {
			return nil, err
		}
	}
	lib.log.Debug(context.Background(), "library opened",
		"kernel", kern.String(), "entropy", string(cfg.Entropy))
	return lib, nil
}

// Config returns the effective configuration, defaults filled in.
func (l *Library) Config() Config { return l.cfg }

// Kernel returns the digit kernel.
func (l *Library) Kernel() *bigint.Kernel { return l.kern }

// Rand returns the random source.
func (l *Library) Rand() io.Reader { return l.rng }

// Logger returns the logger.
func (l *Library) Logger() logging.Logger { return l.log }

func (l *Library) check() error {
	if l == nil {
		return ErrLibraryClosed
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLibraryClosed
	}
	return nil
}

// NewKey returns an empty key bound to the library.
func (l *Library) NewKey() (*rsa.Key, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	return rsa.NewKey(
		rsa.WithKernel(l.kern),
		rsa.WithRand(l.rng),
		rsa.WithLogger(l.log),
		rsa.WithMaxAttempts(l.cfg.KeygenAttempts),
	), nil
}

// GenerateKey generates a bits-long key with the hex public exponent eHex.
func (l *Library) GenerateKey(ctx context.Context, bits int, eHex string) (*rsa.Key, error) {
	key, err := l.NewKey()
	if err != nil {
		return nil, err
	}
	if err := key.Generate(ctx, bits, eHex); err != nil {
		return nil, err
	}
	return key, nil
}

// LoadKey reads a YAML key file.
func (l *Library) LoadKey(path string) (*rsa.Key, error) {
	key, err := l.NewKey()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cbbn: reading key: %w", err)
	}
	defer ZeroizeBytes(data)
	var p rsa.Params
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("cbbn: decoding key %s: %w", path, err)
	}
	if err := key.SetParams(p); err != nil {
		return nil, err
	}
	return key, nil
}

// SaveKey writes key as YAML to path with owner-only permissions.
func (l *Library) SaveKey(path string, key *rsa.Key) error {
	if err := l.check(); err != nil {
		return err
	}
	data, err := yaml.Marshal(key.Params())
	if err != nil {
		return fmt.Errorf("cbbn: encoding key: %w", err)
	}
	defer ZeroizeBytes(data)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("cbbn: writing key: %w", err)
	}
	return nil
}

// Close marks the library closed. A second call returns ErrLibraryClosed.
func (l *Library) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLibraryClosed
	}
	l.closed = true
	return nil
}
