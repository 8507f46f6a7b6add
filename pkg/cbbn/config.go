package cbbn

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coinbase/cb-bn-go/pkg/cbbn/bigint"
	"github.com/coinbase/cb-bn-go/pkg/cbbn/prng"
	"github.com/coinbase/cb-bn-go/pkg/cbbn/rsa"
)

// Config selects the digit kernel, the entropy source and the key generation
// retry budget. The zero value is usable: a 28-bit split kernel reading
// crypto/rand with the default retry budget.
type Config struct {
	// DigitBits is the limb width, one of 26, 28 or 30. Zero means 28.
	DigitBits int `yaml:"digit_bits"`

	// MulAdd names the multiply-accumulate primitive, "split" or "wide".
	// Empty means split.
	MulAdd string `yaml:"mul_add"`

	// Entropy names the random source: system, pool or benchmark.
	Entropy prng.Source `yaml:"entropy"`

	// KeygenAttempts bounds the prime-pair retries of key generation. Zero
	// means rsa.MaxGenerateAttempts.
	KeygenAttempts int `yaml:"keygen_attempts"`
}

func (c Config) withDefaults() Config {
	if c.DigitBits == 0 {
		c.DigitBits = bigint.DefaultDigitBits
	}
	if c.MulAdd == "" {
		c.MulAdd = bigint.MulAddSplit.String()
	}
	if c.Entropy == "" {
		c.Entropy = prng.SourceSystem
	}
	if c.KeygenAttempts == 0 {
		c.KeygenAttempts = rsa.MaxGenerateAttempts
	}
	return c
}

// Validate reports every invalid field, joined.
func (c Config) Validate() error {
	c = c.withDefaults()
	var errs []error
	switch c.DigitBits {
	case 26, 28, 30:
	default:
		errs = append(errs, fmt.Errorf("digit_bits %d: %w", c.DigitBits, bigint.ErrUnsupportedDigitBits))
	}
	if _, err := bigint.ParseMulAddMode(c.MulAdd); err != nil {
		errs = append(errs, fmt.Errorf("mul_add: %w", err))
	}
	switch c.Entropy {
	case prng.SourceSystem, prng.SourcePool, prng.SourceBenchmark:
	default:
		errs = append(errs, fmt.Errorf("entropy %q: %w", string(c.Entropy), prng.ErrUnknownSource))
	}
	if c.KeygenAttempts < 0 {
		errs = append(errs, fmt.Errorf("keygen_attempts %d must not be negative", c.KeygenAttempts))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ParseConfig decodes a YAML document. Unknown keys are rejected.
func ParseConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and validates the YAML config at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cbbn: reading config: %w", err)
	}
	return ParseConfig(bytes.NewReader(data))
}
