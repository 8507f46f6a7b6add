package rsa

import (
	"context"

	"github.com/coinbase/cb-bn-go/pkg/cbbn/bigint"
)

// maxPrimeDraws bounds the search for a single prime factor.
const maxPrimeDraws = 1024

// MinGenerateBits is the smallest modulus Generate accepts.
const MinGenerateBits = 16

// Generate replaces the key with a fresh bits-long private key using the hex
// public exponent eHex. p gets bits-bits/2 bits and q gets bits/2, each a
// probable prime with gcd(prime-1, e) = 1; the pair is retried until
// gcd((p-1)(q-1), e) = 1, at most the configured number of times. ctx is
// checked between prime draws.
func (k *Key) Generate(ctx context.Context, bits int, eHex string) error {
	if bits < MinGenerateBits {
		return errorf("Generate", "%w: %d bits", ErrKeyGeneration, bits)
	}
	e, err := parseExponent(eHex)
	if err != nil {
		return &Error{Op: "Generate", Err: err}
	}
	one := k.kern.NewInt(1)
	ee := k.kern.NewInt(int64(e))
	qs := bits >> 1

	for attempt := 1; attempt <= k.attempts; attempt++ {
		p, err := k.drawPrime(ctx, bits-qs, ee)
		if err != nil {
			return &Error{Op: "Generate", Err: err}
		}
		q, err := k.drawPrime(ctx, qs, ee)
		if err != nil {
			return &Error{Op: "Generate", Err: err}
		}
		if p.Cmp(q) <= 0 {
			p, q = q, p
		}
		p1, q1 := p.Sub(one), q.Sub(one)
		phi := p1.Mul(q1)
		if p.Equal(q) || !phi.GCD(ee).Equal(one) {
			k.log.Debug(ctx, "rejected RSA prime pair", "attempt", attempt, "bits", bits)
			continue
		}

		d := ee.ModInverse(phi)
		dmp1, err := d.Mod(p1)
		if err != nil {
			return &Error{Op: "Generate", Err: err}
		}
		dmq1, err := d.Mod(q1)
		if err != nil {
			return &Error{Op: "Generate", Err: err}
		}
		k.clear()
		k.n, k.e = p.Mul(q), e
		k.d, k.p, k.q = d, p, q
		k.dmp1, k.dmq1, k.coeff = dmp1, dmq1, q.ModInverse(p)
		k.log.Debug(ctx, "generated RSA key", "bits", bits, "attempts", attempt,
			"modulus_bits", k.n.BitLen())
		return nil
	}
	k.log.Warn(ctx, "RSA key generation gave up", "bits", bits, "attempts", k.attempts)
	return errorf("Generate", "%w: no usable prime pair after %d attempts", ErrKeyGeneration, k.attempts)
}

// drawPrime returns a bits-long probable prime x with gcd(x-1, e) = 1.
func (k *Key) drawPrime(ctx context.Context, bits int, e *bigint.Int) (*bigint.Int, error) {
	one := k.kern.NewInt(1)
	for i := 0; i < maxPrimeDraws; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x, err := k.kern.ProbablePrime(bits, 1, k.rng)
		if err != nil {
			return nil, err
		}
		if x.Sub(one).GCD(e).Equal(one) && x.IsProbablePrime(10) {
			return x, nil
		}
	}
	return nil, ErrKeyGeneration
}
