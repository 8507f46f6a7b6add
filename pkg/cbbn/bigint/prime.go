package bigint

import (
	"fmt"
	"io"
)

var lowPrimes = [...]int{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151,
	157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233,
	239, 241, 251, 257, 263, 269, 271, 277, 281, 283, 293, 307, 311, 313, 317,
	331, 337, 347, 349, 353, 359, 367, 373, 379, 383, 389, 397, 401, 409, 419,
	421, 431, 433, 439, 443, 449, 457, 461, 463, 467, 479, 487, 491, 499, 503,
	509,
}

// products of small primes are grown only while below this, so modInt's divisor
// stays under 2^26
const lowPrimeLimit = (1 << 26) / 509

// IsProbablePrime reports whether |x| is prime with error probability at most
// 2^-t. Values up to 509 are checked against a table; larger values go through
// trial division by the small primes and then ceil(t/2) Miller-Rabin rounds
// using the small primes as witnesses.
func (x *Int) IsProbablePrime(t int) bool {
	xa := x.Abs()
	if xa.t == 1 && int(xa.d[0]) <= lowPrimes[len(lowPrimes)-1] {
		for _, p := range lowPrimes {
			if int(xa.d[0]) == p {
				return true
			}
		}
		return false
	}
	if xa.isEven() {
		return false
	}
	for i := 1; i < len(lowPrimes); {
		m, j := lowPrimes[i], i+1
		for j < len(lowPrimes) && m < lowPrimeLimit {
			m *= lowPrimes[j]
			j++
		}
		m = xa.modInt(m)
		for ; i < j; i++ {
			if m%lowPrimes[i] == 0 {
				return false
			}
		}
	}
	return xa.millerRabin(t)
}

// millerRabin runs the strong probable-prime test (HAC 4.24) for odd x > 509.
func (x *Int) millerRabin(t int) bool {
	k := x.kern()
	n1 := x.Sub(k.one)
	s := n1.LowestSetBit()
	if s <= 0 {
		return false
	}
	r := n1.Rsh(s)
	t = (t + 1) >> 1
	if t > len(lowPrimes) {
		t = len(lowPrimes)
	}
	for i := 0; i < t; i++ {
		y := k.nbv(int64(lowPrimes[i])).modPow(r, x)
		if y.compareTo(k.one) != 0 && y.compareTo(n1) != 0 {
			for j := 1; j < s && y.compareTo(n1) != 0; j++ {
				y = y.modPowInt(2, x)
				if y.compareTo(k.one) == 0 {
					return false
				}
			}
			if y.compareTo(n1) != 0 {
				return false
			}
		}
	}
	return true
}

// RandomInt returns a uniformly random non-negative Int below 2^bits, drawing
// bits/8+1 bytes from rng.
func (k *Kernel) RandomInt(bits int, rng io.Reader) (*Int, error) {
	if bits < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBitLength, bits)
	}
	buf := make([]byte, bits>>3+1)
	if _, err := io.ReadFull(rng, buf); err != nil {
		return nil, fmt.Errorf("bigint: reading random bytes: %w", err)
	}
	if t := bits & 7; t > 0 {
		buf[0] &= byte(1)<<t - 1
	} else {
		buf[0] = 0
	}
	return k.FromUnsignedBytes(buf), nil
}

// RandomInt returns a random Int below 2^bits on the Default kernel.
func RandomInt(bits int, rng io.Reader) (*Int, error) {
	return Default().RandomInt(bits, rng)
}

// ProbablePrime returns a probable prime of exactly bits bits. It draws a
// random odd candidate with the top bit set and steps it by 2 until
// IsProbablePrime(certainty) holds, wrapping back into range if the step
// overflows the bit length. For bits < 2 it returns 1.
func (k *Kernel) ProbablePrime(bits, certainty int, rng io.Reader) (*Int, error) {
	if bits < 2 {
		return k.nbv(1), nil
	}
	x, err := k.RandomInt(bits, rng)
	if err != nil {
		return nil, err
	}
	top := k.one.Lsh(bits - 1)
	if !x.TestBit(bits - 1) {
		x.bitwiseTo(top, opOr, x)
	}
	if x.isEven() {
		x.dAddOffset(1, 0)
	}
	for !x.IsProbablePrime(certainty) {
		x.dAddOffset(2, 0)
		if x.BitLen() > bits {
			x.subTo(top, x)
		}
	}
	return x, nil
}

// ProbablePrime returns a probable prime of the given size on the Default
// kernel.
func ProbablePrime(bits, certainty int, rng io.Reader) (*Int, error) {
	return Default().ProbablePrime(bits, certainty, rng)
}
