package bigint

import (
	"fmt"
	"sync"
)

// Word is one limb of a multi-precision integer. Only the low DigitBits bits
// of a stored limb are significant; the spare high bits give the
// multiply-accumulate routines headroom for intermediate sums.
type Word uint32

// MulAddMode selects the multiply-accumulate primitive used by a Kernel.
type MulAddMode int

const (
	// MulAddSplit computes the cross term from half-digit products, the way
	// 32-bit hosts without a widening multiply do it.
	MulAddSplit MulAddMode = iota
	// MulAddWide computes each limb product with a single 64-bit multiply.
	MulAddWide
)

func (m MulAddMode) String() string {
	switch m {
	case MulAddSplit:
		return "split"
	case MulAddWide:
		return "wide"
	default:
		return fmt.Sprintf("MulAddMode(%d)", int(m))
	}
}

// ParseMulAddMode maps the configuration names "split" and "wide" to a mode.
// The empty string selects MulAddSplit.
func ParseMulAddMode(s string) (MulAddMode, error) {
	switch s {
	case "", "split":
		return MulAddSplit, nil
	case "wide":
		return MulAddWide, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMulAdd, s)
	}
}

const (
	// DefaultDigitBits is the limb width used by Default.
	DefaultDigitBits = 28

	// fixed-point precision of the division digit estimate
	fpBits = 52
)

// mulAddFunc is the am contract: dst[j+k] += x*src[i+k] + carry for k in
// [0,n), returning the outgoing carry.
type mulAddFunc func(k *Kernel, src []Word, i int, x Word, dst []Word, j int, c Word, n int) Word

// Kernel fixes the limb width and the multiply-accumulate primitive shared by
// every Int built on it. A Kernel is immutable once constructed and may be
// shared freely between goroutines.
type Kernel struct {
	db   uint // bits per limb
	dm   Word // limb mask
	dv   Word // limb modulus, 1<<db
	half uint // db/2, split width for MulAddSplit
	hm   Word // (1<<half)-1

	fv float64 // 2^fpBits
	f1 uint    // fpBits-db
	f2 uint    // 2*db-fpBits

	mode   MulAddMode
	mulAdd mulAddFunc

	zero *Int
	one  *Int
}

// NewKernel returns a kernel with the given limb width (26, 28 or 30 bits) and
// multiply-accumulate primitive.
func NewKernel(digitBits int, mode MulAddMode) (*Kernel, error) {
	switch digitBits {
	case 26, 28, 30:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDigitBits, digitBits)
	}

	k := &Kernel{
		db:   uint(digitBits),
		dm:   Word(1)<<uint(digitBits) - 1,
		dv:   Word(1) << uint(digitBits),
		half: uint(digitBits) / 2,
		fv:   float64(uint64(1) << fpBits),
		f1:   fpBits - uint(digitBits),
		f2:   2*uint(digitBits) - fpBits,
		mode: mode,
	}
	k.hm = Word(1)<<k.half - 1

	switch mode {
	case MulAddSplit:
		k.mulAdd = mulAddSplit
	case MulAddWide:
		k.mulAdd = mulAddWide
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMulAdd, mode)
	}

	k.zero = k.nbv(0)
	k.one = k.nbv(1)
	return k, nil
}

var (
	defaultOnce   sync.Once
	defaultKernel *Kernel
)

// Default returns the process-wide 28-bit split kernel. It is built on first
// use and never changes afterwards.
func Default() *Kernel {
	defaultOnce.Do(func() {
		k, err := NewKernel(DefaultDigitBits, MulAddSplit)
		if err != nil {
			panic(err)
		}
		defaultKernel = k
	})
	return defaultKernel
}

// DigitBits returns the number of significant bits per limb.
func (k *Kernel) DigitBits() int { return int(k.db) }

// Mode returns the multiply-accumulate primitive in use.
func (k *Kernel) Mode() MulAddMode { return k.mode }

// Mask returns the limb mask, 2^DigitBits-1.
func (k *Kernel) Mask() Word { return k.dm }

// Base returns the limb modulus, 2^DigitBits.
func (k *Kernel) Base() Word { return k.dv }

func (k *Kernel) String() string {
	return fmt.Sprintf("bigint.Kernel{bits: %d, mul_add: %v}", k.db, k.mode)
}

// MulAdd computes dst[j] += x*src[i] + c over n consecutive limbs, propagating
// the carry limb to limb, and returns the outgoing carry. The caller must
// guarantee c < 3*Base, x < 2*Base and src limbs < Base, and that both slices
// are long enough. A non-positive n returns c unchanged.
func (k *Kernel) MulAdd(src []Word, i int, x Word, dst []Word, j int, c Word, n int) Word {
	return k.mulAdd(k, src, i, x, dst, j, c, n)
}

func (k *Kernel) am(src []Word, i int, x Word, dst []Word, j int, c Word, n int) Word {
	return k.mulAdd(k, src, i, x, dst, j, c, n)
}

func mulAddWide(k *Kernel, src []Word, i int, x Word, dst []Word, j int, c Word, n int) Word {
	carry := uint64(c)
	xx := uint64(x)
	for ; n > 0; n-- {
		v := xx*uint64(src[i]) + uint64(dst[j]) + carry
		carry = v >> k.db
		dst[j] = Word(v) & k.dm
		i++
		j++
	}
	return Word(carry)
}

func mulAddSplit(k *Kernel, src []Word, i int, x Word, dst []Word, j int, c Word, n int) Word {
	h := k.half
	xl := uint64(x & k.hm)
	xh := uint64(x >> h)
	carry := uint64(c)
	for ; n > 0; n-- {
		l := uint64(src[i] & k.hm)
		hi := uint64(src[i] >> h)
		m := xh*l + hi*xl
		l = xl*l + (m&uint64(k.hm))<<h + uint64(dst[j]) + carry
		carry = l>>k.db + m>>h + xh*hi
		dst[j] = Word(l) & k.dm
		i++
		j++
	}
	return Word(carry)
}
