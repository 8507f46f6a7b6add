package bigint

import "fmt"

// ReducerKind selects a modular-reduction strategy.
type ReducerKind int

const (
	// Classic reduces by long division.
	Classic ReducerKind = iota
	// Montgomery works in Montgomery form x*R mod m and needs an odd modulus.
	Montgomery
	// Barrett reduces with a precomputed reciprocal; it accepts even moduli.
	Barrett
	// Identity performs no reduction at all.
	Identity
)

func (r ReducerKind) String() string {
	switch r {
	case Classic:
		return "classic"
	case Montgomery:
		return "montgomery"
	case Barrett:
		return "barrett"
	case Identity:
		return "identity"
	default:
		return fmt.Sprintf("ReducerKind(%d)", int(r))
	}
}

// Reducer performs arithmetic modulo a fixed m in a strategy-specific working
// representation. Values enter with Convert and leave with Revert.
//
// A Reducer owns scratch buffers and must not be used from more than one
// goroutine at a time.
type Reducer struct {
	kind ReducerKind
	k    *Kernel
	m    *Int

	// Montgomery
	mp  Word // -1/m mod Base
	mt2 int

	// Barrett
	r2, q3, mu *Int
}

// NewReducer returns a reducer of the given kind for modulus m. Identity
// ignores m, which may be nil.
func NewReducer(kind ReducerKind, m *Int) (*Reducer, error) {
	if kind == Identity {
		k := Default()
		if m != nil {
			k = m.kern()
		}
		return &Reducer{kind: Identity, k: k}, nil
	}
	if m == nil || m.Sign() <= 0 {
		return nil, ErrNonPositiveModulus
	}
	switch kind {
	case Classic:
		return newClassic(m), nil
	case Montgomery:
		if m.isEven() {
			return nil, ErrEvenModulus
		}
		return newMontgomery(m), nil
	case Barrett:
		return newBarrett(m), nil
	default:
		return nil, fmt.Errorf("bigint: unknown reducer %v", kind)
	}
}

func newClassic(m *Int) *Reducer {
	return &Reducer{kind: Classic, k: m.kern(), m: m}
}

func newMontgomery(m *Int) *Reducer {
	return &Reducer{
		kind: Montgomery,
		k:    m.kern(),
		m:    m,
		mp:   m.invDigit(),
		mt2:  2 * m.t,
	}
}

func newBarrett(m *Int) *Reducer {
	k := m.kern()
	z := &Reducer{kind: Barrett, k: k, m: m, r2: k.nbi(), q3: k.nbi(), mu: k.nbi()}
	k.one.dlShiftTo(2*m.t, z.r2)
	z.r2.divRemTo(m, z.mu, nil)
	return z
}

// Kind returns the reduction strategy.
func (z *Reducer) Kind() ReducerKind { return z.kind }

// Modulus returns the modulus, or nil for Identity.
func (z *Reducer) Modulus() *Int { return z.m }

// Convert maps x into the working representation. The result may be x itself.
func (z *Reducer) Convert(x *Int) *Int {
	x = z.k.adopt(x)
	switch z.kind {
	case Classic:
		if x.s < 0 || x.compareTo(z.m) >= 0 {
			return x.mod(z.m)
		}
		return x
	case Montgomery:
		r := z.k.nbi()
		x.Abs().dlShiftTo(z.m.t, r)
		r.divRemTo(z.m, nil, r)
		if x.s < 0 && r.compareTo(z.k.zero) > 0 {
			z.m.subTo(r, r)
		}
		return r
	case Barrett:
		if x.s < 0 || x.t > 2*z.m.t {
			return x.mod(z.m)
		}
		if x.compareTo(z.m) < 0 {
			return x
		}
		r := x.Clone()
		z.Reduce(r)
		return r
	default:
		return x
	}
}

// Revert maps x out of the working representation.
func (z *Reducer) Revert(x *Int) *Int {
	if z.kind == Montgomery {
		r := x.Clone()
		z.Reduce(r)
		return r
	}
	return x
}

// Reduce reduces x in place.
func (z *Reducer) Reduce(x *Int) {
	switch z.kind {
	case Classic:
		x.divRemTo(z.m, nil, x)
	case Montgomery:
		z.montReduce(x)
	case Barrett:
		z.barrettReduce(x)
	case Identity:
	}
}

// MulTo sets r to the reduced product of x and y. r must not alias x or y.
func (z *Reducer) MulTo(x, y, r *Int) {
	z.k.adopt(x).multiplyTo(z.k.adopt(y), r)
	z.Reduce(r)
}

// SqrTo sets r to the reduced square of x. r must not alias x.
func (z *Reducer) SqrTo(x, r *Int) {
	z.k.adopt(x).squareTo(r)
	z.Reduce(r)
}

// montReduce sets x = x/R mod m (HAC 14.32).
func (z *Reducer) montReduce(x *Int) {
	k := z.k
	m := z.m
	x.grow(z.mt2 + 1)
	for x.t <= z.mt2 {
		x.d[x.t] = 0
		x.t++
	}
	xd := x.d
	dv := uint64(k.dv)
	for i := 0; i < m.t; i++ {
		u0 := Word(uint64(xd[i])*uint64(z.mp)) & k.dm
		j := i + m.t
		v := uint64(xd[j]) + uint64(k.am(m.d, 0, u0, xd, i, 0, m.t))
		for v >= dv {
			xd[j] = Word(v - dv)
			j++
			v = uint64(xd[j]) + 1
		}
		xd[j] = Word(v)
	}
	x.clamp()
	x.drShiftTo(m.t, x)
	if x.compareTo(m) >= 0 {
		x.subTo(m, x)
	}
}

// barrettReduce sets x = x mod m (HAC 14.42) for 0 <= x < Base^(2*m.t).
func (z *Reducer) barrettReduce(x *Int) {
	m := z.m
	x.drShiftTo(m.t-1, z.r2)
	if x.t > m.t+1 {
		x.t = m.t + 1
		x.clamp()
	}
	z.mu.multiplyUpperTo(z.r2, m.t+1, z.q3)
	m.multiplyLowerTo(z.q3, m.t+1, z.r2)
	for x.compareTo(z.r2) < 0 {
		x.dAddOffset(1, m.t+1)
	}
	x.subTo(z.r2, x)
	for x.compareTo(m) >= 0 {
		x.subTo(m, x)
	}
}
