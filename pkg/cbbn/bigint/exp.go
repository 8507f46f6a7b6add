package bigint

// windowBits picks the sliding-window width for an exponent of n bits.
func windowBits(n int) int {
	switch {
	case n < 18:
		return 1
	case n < 48:
		return 3
	case n < 144:
		return 4
	case n < 768:
		return 5
	default:
		return 6
	}
}

// pickReducer chooses the strategy for an exponent of n bits modulo m.
func pickReducer(n int, m *Int) *Reducer {
	switch {
	case n < 8:
		return newClassic(m)
	case m.isEven():
		return newBarrett(m)
	default:
		return newMontgomery(m)
	}
}

// modPow returns x^e mod m (HAC 14.85) for e >= 0 and m > 0.
func (x *Int) modPow(e, m *Int) *Int {
	i := e.BitLen()
	if i <= 0 {
		return x.kern().nbv(1)
	}
	return x.expWindow(e, pickReducer(i, m))
}

// expWindow computes x^e under z with a sliding window over the bits of e.
// e must be positive.
func (x *Int) expWindow(e *Int, z *Reducer) *Int {
	k := z.k
	db := int(k.db)
	kw := windowBits(e.BitLen())

	// precompute odd powers g[1], g[3], ..., g[2^kw-1]
	k1, km := kw-1, 1<<kw-1
	g := make([]*Int, km+1)
	g[1] = z.Convert(x)
	if kw > 1 {
		g2 := k.nbi()
		z.SqrTo(g[1], g2)
		for n := 3; n <= km; n += 2 {
			g[n] = k.nbi()
			z.MulTo(g2, g[n-2], g[n])
		}
	}

	r, r2 := k.nbi(), k.nbi()
	is1 := true
	j := e.t - 1
	i := nbits(e.d[j]) - 1
	for j >= 0 {
		var w int
		if i >= k1 {
			w = int(e.d[j]>>(i-k1)) & km
		} else {
			w = int(e.d[j]&(Word(1)<<(i+1)-1)) << (k1 - i)
			if j > 0 {
				w |= int(e.d[j-1] >> (db + i - k1))
			}
		}

		n := kw
		for w&1 == 0 {
			w >>= 1
			n--
		}
		if i -= n; i < 0 {
			i += db
			j--
		}
		if is1 {
			// r == 1, so skip the squarings
			g[w].copyTo(r)
			is1 = false
		} else {
			for n > 1 {
				z.SqrTo(r, r2)
				z.SqrTo(r2, r)
				n -= 2
			}
			if n > 0 {
				z.SqrTo(r, r2)
			} else {
				r, r2 = r2, r
			}
			z.MulTo(r2, g[w], r)
		}

		for j >= 0 && e.d[j]&(Word(1)<<i) == 0 {
			z.SqrTo(r, r2)
			r, r2 = r2, r
			if i--; i < 0 {
				i = db - 1
				j--
			}
		}
	}
	return z.Revert(r)
}

// exp returns x^e under z by left-to-right binary exponentiation (HAC 14.79).
func (x *Int) exp(e uint32, z *Reducer) *Int {
	k := z.k
	if e < 1 {
		return k.nbv(1)
	}
	r, r2 := k.nbi(), k.nbi()
	g := z.Convert(x)
	g.copyTo(r)
	for i := nbits(Word(e)) - 2; i >= 0; i-- {
		z.SqrTo(r, r2)
		if e&(1<<i) != 0 {
			z.MulTo(r2, g, r)
		} else {
			r, r2 = r2, r
		}
	}
	return z.Revert(r)
}

// ModPow returns x^e mod m. The reduction strategy is chosen from the
// exponent size and the parity of m: Classic below 8 exponent bits, Barrett
// for even m, Montgomery otherwise.
func (x *Int) ModPow(e, m *Int) (*Int, error) {
	k := x.kern()
	e, m = k.adopt(e), k.adopt(m)
	if e.Sign() < 0 {
		return nil, ErrNegativeExponent
	}
	if m.Sign() <= 0 {
		return nil, ErrNonPositiveModulus
	}
	return x.modPow(e, m), nil
}

// ModPowInt returns x^e mod m for a small exponent, using Classic reduction
// when e < 256 or m is even and Montgomery otherwise.
func (x *Int) ModPowInt(e uint32, m *Int) (*Int, error) {
	m = x.kern().adopt(m)
	if m.Sign() <= 0 {
		return nil, ErrNonPositiveModulus
	}
	return x.modPowInt(e, m), nil
}

func (x *Int) modPowInt(e uint32, m *Int) *Int {
	if e < 256 || m.isEven() {
		return x.exp(e, newClassic(m))
	}
	return x.exp(e, newMontgomery(m))
}

// ExpWith returns x^e computed with the windowed algorithm under z, reverted
// to ordinary representation. It lets callers force a reduction strategy.
func (x *Int) ExpWith(e *Int, z *Reducer) (*Int, error) {
	e = z.k.adopt(e)
	if e.Sign() < 0 {
		return nil, ErrNegativeExponent
	}
	if e.Sign() == 0 {
		return z.k.nbv(1), nil
	}
	return x.expWindow(e, z), nil
}

// Pow returns x^e without reduction. Pow(0) is 1.
func (x *Int) Pow(e uint32) *Int {
	return x.exp(e, &Reducer{kind: Identity, k: x.kern()})
}
