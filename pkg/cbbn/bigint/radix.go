package bigint

import (
	"fmt"
	"strconv"
	"strings"
)

const digits = "0123456789abcdefghijklmnopqrstuvwxyz"

// digitValue maps a case-insensitive base-36 digit to its value, or -1.
func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// log2Radix returns k when b == 2^k is handled by bit grouping, else 0.
func log2Radix(b int) int {
	switch b {
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	case 16:
		return 4
	case 32:
		return 5
	default:
		return 0
	}
}

// chunkSize returns the largest c such that b^c < Base, and b^c.
func (k *Kernel) chunkSize(b int) (int, int64) {
	c, p := 0, int64(1)
	for p*int64(b) < int64(k.dv) {
		p *= int64(b)
		c++
	}
	return c, p
}

// ParseInt parses s in base b on k. The accepted syntax is an optional
// leading '-' followed by one or more digits from 0-9a-z, case-insensitive,
// each smaller than b.
func (k *Kernel) ParseInt(s string, b int) (*Int, error) {
	if b < 2 || b > 36 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBase, b)
	}
	body := strings.TrimPrefix(s, "-")
	if body == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSyntax, s)
	}
	for i := 0; i < len(body); i++ {
		if v := digitValue(body[i]); v < 0 || v >= b {
			return nil, fmt.Errorf("%w: %q in base %d", ErrInvalidSyntax, s, b)
		}
	}

	r := k.nbi()
	if kb := log2Radix(b); kb > 0 {
		r.fromBitGroups(body, kb)
	} else {
		r.fromRadix(body, b)
	}
	if len(body) != len(s) {
		k.zero.subTo(r, r)
	}
	return r, nil
}

// ParseInt parses s in base b on the Default kernel.
func ParseInt(s string, b int) (*Int, error) {
	return Default().ParseInt(s, b)
}

// fromBitGroups sets x from validated digits of kb bits each.
func (x *Int) fromBitGroups(s string, kb int) {
	db := int(x.kern().db)
	x.t, x.s = 0, 0
	sh := 0
	for i := len(s) - 1; i >= 0; i-- {
		v := Word(digitValue(s[i]))
		switch {
		case sh == 0:
			x.push(v)
		case sh+kb > db:
			x.d[x.t-1] |= (v & (Word(1)<<(db-sh) - 1)) << sh
			x.push(v >> (db - sh))
		default:
			x.d[x.t-1] |= v << sh
		}
		sh += kb
		if sh >= db {
			sh -= db
		}
	}
	x.clamp()
}

// fromRadix sets x from validated base-b digits by accumulating one limb-sized
// chunk at a time.
func (x *Int) fromRadix(s string, b int) {
	x.fromInt(0)
	cs, d := x.kern().chunkSize(b)
	j, w := 0, int64(0)
	for i := 0; i < len(s); i++ {
		w = int64(b)*w + int64(digitValue(s[i]))
		j++
		if j >= cs {
			x.dMultiply(Word(d))
			x.dAddOffset(Word(w), 0)
			j, w = 0, 0
		}
	}
	if j > 0 {
		p := int64(1)
		for ; j > 0; j-- {
			p *= int64(b)
		}
		x.dMultiply(Word(p))
		x.dAddOffset(Word(w), 0)
	}
	x.clamp()
}

// Text returns x in base b using lowercase digits and a leading '-' for
// negative values. It returns "0" when b is outside [2, 36].
func (x *Int) Text(b int) string {
	if b < 2 || b > 36 {
		return "0"
	}
	if x.s < 0 {
		return "-" + x.Neg().Text(b)
	}
	if kb := log2Radix(b); kb > 0 {
		return x.toBitGroups(kb)
	}
	return x.toRadix(b)
}

// String returns x in base 10.
func (x *Int) String() string { return x.Text(10) }

// toBitGroups renders a non-negative x in base 2^kb.
func (x *Int) toBitGroups(kb int) string {
	db := int(x.kern().db)
	km := Word(1)<<kb - 1
	var sb strings.Builder
	m := false
	i := x.t
	p := db - (i*db)%kb
	if i > 0 {
		i--
		if p < db {
			if d := x.d[i] >> p; d > 0 {
				m = true
				sb.WriteByte(digits[d])
			}
		}
		for i >= 0 {
			var d Word
			if p < kb {
				d = (x.d[i] & (Word(1)<<p - 1)) << (kb - p)
				i--
				p += db - kb
				if i >= 0 {
					d |= x.d[i] >> p
				}
			} else {
				p -= kb
				d = (x.d[i] >> p) & km
				if p <= 0 {
					p += db
					i--
				}
			}
			if d > 0 {
				m = true
			}
			if m {
				sb.WriteByte(digits[d])
			}
		}
	}
	if !m {
		return "0"
	}
	return sb.String()
}

// toRadix renders a non-negative x in base b by repeated division by the
// largest power of b that fits in one limb.
func (x *Int) toRadix(b int) string {
	if x.Sign() == 0 {
		return "0"
	}
	k := x.kern()
	cs, a := k.chunkSize(b)
	d := k.nbv(a)
	y, z := k.nbi(), k.nbi()
	x.divRemTo(d, y, z)

	var chunks []string
	for y.Sign() > 0 {
		chunks = append(chunks, strconv.FormatInt(a+int64(z.Int32()), b)[1:])
		y.divRemTo(d, y, z)
	}

	var sb strings.Builder
	sb.Grow(len(chunks)*cs + cs)
	sb.WriteString(strconv.FormatInt(int64(z.Int32()), b))
	for i := len(chunks) - 1; i >= 0; i-- {
		sb.WriteString(chunks[i])
	}
	return sb.String()
}

// FromBytes returns the Int on k whose big-endian two's-complement encoding
// is b. An empty slice yields 0.
func (k *Kernel) FromBytes(b []byte) *Int {
	x := k.nbi()
	db := int(k.db)
	sh := 0
	for i := len(b) - 1; i >= 0; i-- {
		v := Word(b[i])
		switch {
		case sh == 0:
			x.push(v)
		case sh+8 > db:
			x.d[x.t-1] |= (v & (Word(1)<<(db-sh) - 1)) << sh
			x.push(v >> (db - sh))
		default:
			x.d[x.t-1] |= v << sh
		}
		sh += 8
		if sh >= db {
			sh -= db
		}
	}
	if len(b) > 0 && b[0]&0x80 != 0 {
		x.s = -1
		if sh > 0 {
			x.d[x.t-1] |= (Word(1)<<(db-sh) - 1) << sh
		}
	}
	x.clamp()
	return x
}

// FromBytes decodes big-endian two's complement on the Default kernel.
func FromBytes(b []byte) *Int { return Default().FromBytes(b) }

// FromUnsignedBytes returns the non-negative Int on k whose big-endian
// magnitude is b.
func (k *Kernel) FromUnsignedBytes(b []byte) *Int {
	buf := make([]byte, len(b)+1)
	copy(buf[1:], b)
	return k.FromBytes(buf)
}

// FromUnsignedBytes decodes a big-endian magnitude on the Default kernel.
func FromUnsignedBytes(b []byte) *Int { return Default().FromUnsignedBytes(b) }

// Bytes returns the minimal big-endian two's-complement encoding of x. A
// leading sign byte is present only when the top data byte would otherwise
// read with the wrong sign. Zero encodes as a single 0x00 byte.
func (x *Int) Bytes() []byte {
	k := x.kern()
	db := int(k.db)
	i := x.t
	r := []int{x.s}
	put := func(n int, v int) {
		if n < len(r) {
			r[n] = v
		} else {
			r = append(r, v)
		}
	}

	p := db - (i*db)%8
	n := 0
	if i > 0 {
		i--
		if p < db {
			if d := int(x.d[i] >> p); d != (x.s&int(k.dm))>>p {
				put(n, d|(x.s<<(db-p)))
				n++
			}
		}
		for i >= 0 {
			var d int
			if p < 8 {
				d = int(x.d[i]&(Word(1)<<p-1)) << (8 - p)
				i--
				p += db - 8
				if i >= 0 {
					d |= int(x.d[i] >> p)
				}
			} else {
				p -= 8
				d = int(x.d[i]>>p) & 0xff
				if p <= 0 {
					p += db
					i--
				}
			}
			if d&0x80 != 0 {
				d |= -256
			}
			if n == 0 && x.s&0x80 != d&0x80 {
				n++
			}
			if n > 0 || d != x.s {
				put(n, d)
				n++
			}
		}
	}

	out := make([]byte, len(r))
	for j, v := range r {
		out[j] = byte(v)
	}
	return out
}
