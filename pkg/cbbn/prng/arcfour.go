package prng

// Arcfour is the RC4 keystream generator. The zero value is an all-zero
// permutation and must be keyed with Init before use.
type Arcfour struct {
	i, j uint8
	s    [256]uint8
}

// Init runs the key schedule over key, reusing it cyclically. An empty key is
// treated as a single zero byte.
func (a *Arcfour) Init(key []byte) {
	if len(key) == 0 {
		key = []byte{0}
	}
	for i := range a.s {
		a.s[i] = uint8(i)
	}
	var j uint8
	for i := 0; i < len(a.s); i++ {
		j += a.s[i] + key[i%len(key)]
		a.s[i], a.s[j] = a.s[j], a.s[i]
	}
	a.i, a.j = 0, 0
}

// Next returns the next keystream byte.
func (a *Arcfour) Next() byte {
	a.i++
	a.j += a.s[a.i]
	t := a.s[a.i]
	a.s[a.i], a.s[a.j] = a.s[a.j], t
	return a.s[t+a.s[a.i]]
}
