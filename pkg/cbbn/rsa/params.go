package rsa

import "strconv"

// Params is the hex encoding of a key, as stored in key files. Empty fields
// are absent.
type Params struct {
	N    string `yaml:"n" json:"n"`
	E    string `yaml:"e" json:"e"`
	D    string `yaml:"d,omitempty" json:"d,omitempty"`
	P    string `yaml:"p,omitempty" json:"p,omitempty"`
	Q    string `yaml:"q,omitempty" json:"q,omitempty"`
	DP   string `yaml:"dp,omitempty" json:"dp,omitempty"`
	DQ   string `yaml:"dq,omitempty" json:"dq,omitempty"`
	QInv string `yaml:"qinv,omitempty" json:"qinv,omitempty"`
}

// Params exports the key fields as hex strings.
func (k *Key) Params() Params {
	var out Params
	if k.n == nil {
		return out
	}
	out.N = k.n.Text(16)
	out.E = strconv.FormatUint(uint64(k.e), 16)
	if k.d != nil {
		out.D = k.d.Text(16)
	}
	if k.HasCRT() && k.dmp1 != nil && k.dmq1 != nil && k.coeff != nil {
		out.P = k.p.Text(16)
		out.Q = k.q.Text(16)
		out.DP = k.dmp1.Text(16)
		out.DQ = k.dmq1.Text(16)
		out.QInv = k.coeff.Text(16)
	}
	return out
}

// SetParams loads the key from p, picking the richest setter the populated
// fields allow.
func (k *Key) SetParams(p Params) error {
	switch {
	case p.P != "" || p.Q != "":
		return k.SetPrivateEx(p.N, p.E, p.D, p.P, p.Q, p.DP, p.DQ, p.QInv)
	case p.D != "":
		return k.SetPrivate(p.N, p.E, p.D)
	default:
		return k.SetPublic(p.N, p.E)
	}
}
