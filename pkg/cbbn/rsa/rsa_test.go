package rsa_test

import (
	"bytes"
	"context"
	"log/slog"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-bn-go/pkg/cbbn/bigint"
	"github.com/coinbase/cb-bn-go/pkg/cbbn/logging"
	"github.com/coinbase/cb-bn-go/pkg/cbbn/prng"
	"github.com/coinbase/cb-bn-go/pkg/cbbn/rsa"
)

const (
	nValue     = "a5261939975948bb7a58dffe5ff54e65f0498f9175f5a09288810b8975871e99af3b5dd94057b0fc07535f5f97444504fa35169d461d0d30cf0192e307727c065168c788771c561a9400fb49175e9e6aa4e23fe11af69e9412dd23b0cb6684c4c2429bce139e848ab26d0829073351f4acd36074eafd036a5eb83359d2a698d3"
	eValue     = "10001"
	dValue     = "8e9912f6d3645894e8d38cb58c0db81ff516cf4c7e5a14c7f1eddb1459d2cded4d8d293fc97aee6aefb861859c8b6a3d1dfe710463e1f9ddc72048c09751971c4a580aa51eb523357a3cc48d31cfad1d4a165066ed92d4748fb6571211da5cb14bc11b6e2df7c1a559e6d5ac1cd5c94703a22891464fba23d0d965086277a161"
	pValue     = "d090ce58a92c75233a6486cb0a9209bf3583b64f540c76f5294bb97d285eed33aec220bde14b2417951178ac152ceab6da7090905b478195498b352048f15e7d"
	qValue     = "cab575dc652bb66df15a0359609d51d1db184750c00c6698b90ef3465c99655103edbf0d54c56aec0ce3c4d22592338092a126a0cc49f65a4a30d222b411e58f"
	dmp1Value  = "1a24bca8e273df2f0e47c199bbf678604e7df7215480c77c8db39f49b000ce2cf7500038acfff5433b7d582a01f1826e6f4d42e1c57f5e1fef7b12aabc59fd25"
	dmq1Value  = "3d06982efbbe47339e1f6d36b1216b8a741d410b0c662f54f7118b27b9a4ec9d914337eb39841d8666f3034408cf94f5b62f11c402fc994fe15a05493150d9fd"
	coeffValue = "3a3e731acd8960b7ff9eb81a7ff93bd1cfa74cbd56987db58b4594fb09c09084db1734c8143f98b602b981aaa9243ca28deb69b5b280ee8dcee0fd2625e53250"

	text = "The quick brown fox jumped over the extremely lazy frog! Now is the time for all good men to come to the party."
)

func kernels(t *testing.T) []*bigint.Kernel {
	t.Helper()
	var ks []*bigint.Kernel
	for _, db := range []int{26, 28, 30} {
		for _, mode := range []bigint.MulAddMode{bigint.MulAddSplit, bigint.MulAddWide} {
			k, err := bigint.NewKernel(db, mode)
			require.NoError(t, err)
			ks = append(ks, k)
		}
	}
	return ks
}

func fixedKey(t *testing.T, opts ...rsa.Option) *rsa.Key {
	t.Helper()
	key := rsa.NewKey(opts...)
	require.NoError(t, key.SetPrivateEx(nValue, eValue, dValue, pValue, qValue, dmp1Value, dmq1Value, coeffValue))
	return key
}

func captureLogger() (*bytes.Buffer, logging.Logger) {
	var buf bytes.Buffer
	return &buf, logging.New(slog.New(slog.NewTextHandler(&buf, nil)))
}

func TestFixedKeyRoundTrip(t *testing.T) {
	for _, k := range kernels(t) {
		key := fixedKey(t, rsa.WithKernel(k), rsa.WithRand(prng.NewBenchmarkPool()))
		require.NoError(t, key.Validate())
		assert.Equal(t, 128, key.Size())

		ct, err := key.EncryptString(text)
		require.NoError(t, err)
		assert.Zero(t, len(ct)%2)
		assert.LessOrEqual(t, len(ct), 256)
		assert.Equal(t, strings.ToLower(ct), ct)

		pt, err := key.DecryptString(ct)
		require.NoError(t, err)
		assert.Equal(t, text, pt, "kernel %v", k)
	}
}

func TestBenchmarkCiphertextReproducible(t *testing.T) {
	a := fixedKey(t, rsa.WithRand(prng.NewBenchmarkPool()))
	b := fixedKey(t, rsa.WithRand(prng.NewBenchmarkPool()))
	ca, err := a.EncryptString(text)
	require.NoError(t, err)
	cb, err := b.EncryptString(text)
	require.NoError(t, err)
	assert.Equal(t, ca, cb)
}

func TestCRTMatchesDirect(t *testing.T) {
	nb, _ := new(big.Int).SetString(nValue, 16)
	db, _ := new(big.Int).SetString(dValue, 16)
	pb, _ := new(big.Int).SetString(pValue, 16)
	qb, _ := new(big.Int).SetString(qValue, 16)
	xs := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		pb,
		qb,
		new(big.Int).Mul(pb, big.NewInt(3)),
		new(big.Int).Sub(nb, big.NewInt(1)),
	}
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 5; i++ {
		xs = append(xs, new(big.Int).Rand(rng, nb))
	}
	for _, k := range kernels(t) {
		key := fixedKey(t, rsa.WithKernel(k))
		for _, xb := range xs {
			x, err := k.ParseInt(xb.Text(16), 16)
			require.NoError(t, err)

			crt, err := key.DoPrivate(x)
			require.NoError(t, err)
			direct, err := key.DoPrivateDirect(x)
			require.NoError(t, err)
			assert.True(t, crt.Equal(direct), "%x on %v", xb, k)
			assert.Equal(t, new(big.Int).Exp(xb, db, nb).Text(16), crt.Text(16))

			back, err := key.DoPublic(crt)
			require.NoError(t, err)
			assert.True(t, back.Equal(x))
		}
	}
}

func TestNonCRTKey(t *testing.T) {
	key := rsa.NewKey()
	require.NoError(t, key.SetPrivate(nValue, eValue, dValue))
	assert.False(t, key.HasCRT())
	require.NoError(t, key.Validate())

	ct, err := fixedKey(t).EncryptString("hello")
	require.NoError(t, err)
	pt, err := key.DecryptString(ct)
	require.NoError(t, err)
	assert.Equal(t, "hello", pt)
}

func TestPublicOnly(t *testing.T) {
	priv := fixedKey(t)
	pub := priv.Public()
	assert.False(t, pub.HasPrivate())
	assert.True(t, pub.N().Equal(priv.N()))
	assert.Equal(t, uint32(0x10001), pub.E())

	ct, err := pub.Encrypt([]byte{0, 1, 2, 0xff})
	require.NoError(t, err)
	_, err = pub.Decrypt(ct)
	assert.ErrorIs(t, err, rsa.ErrNoPrivateKey)

	pt, err := priv.Decrypt(ct)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2, 0xff}, pt)

	_, err = rsa.NewKey().EncryptString("x")
	assert.ErrorIs(t, err, rsa.ErrNoPublicKey)
}

func TestSettersRejectMalformed(t *testing.T) {
	buf, logger := captureLogger()
	key := fixedKey(t, rsa.WithLogger(logger))
	before := key.Params()

	cases := []struct {
		name string
		set  func() error
	}{
		{"empty n", func() error { return key.SetPublic("", eValue) }},
		{"empty e", func() error { return key.SetPublic(nValue, "") }},
		{"bad n", func() error { return key.SetPublic("xyz", eValue) }},
		{"zero n", func() error { return key.SetPublic("0", eValue) }},
		{"bad e", func() error { return key.SetPublic(nValue, "1g") }},
		{"zero e", func() error { return key.SetPublic(nValue, "0") }},
		{"wide e", func() error { return key.SetPublic(nValue, "100000000") }},
		{"bad d", func() error { return key.SetPrivate(nValue, eValue, "") }},
		{"bad qinv", func() error {
			return key.SetPrivateEx(nValue, eValue, dValue, pValue, qValue, dmp1Value, dmq1Value, "-")
		}},
		{"zero p", func() error {
			return key.SetPrivateEx(nValue, eValue, dValue, "0", qValue, dmp1Value, dmq1Value, coeffValue)
		}},
	}
	for _, tc := range cases {
		err := tc.set()
		require.ErrorIs(t, err, rsa.ErrInvalidKey, tc.name)
		var rerr *rsa.Error
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, before, key.Params(), "%s left key modified", tc.name)
	}
	assert.Contains(t, buf.String(), "invalid RSA public key")
	assert.Contains(t, buf.String(), "invalid RSA private key")
}

func TestSetPublicClearsPrivate(t *testing.T) {
	key := fixedKey(t)
	require.NoError(t, key.SetPublic(nValue, "3"))
	assert.False(t, key.HasPrivate())
	assert.False(t, key.HasCRT())
	assert.Equal(t, uint32(3), key.E())
}

func TestValidateDetectsCorruption(t *testing.T) {
	key := rsa.NewKey()
	require.NoError(t, key.SetPrivateEx(nValue, eValue, dValue, pValue, qValue, dmq1Value, dmq1Value, coeffValue))
	assert.ErrorIs(t, key.Validate(), rsa.ErrInvalidKey)

	require.NoError(t, key.SetPrivateEx(nValue, "3", dValue, pValue, qValue, dmp1Value, dmq1Value, coeffValue))
	assert.ErrorIs(t, key.Validate(), rsa.ErrInvalidKey)

	require.NoError(t, key.SetPrivateEx(nValue, eValue, dValue, qValue, pValue, dmp1Value, dmq1Value, coeffValue))
	assert.ErrorIs(t, key.Validate(), rsa.ErrInvalidKey)

	assert.ErrorIs(t, rsa.NewKey().Validate(), rsa.ErrNoPublicKey)
}

func TestMessageTooLong(t *testing.T) {
	buf, logger := captureLogger()
	key := fixedKey(t, rsa.WithLogger(logger))

	_, err := key.Encrypt(make([]byte, 117))
	require.NoError(t, err)
	_, err = key.Encrypt(make([]byte, 118))
	assert.ErrorIs(t, err, rsa.ErrMessageTooLong)
	assert.Contains(t, buf.String(), "message too long for RSA")
}

func TestDecryptRejects(t *testing.T) {
	buf, logger := captureLogger()
	key := fixedKey(t, rsa.WithLogger(logger))

	_, err := key.Decrypt("not hex")
	assert.ErrorIs(t, err, rsa.ErrInvalidCiphertext)
	_, err = key.Decrypt("")
	assert.ErrorIs(t, err, rsa.ErrInvalidCiphertext)
	_, err = key.Decrypt("-01")
	assert.ErrorIs(t, err, rsa.ErrInvalidCiphertext)
	_, err = key.Decrypt(nValue)
	assert.ErrorIs(t, err, rsa.ErrInvalidCiphertext)

	c, err := key.DoPublic(bigint.NewInt(5))
	require.NoError(t, err)
	_, err = key.Decrypt(c.Text(16))
	assert.ErrorIs(t, err, rsa.ErrInvalidPadding)
	assert.Contains(t, buf.String(), "unpad failed")

	// zero and multiples of a prime factor decrypt to blocks that cannot unpad
	for _, ct := range []string{"00", "0", pValue, qValue} {
		_, err = key.Decrypt(ct)
		assert.ErrorIs(t, err, rsa.ErrInvalidPadding, ct)
	}
	zero, err := key.DoPublic(bigint.NewInt(0))
	require.NoError(t, err)
	assert.Zero(t, zero.Sign())
}

func TestSettersRedactSecrets(t *testing.T) {
	buf, logger := captureLogger()
	key := fixedKey(t, rsa.WithLogger(logger))

	err := key.SetPrivate(nValue, eValue, dValue+"\n")
	require.ErrorIs(t, err, rsa.ErrInvalidKey)
	assert.NotContains(t, err.Error(), dValue)

	err = key.SetPrivateEx(nValue, eValue, dValue, pValue+"x", qValue, dmp1Value, dmq1Value, coeffValue)
	require.ErrorIs(t, err, rsa.ErrInvalidKey)
	assert.NotContains(t, err.Error(), pValue)

	out := buf.String()
	assert.NotContains(t, out, dValue)
	assert.NotContains(t, out, pValue)
	assert.Contains(t, out, "d="+logging.Placeholder())
	assert.Contains(t, out, "p="+logging.Placeholder())

	// the modulus is public and may be quoted
	err = key.SetPublic("zz", eValue)
	require.ErrorIs(t, err, rsa.ErrInvalidKey)
	assert.Contains(t, err.Error(), "zz")
}

func TestPad(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	msg := []byte("abc")
	block, err := rsa.Pad(msg, 32, rng)
	require.NoError(t, err)
	require.Len(t, block, 32)
	assert.Equal(t, byte(0), block[0])
	assert.Equal(t, byte(2), block[1])
	for i := 2; i < 32-len(msg)-1; i++ {
		assert.NotZero(t, block[i], "filler byte %d", i)
	}
	assert.Equal(t, byte(0), block[32-len(msg)-1])
	assert.Equal(t, msg, block[32-len(msg):])

	// minimal block has exactly eight filler bytes
	_, err = rsa.Pad(make([]byte, 21), 32, rng)
	require.NoError(t, err)
	_, err = rsa.Pad(make([]byte, 22), 32, rng)
	assert.ErrorIs(t, err, rsa.ErrMessageTooLong)
}

func TestUnpad(t *testing.T) {
	ff := func(n int) []byte { return bytes.Repeat([]byte{0xff}, n) }
	cat := func(parts ...[]byte) []byte { return bytes.Join(parts, nil) }

	got, err := rsa.Unpad(cat([]byte{0, 2}, ff(8), []byte{0}, []byte("abcde")), 16)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcde"), got)

	got, err = rsa.Unpad(cat([]byte{2}, ff(13), []byte{0}), 16)
	require.NoError(t, err)
	assert.Empty(t, got)

	rejects := map[string][]byte{
		"wrong type":    cat([]byte{1}, ff(8), []byte{0}, []byte("abcde")),
		"no terminator": cat([]byte{2}, ff(14)),
		"short":         cat([]byte{2}, ff(5), []byte{0}, []byte("a")),
		"long":          cat([]byte{2}, ff(9), []byte{0}, []byte("abcde")),
		"empty":         nil,
		"all zero":      make([]byte, 16),
	}
	for name, b := range rejects {
		_, err := rsa.Unpad(b, 16)
		assert.ErrorIs(t, err, rsa.ErrInvalidPadding, name)
	}
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	for _, bits := range []int{64, 128, 256, 512} {
		rng := rand.New(rand.NewSource(int64(bits)))
		key := rsa.NewKey(rsa.WithRand(rng))
		require.NoError(t, key.Generate(ctx, bits, "10001"))
		require.NoError(t, key.Validate())
		assert.Contains(t, []int{bits - 1, bits}, key.N().BitLen())

		params := key.Params()
		p, _ := new(big.Int).SetString(params.P, 16)
		q, _ := new(big.Int).SetString(params.Q, 16)
		assert.Equal(t, 1, p.Cmp(q))
		assert.True(t, p.ProbablyPrime(20))
		assert.True(t, q.ProbablyPrime(20))

		if key.Size() >= 12 {
			msg := strings.Repeat("z", key.Size()-11)
			ct, err := key.EncryptString(msg)
			require.NoError(t, err)
			pt, err := key.DecryptString(ct)
			require.NoError(t, err)
			assert.Equal(t, msg, pt, "bits %d", bits)
		}
	}
}

func TestGenerateOnSmallKernel(t *testing.T) {
	k, err := bigint.NewKernel(26, bigint.MulAddWide)
	require.NoError(t, err)
	key := rsa.NewKey(rsa.WithKernel(k), rsa.WithRand(prng.NewBenchmarkPool()))
	require.NoError(t, key.Generate(context.Background(), 256, "3"))
	require.NoError(t, key.Validate())
	assert.Equal(t, uint32(3), key.E())
}

func TestGenerateFailures(t *testing.T) {
	key := rsa.NewKey()
	assert.ErrorIs(t, key.Generate(context.Background(), 8, "10001"), rsa.ErrKeyGeneration)
	assert.ErrorIs(t, key.Generate(context.Background(), 256, "zz"), rsa.ErrInvalidKey)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, key.Generate(ctx, 256, "10001"), context.Canceled)
	assert.Nil(t, key.N())
}

func TestParamsRoundTrip(t *testing.T) {
	key := fixedKey(t)
	p := key.Params()
	assert.Equal(t, nValue, p.N)
	assert.Equal(t, eValue, p.E)
	assert.Equal(t, coeffValue, p.QInv)

	other := rsa.NewKey()
	require.NoError(t, other.SetParams(p))
	assert.Equal(t, p, other.Params())

	require.NoError(t, other.SetParams(rsa.Params{N: p.N, E: p.E, D: p.D}))
	assert.True(t, other.HasPrivate())
	assert.False(t, other.HasCRT())

	require.NoError(t, other.SetParams(rsa.Params{N: p.N, E: p.E}))
	assert.False(t, other.HasPrivate())
	assert.Equal(t, rsa.Params{N: p.N, E: p.E}, other.Params())
}
