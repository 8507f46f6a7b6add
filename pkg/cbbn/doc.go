// Package cbbn is the entry point to cb-bn-go, a from-scratch big-integer
// kernel with RSA on top.
//
// Open builds a Library from a Config, which picks the limb width, the
// multiply-accumulate primitive and the entropy source. Keys created through
// the Library share its kernel, random source and logger.
//
//	cfg, err := cbbn.LoadConfig("cbbn.yaml")
//	if err != nil {
//	    return err
//	}
//	lib, err := cbbn.Open(cfg, cbbn.WithLogger(logging.New(nil)))
//	if err != nil {
//	    return err
//	}
//	defer lib.Close()
//
//	key, err := lib.GenerateKey(ctx, 1024, "10001")
//
// The arithmetic lives in package bigint, the cipher in package rsa and the
// random sources in package prng.
package cbbn
