package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/coinbase/cb-bn-go/pkg/cbbn"
	"github.com/coinbase/cb-bn-go/pkg/cbbn/prng"
)

// Fixed 1024-bit benchmark key.
const (
	benchN     = "a5261939975948bb7a58dffe5ff54e65f0498f9175f5a09288810b8975871e99af3b5dd94057b0fc07535f5f97444504fa35169d461d0d30cf0192e307727c065168c788771c561a9400fb49175e9e6aa4e23fe11af69e9412dd23b0cb6684c4c2429bce139e848ab26d0829073351f4acd36074eafd036a5eb83359d2a698d3"
	benchE     = "10001"
	benchD     = "8e9912f6d3645894e8d38cb58c0db81ff516cf4c7e5a14c7f1eddb1459d2cded4d8d293fc97aee6aefb861859c8b6a3d1dfe710463e1f9ddc72048c09751971c4a580aa51eb523357a3cc48d31cfad1d4a165066ed92d4748fb6571211da5cb14bc11b6e2df7c1a559e6d5ac1cd5c94703a22891464fba23d0d965086277a161"
	benchP     = "d090ce58a92c75233a6486cb0a9209bf3583b64f540c76f5294bb97d285eed33aec220bde14b2417951178ac152ceab6da7090905b478195498b352048f15e7d"
	benchQ     = "cab575dc652bb66df15a0359609d51d1db184750c00c6698b90ef3465c99655103edbf0d54c56aec0ce3c4d22592338092a126a0cc49f65a4a30d222b411e58f"
	benchDP    = "1a24bca8e273df2f0e47c199bbf678604e7df7215480c77c8db39f49b000ce2cf7500038acfff5433b7d582a01f1826e6f4d42e1c57f5e1fef7b12aabc59fd25"
	benchDQ    = "3d06982efbbe47339e1f6d36b1216b8a741d410b0c662f54f7118b27b9a4ec9d914337eb39841d8666f3034408cf94f5b62f11c402fc994fe15a05493150d9fd"
	benchQInv  = "3a3e731acd8960b7ff9eb81a7ff93bd1cfa74cbd56987db58b4594fb09c09084db1734c8143f98b602b981aaa9243ca28deb69b5b280ee8dcee0fd2625e53250"
	benchInput = "The quick brown fox jumped over the extremely lazy frog! Now is the time for all good men to come to the party."
)

func benchCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "run the fixed-key encrypt/decrypt round trip",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "iterations", Aliases: []string{"n"}, Value: 10, Usage: "round trips per worker"},
			&cli.IntFlag{Name: "parallel", Aliases: []string{"p"}, Value: 1, Usage: "concurrent workers"},
			&cli.BoolFlag{Name: "system-rand", Usage: "pad with crypto/rand instead of the deterministic benchmark pool"},
		},
		Action: func(c *cli.Context) error {
			iters, workers := c.Int("iterations"), c.Int("parallel")
			if iters < 1 || workers < 1 {
				return fmt.Errorf("iterations and parallel must be positive")
			}
			start := time.Now()
			g, ctx := errgroup.WithContext(c.Context)
			for w := 0; w < workers; w++ {
				w := w
				g.Go(func() error {
					return st.benchWorker(ctx, w, iters, c.Bool("system-rand"))
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			elapsed := time.Since(start)
			total := iters * workers
			rate := float64(total) / elapsed.Seconds()
			st.zl.Info().
				Int("round_trips", total).
				Int("workers", workers).
				Dur("elapsed", elapsed).
				Float64("per_second", rate).
				Msg("benchmark finished")
			_, err := fmt.Fprintf(c.App.Writer, "%d round trips in %s (%.2f/s)\n", total, elapsed.Round(time.Millisecond), rate)
			return err
		},
	}
}

// benchWorker owns its Library so its random source is never shared.
func (st *state) benchWorker(ctx context.Context, id, iters int, systemRand bool) error {
	var opts []cbbn.Option
	if !systemRand {
		opts = append(opts, cbbn.WithRand(prng.NewBenchmarkPool()))
	}
	lib, err := st.open(opts...)
	if err != nil {
		return err
	}
	defer lib.Close()

	key, err := lib.NewKey()
	if err != nil {
		return err
	}
	if err := key.SetPrivateEx(benchN, benchE, benchD, benchP, benchQ, benchDP, benchDQ, benchQInv); err != nil {
		return err
	}
	for i := 0; i < iters; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		ct, err := key.EncryptString(benchInput)
		if err != nil {
			return err
		}
		pt, err := key.DecryptString(ct)
		if err != nil {
			return err
		}
		if pt != benchInput {
			return fmt.Errorf("worker %d iteration %d: round trip mismatch", id, i)
		}
	}
	st.zl.Debug().Int("worker", id).Int("iterations", iters).Msg("worker done")
	return nil
}
