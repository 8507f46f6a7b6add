package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/coinbase/cb-bn-go/pkg/cbbn"
)

func keygenCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "generate an RSA key and write it as YAML",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "bits", Value: 1024, Usage: "modulus size"},
			&cli.StringFlag{Name: "e", Value: "10001", Usage: "public exponent in hex"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Required: true, Usage: "key file to write"},
		},
		Action: func(c *cli.Context) error {
			lib, err := st.open()
			if err != nil {
				return err
			}
			defer lib.Close()

			key, err := lib.GenerateKey(c.Context, c.Int("bits"), c.String("e"))
			if err != nil {
				return err
			}
			if err := lib.SaveKey(c.String("out"), key); err != nil {
				return err
			}
			st.zl.Info().
				Int("bits", key.N().BitLen()).
				Str("path", c.String("out")).
				Msg("wrote key")
			return nil
		},
	}
}

func encryptCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:      "encrypt",
		Usage:     "encrypt a message with PKCS#1 v1.5 and print hex",
		ArgsUsage: "[message]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Required: true, Usage: "key file"},
		},
		Action: func(c *cli.Context) error {
			msg, err := argOrStdin(c)
			if err != nil {
				return err
			}
			lib, err := st.open()
			if err != nil {
				return err
			}
			defer lib.Close()

			key, err := lib.LoadKey(c.String("key"))
			if err != nil {
				return err
			}
			ct, err := key.Encrypt(msg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, ct)
			return err
		},
	}
}

func decryptCommand(st *state) *cli.Command {
	return &cli.Command{
		Name:      "decrypt",
		Usage:     "decrypt a hex ciphertext",
		ArgsUsage: "[ciphertext]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Required: true, Usage: "private key file"},
		},
		Action: func(c *cli.Context) error {
			ct, err := argOrStdin(c)
			if err != nil {
				return err
			}
			lib, err := st.open()
			if err != nil {
				return err
			}
			defer lib.Close()

			key, err := lib.LoadKey(c.String("key"))
			if err != nil {
				return err
			}
			pt, err := key.Decrypt(strings.TrimSpace(string(ct)))
			if err != nil {
				return err
			}
			defer cbbn.ZeroizeBytes(pt)
			_, err = c.App.Writer.Write(append(pt, '\n'))
			return err
		},
	}
}

// argOrStdin returns the first argument, or all of stdin when there is none.
func argOrStdin(c *cli.Context) ([]byte, error) {
	if c.NArg() > 1 {
		return nil, errors.New("expected at most one argument")
	}
	if c.NArg() == 1 {
		return []byte(c.Args().First()), nil
	}
	var in io.Reader = os.Stdin
	if c.App.Reader != nil {
		in = c.App.Reader
	}
	return io.ReadAll(in)
}
