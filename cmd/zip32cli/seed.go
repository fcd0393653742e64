package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"github.com/urfave/cli"
)

var (
	errConflictingSeeds = errors.New("only one of --seed and --mnemonic " +
		"may be set")

	errPassphraseWithoutMnemonic = errors.New("--passphrase requires " +
		"--mnemonic")
)

// seedFlags are shared by every command that needs a seed.
var seedFlags = []cli.Flag{
	cli.StringFlag{
		Name: "seed",
		Usage: "The hex encoded seed. If neither this nor " +
			"--mnemonic is set, the seed is read from the terminal.",
	},
	cli.StringFlag{
		Name:  "mnemonic",
		Usage: "A BIP-39 mnemonic to derive the seed from.",
	},
	cli.StringFlag{
		Name:  "passphrase",
		Usage: "The optional BIP-39 passphrase of the mnemonic.",
	},
}

// seedFromFlags returns the seed given on the command line, if any. The
// second return value is false when no seed was given.
func seedFromFlags(seedHex, mnemonic, passphrase string) ([]byte, bool,
	error) {

	switch {
	case seedHex != "" && mnemonic != "":
		return nil, false, errConflictingSeeds

	case passphrase != "" && mnemonic == "":
		return nil, false, errPassphraseWithoutMnemonic

	case seedHex != "":
		seed, err := hex.DecodeString(seedHex)
		if err != nil {
			return nil, false, fmt.Errorf("invalid seed: %w", err)
		}

		return seed, true, nil

	case mnemonic != "":
		words := strings.Join(strings.Fields(mnemonic), " ")
		seed, err := bip39.NewSeedWithErrorChecking(words, passphrase)
		if err != nil {
			return nil, false, fmt.Errorf("invalid mnemonic: %w",
				err)
		}

		return seed, true, nil
	}

	return nil, false, nil
}

// readSeed returns the seed selected by the seed flags of ctx, prompting for
// it on the terminal when none was given.
func readSeed(ctx *cli.Context) ([]byte, error) {
	seed, ok, err := seedFromFlags(
		ctx.String("seed"), ctx.String("mnemonic"),
		ctx.String("passphrase"),
	)
	switch {
	case err != nil:
		return nil, err

	case ok:
		return seed, nil
	}

	seedHex, err := readPassword("Input hex encoded seed: ")
	if err != nil {
		return nil, err
	}
	defer clear(seedHex)

	seed, err = hex.DecodeString(strings.TrimSpace(string(seedHex)))
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}

	return seed, nil
}
