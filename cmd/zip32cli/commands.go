package main

import (
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/lightningnetwork/zip32"
	"github.com/lightningnetwork/zip32/adhoc"
	"github.com/lightningnetwork/zip32/fingerprint"
	"github.com/lightningnetwork/zip32/hdkd"
	"github.com/lightningnetwork/zip32/registered"
	"github.com/urfave/cli"
)

var contextFlag = cli.StringFlag{
	Name: "context",
	Usage: "The context string naming the application, between 1 " +
		"and 252 bytes.",
}

var zipFlag = cli.UintFlag{
	Name:  "zip",
	Usage: "The ZIP number owning the registered subtree.",
}

var subpathFlag = cli.StringFlag{
	Name: "subpath",
	Usage: "The /-separated subpath below the ZIP subtree, e.g. " +
		"2':7461672d6f6e65/3'. Each element may carry a hex " +
		"encoded tag after a colon.",
}

type fingerprintResponse struct {
	SeedFingerprint fingerprint.SeedFingerprint `json:"seed_fingerprint"`
	Hex             string                      `json:"hex"`
}

func newFingerprintResponse(
	fp fingerprint.SeedFingerprint) *fingerprintResponse {

	b := fp.Bytes()
	return &fingerprintResponse{
		SeedFingerprint: fp,
		Hex:             hex.EncodeToString(b[:]),
	}
}

// seedFingerprint computes the fingerprint of a seed.
func seedFingerprint(seed []byte) (fingerprint.SeedFingerprint, error) {
	return fingerprint.FromSeed(seed).UnwrapOrErr(
		fmt.Errorf("%w: got %d bytes", hdkd.ErrInvalidSeedLength,
			len(seed)),
	)
}

var fingerprintCommand = cli.Command{
	Name:   "fingerprint",
	Usage:  "Compute the fingerprint of a seed.",
	Flags:  seedFlags,
	Action: computeFingerprint,
}

func computeFingerprint(ctx *cli.Context) error {
	seed, err := readSeed(ctx)
	if err != nil {
		return err
	}
	defer clear(seed)

	fp, err := seedFingerprint(seed)
	if err != nil {
		return err
	}

	printJSON(ctx.App.Writer, newFingerprintResponse(fp))

	return nil
}

var parseFingerprintCommand = cli.Command{
	Name:      "parsefingerprint",
	Usage:     "Decode the text form of a seed fingerprint.",
	ArgsUsage: "fingerprint",
	Action:    parseFingerprint,
}

func parseFingerprint(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "parsefingerprint")
	}

	fp, err := fingerprint.Parse(ctx.Args().First())
	if err != nil {
		return err
	}

	printJSON(ctx.App.Writer, newFingerprintResponse(fp))

	return nil
}

type keyResponse struct {
	SeedFingerprint fingerprint.SeedFingerprint `json:"seed_fingerprint"`
	ZipNumber       *uint16                     `json:"zip_number,omitempty"`
	Path            string                      `json:"path"`
	SecretKey       string                      `json:"secret_key"`
	ChainCode       string                      `json:"chain_code"`
}

var adhocCommand = cli.Command{
	Name:  "adhoc",
	Usage: "Derive a key in the arbitrary tree.",
	Description: `
	Derive the key at the given path of the arbitrary tree, which is
	reserved for the private use of a single application. Keys shared
	with other implementations should be derived in the registered tree
	instead.
	`,
	Flags: append([]cli.Flag{
		contextFlag,
		cli.StringFlag{
			Name:  "path",
			Usage: "The /-separated path, e.g. m/32'/1'.",
		},
	}, seedFlags...),
	Action: deriveAdhoc,
}

func deriveAdhoc(ctx *cli.Context) error {
	contextString := []byte(ctx.String("context"))
	path, err := parsePath(ctx.String("path"))
	if err != nil {
		return err
	}

	seed, err := readSeed(ctx)
	if err != nil {
		return err
	}
	defer clear(seed)

	// The arbitrary tree treats bad lengths as programming errors, so
	// check them here to report them nicely instead.
	if _, err := hdkd.PackIKM(contextString, seed); err != nil {
		return err
	}

	fp, err := seedFingerprint(seed)
	if err != nil {
		return err
	}

	key := adhoc.FromPath(contextString, seed, path)
	defer key.Zero()

	elems := make([]string, 0, len(path)+1)
	elems = append(elems, "m")
	for _, index := range path {
		elems = append(elems, index.String())
	}

	printJSON(ctx.App.Writer, newKeyResponse(
		fp, nil, strings.Join(elems, "/"), key.Data(), key.ChainCode(),
	))

	return nil
}

var registeredCommand = cli.Command{
	Name:  "registered",
	Usage: "Derive a key in the registered tree.",
	Flags: append([]cli.Flag{
		contextFlag, zipFlag, subpathFlag,
	}, seedFlags...),
	Action: deriveRegistered,
}

func deriveRegistered(ctx *cli.Context) error {
	req, err := parseRegisteredRequest(ctx)
	if err != nil {
		return err
	}
	defer clear(req.seed)

	fp, err := seedFingerprint(req.seed)
	if err != nil {
		return err
	}

	key, err := registered.FromSubpath(
		req.contextString, req.seed, req.zipNumber, req.subpath,
	)
	if err != nil {
		return err
	}
	defer key.Zero()

	printJSON(ctx.App.Writer, newKeyResponse(
		fp, &req.zipNumber, req.subpathString(), key.Data(),
		key.ChainCode(),
	))

	return nil
}

type cryptovalueResponse struct {
	SeedFingerprint fingerprint.SeedFingerprint `json:"seed_fingerprint"`
	ZipNumber       uint16                      `json:"zip_number"`
	Subpath         string                      `json:"subpath"`
	Cryptovalue     string                      `json:"cryptovalue"`
}

var cryptovalueCommand = cli.Command{
	Name:  "cryptovalue",
	Usage: "Derive a 64-byte cryptovalue in the registered tree.",
	Description: `
	Derive the full-width cryptovalue at the given non-empty subpath of
	the registered tree. The result is a leaf: it must not be used to
	derive further keys.
	`,
	Flags: append([]cli.Flag{
		contextFlag, zipFlag, subpathFlag,
	}, seedFlags...),
	Action: deriveCryptovalue,
}

func deriveCryptovalue(ctx *cli.Context) error {
	req, err := parseRegisteredRequest(ctx)
	if err != nil {
		return err
	}
	defer clear(req.seed)

	fp, err := seedFingerprint(req.seed)
	if err != nil {
		return err
	}

	value, err := registered.CryptovalueFromSubpath(
		req.contextString, req.seed, req.zipNumber, req.subpath,
	)
	if err != nil {
		return err
	}
	defer value.Zero()

	b := value.Bytes()
	defer clear(b[:])

	printJSON(ctx.App.Writer, &cryptovalueResponse{
		SeedFingerprint: fp,
		ZipNumber:       req.zipNumber,
		Subpath:         req.subpathString(),
		Cryptovalue:     hex.EncodeToString(b[:]),
	})

	return nil
}

// registeredRequest holds the parsed inputs of the registered tree commands.
type registeredRequest struct {
	contextString []byte
	zipNumber     uint16
	subpath       []registered.PathElement
	seed          []byte
}

func (r *registeredRequest) subpathString() string {
	elems := make([]string, 0, len(r.subpath))
	for _, elem := range r.subpath {
		elems = append(elems, elem.String())
	}

	return strings.Join(elems, "/")
}

func parseRegisteredRequest(ctx *cli.Context) (*registeredRequest, error) {
	if !ctx.IsSet(zipFlag.Name) {
		return nil, fmt.Errorf("--%s is required", zipFlag.Name)
	}

	zipNumber := ctx.Uint(zipFlag.Name)
	if zipNumber > math.MaxUint16 {
		return nil, fmt.Errorf("ZIP number %d out of range",
			zipNumber)
	}

	subpath, err := parseSubpath(ctx.String(subpathFlag.Name))
	if err != nil {
		return nil, err
	}

	log.Tracef("Parsed subpath: %v", newLogClosure(func() string {
		return spew.Sdump(subpath)
	}))

	seed, err := readSeed(ctx)
	if err != nil {
		return nil, err
	}

	return &registeredRequest{
		contextString: []byte(ctx.String(contextFlag.Name)),
		zipNumber:     uint16(zipNumber),
		subpath:       subpath,
		seed:          seed,
	}, nil
}

func newKeyResponse(fp fingerprint.SeedFingerprint, zipNumber *uint16,
	path string, sk [hdkd.SecretKeySize]byte,
	chainCode zip32.ChainCode) *keyResponse {

	c := chainCode.Bytes()

	return &keyResponse{
		SeedFingerprint: fp,
		ZipNumber:       zipNumber,
		Path:            path,
		SecretKey:       hex.EncodeToString(sk[:]),
		ChainCode:       hex.EncodeToString(c[:]),
	}
}
