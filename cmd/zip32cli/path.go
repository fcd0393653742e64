package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lightningnetwork/zip32"
	"github.com/lightningnetwork/zip32/registered"
)

var (
	errNotHardened = errors.New("only hardened derivation is supported")
)

// parseChildIndex parses a single path component. Hardened values are written
// as N' or Nh with N < 2^31, or as the raw index with the hardened bit set.
func parseChildIndex(s string) (zip32.ChildIndex, error) {
	hardened := strings.HasSuffix(s, "'") || strings.HasSuffix(s, "h")
	if hardened {
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return zip32.ChildIndex{}, fmt.Errorf("invalid child index "+
			"%q: %w", s, err)
	}

	if !hardened {
		return zip32.ChildIndexFromIndex(uint32(v)).UnwrapOrErr(
			fmt.Errorf("%w: %d", errNotHardened, v),
		)
	}

	if uint32(v) >= zip32.HardenedKeyStart {
		return zip32.ChildIndex{}, fmt.Errorf("child index %d' out "+
			"of range", v)
	}

	return zip32.Hardened(uint32(v)), nil
}

// splitPath splits a /-separated path, dropping an optional leading "m".
func splitPath(path string) []string {
	path = strings.TrimSpace(path)
	if path == "" || path == "m" {
		return nil
	}

	elems := strings.Split(path, "/")
	if elems[0] == "m" {
		elems = elems[1:]
	}

	return elems
}

// parsePath parses a path of the arbitrary tree, e.g. m/32'/1'/0'.
func parsePath(path string) ([]zip32.ChildIndex, error) {
	elems := splitPath(path)

	indices := make([]zip32.ChildIndex, 0, len(elems))
	for _, elem := range elems {
		index, err := parseChildIndex(elem)
		if err != nil {
			return nil, err
		}

		indices = append(indices, index)
	}

	return indices, nil
}

// parseSubpath parses a subpath of the registered tree, where every element
// may carry a hex encoded tag, e.g. 2':7472616e73/3'.
func parseSubpath(path string) ([]registered.PathElement, error) {
	elems := splitPath(path)

	subpath := make([]registered.PathElement, 0, len(elems))
	for _, elem := range elems {
		indexStr, tagHex, _ := strings.Cut(elem, ":")

		index, err := parseChildIndex(indexStr)
		if err != nil {
			return nil, err
		}

		var tag []byte
		if tagHex != "" {
			tag, err = hex.DecodeString(tagHex)
			if err != nil {
				return nil, fmt.Errorf("invalid tag %q: %w",
					tagHex, err)
			}
		}

		subpath = append(subpath, registered.PathElement{
			Index: index,
			Tag:   tag,
		})
	}

	return subpath, nil
}
