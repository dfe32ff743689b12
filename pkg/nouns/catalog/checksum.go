package catalog

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/adler32"
	"strings"

	nerrors "github.com/provide-io/nouns/go/nouns/pkg/nouns/errors"
)

// Checksums are written as "algorithm:hexvalue", e.g. "sha256:c0ffee...".

// ChecksumAlgorithm represents supported checksum algorithms
type ChecksumAlgorithm int

const (
	ChecksumSHA256 ChecksumAlgorithm = iota
	ChecksumSHA512
	ChecksumAdler32
)

func (c ChecksumAlgorithm) String() string {
	switch c {
	case ChecksumSHA256:
		return "sha256"
	case ChecksumSHA512:
		return "sha512"
	case ChecksumAdler32:
		return "adler32"
	default:
		return "unknown"
	}
}

// ParseChecksum splits a checksum string into algorithm and hex value.
// Unprefixed values are classified by length.
func ParseChecksum(checksumStr string) (ChecksumAlgorithm, string, error) {
	if prefix, value, ok := strings.Cut(checksumStr, ":"); ok {
		switch prefix {
		case "sha256":
			return ChecksumSHA256, value, nil
		case "sha512":
			return ChecksumSHA512, value, nil
		case "adler32":
			return ChecksumAdler32, value, nil
		default:
			return ChecksumSHA256, "", fmt.Errorf("unknown checksum algorithm: %s", prefix)
		}
	}

	switch len(checksumStr) {
	case 128:
		return ChecksumSHA512, checksumStr, nil
	case 8:
		return ChecksumAdler32, checksumStr, nil
	default:
		return ChecksumSHA256, checksumStr, nil
	}
}

// CalculateChecksum calculates checksum with prefix
func CalculateChecksum(data []byte, algorithm ChecksumAlgorithm) string {
	var h hash.Hash
	switch algorithm {
	case ChecksumSHA512:
		h = sha512.New()
	case ChecksumAdler32:
		h = adler32.New()
	default:
		algorithm = ChecksumSHA256
		h = sha256.New()
	}

	h.Write(data)
	return algorithm.String() + ":" + hex.EncodeToString(h.Sum(nil))
}

// VerifyChecksum verifies data against a checksum string
func VerifyChecksum(data []byte, checksumStr string) (bool, error) {
	algo, expected, err := ParseChecksum(checksumStr)
	if err != nil {
		return false, err
	}

	actual := CalculateChecksum(data, algo)
	_, actualHex, _ := strings.Cut(actual, ":")
	return strings.EqualFold(actualHex, expected), nil
}

// Verify checks the catalog's source digest against an expected checksum.
// Only sha256 digests are retained after load.
func (c *Catalog) Verify(expected string) error {
	algo, value, err := ParseChecksum(expected)
	if err != nil {
		return err
	}
	if algo != ChecksumSHA256 {
		return fmt.Errorf("%w: catalog digests are sha256, got %s", nerrors.ErrChecksumMismatch, algo)
	}
	_, have, _ := strings.Cut(c.checksum, ":")
	if !strings.EqualFold(have, value) {
		return fmt.Errorf("%w: have %s, want %s", nerrors.ErrChecksumMismatch, c.checksum, expected)
	}
	return nil
}
