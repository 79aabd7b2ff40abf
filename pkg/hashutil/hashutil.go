package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

type HashAlgo string

const (
	HashAlgoSHA256 = "sha256"
	HashAlgoBLAKE3 = "blake3"
)

// HashString returns the hex digest of a page body using the specified algorithm.
// Supported algorithms: "sha256" and "blake3".
func HashString(data string, algo HashAlgo) (string, error) {
	switch algo {
	case HashAlgoSHA256:
		sum := sha256.Sum256([]byte(data))
		return hex.EncodeToString(sum[:]), nil
	case HashAlgoBLAKE3:
		sum := blake3.Sum256([]byte(data))
		return hex.EncodeToString(sum[:]), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", algo)
	}
}

// ShortDigest returns the first n hex characters of the BLAKE3 digest.
// It is meant for log lines where the full digest is noise.
func ShortDigest(data string, n int) string {
	digest, _ := HashString(data, HashAlgoBLAKE3)
	if n <= 0 || n >= len(digest) {
		return digest
	}
	return digest[:n]
}
