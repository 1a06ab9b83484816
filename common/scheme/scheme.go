// Package scheme resolves the textual digest identifier carried in system
// parameters to a concrete hash.Hash constructor.
package scheme

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/clring/clring/common/errs"
)

// DefaultDigestID is used when system parameters don't name a digest.
const DefaultDigestID = "sha256"

// Digest groups a digest identifier with its constructor.
type Digest struct {
	ID  string
	New func() hash.Hash
}

var digests = []Digest{
	{ID: "sha256", New: sha256.New},
	{ID: "sha512", New: sha512.New},
}

// ByID looks up a digest constructor by its textual identifier. An unknown
// identifier is a ConfigError at construction time.
func ByID(id string) (Digest, error) {
	if id == "" {
		id = DefaultDigestID
	}
	for _, d := range digests {
		if d.ID == id {
			return d, nil
		}
	}
	return Digest{}, errs.Configf("scheme: unsupported hash_alg %q", id)
}

// ListIDs returns the known digest identifiers.
func ListIDs() []string {
	ids := make([]string, len(digests))
	for i, d := range digests {
		ids[i] = d.ID
	}
	return ids
}
