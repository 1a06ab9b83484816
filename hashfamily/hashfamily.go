// Package hashfamily implements the five independent keyed hashes
// H0..H4 : bytes -> Z_q: each is an HMAC digest, keyed by a distinct
// secret, interpreted big-endian as an unsigned integer and reduced
// modulo the group order.
package hashfamily

import (
	"crypto/hmac"
	"hash"
	"math/big"

	"github.com/clring/clring/common/constants"
	"github.com/clring/clring/common/errs"
	"github.com/clring/clring/common/scheme"
	"github.com/clring/clring/group"
)

// Index names one of the five call sites, purely for error messages and
// logging — the hash computation itself never branches on it beyond
// selecting the right key.
type Index int

const (
	H0 Index = iota // event point: E = H0(evt)*P
	H1              // identity binder: h = H1(id || X || P_pub)
	H2              // reserved for future domain separation; unused by the current algebra
	H3              // decoy/signer challenge share: a_i = H3(m || evt || id_i || X_i || Y_i || A_i)
	H4              // ring challenge: theta = H4(m || evt || T || M || N || ring)
)

// Family is an immutable, thread-safe bundle of five keyed hashes over a
// fixed group. Once built it never mutates.
type Family struct {
	group group.Group
	newH  func() hash.Hash
	keys  [constants.NumHashKeys][]byte
}

// New builds the hash family for the given group and digest algorithm,
// keyed by keys[0..4]. The keys MUST be distinct and at least
// constants.MinHashKeyLen bytes; this is enforced here so a misconfigured
// KGC fails at construction time rather than silently losing domain
// separation.
func New(g group.Group, hashAlg string, keys [constants.NumHashKeys][]byte) (*Family, error) {
	digest, err := scheme.ByID(hashAlg)
	if err != nil {
		return nil, err
	}
	if err := validateKeys(keys); err != nil {
		return nil, err
	}
	return &Family{group: g, newH: digest.New, keys: keys}, nil
}

func validateKeys(keys [constants.NumHashKeys][]byte) error {
	seen := make(map[string]struct{}, len(keys))
	for i, k := range keys {
		if len(k) < constants.MinHashKeyLen {
			return errs.Configf("hashfamily: key %d is %d bytes, need >= %d", i, len(k), constants.MinHashKeyLen)
		}
		if _, dup := seen[string(k)]; dup {
			return errs.Configf("hashfamily: hash keys must be pairwise distinct for domain separation")
		}
		seen[string(k)] = struct{}{}
	}
	return nil
}

// Hash computes H_j(data) = int(HMAC(k_j, data)) mod q. The variadic data
// arguments are concatenated in order before hashing.
func (f *Family) Hash(j Index, data ...[]byte) (*big.Int, error) {
	if int(j) < 0 || int(j) >= len(f.keys) {
		return nil, errs.CryptoBackendf("hashfamily: index %d out of range", j)
	}
	mac := hmac.New(f.newH, f.keys[j])
	for _, d := range data {
		if _, err := mac.Write(d); err != nil {
			return nil, errs.CryptoBackendf("hashfamily: hmac write failed: %v", err)
		}
	}
	sum := mac.Sum(nil)
	return f.group.ScalarFromBytes(sum), nil
}

// Group returns the group this family's H_j outputs are reduced modulo.
func (f *Family) Group() group.Group { return f.group }

// IdentityBinder computes the identity binder h = H1(id || X || P_pub),
// using the group's canonical hex encoding for the points.
func (f *Family) IdentityBinder(id string, x, pPub group.Point) (*big.Int, error) {
	return f.Hash(H1, []byte(id), []byte(f.group.PointToHex(x)), []byte(f.group.PointToHex(pPub)))
}

// EventPoint computes the event point E = H0(evt)*P.
func (f *Family) EventPoint(evt []byte) (group.Point, error) {
	e, err := f.Hash(H0, evt)
	if err != nil {
		return nil, err
	}
	return f.group.Mul(e, f.group.Generator()), nil
}

// ChallengeShare computes a_i = H3(m || evt || id_i || X_i || Y_i || A_i).
func (f *Family) ChallengeShare(m, evt []byte, id string, x, y, a group.Point) (*big.Int, error) {
	return f.Hash(H3, m, evt, []byte(id), []byte(f.group.PointToHex(x)), []byte(f.group.PointToHex(y)), []byte(f.group.PointToHex(a)))
}

// RingChallenge computes the ring challenge theta = H4(m || evt || T || M ||
// N || ring), where ring is the sorted concatenation of (id_i||X_i||Y_i).
func (f *Family) RingChallenge(m, evt []byte, t, mm, n group.Point, ringBytes []byte) (*big.Int, error) {
	return f.Hash(H4, m, evt, []byte(f.group.PointToHex(t)), []byte(f.group.PointToHex(mm)), []byte(f.group.PointToHex(n)), ringBytes)
}
