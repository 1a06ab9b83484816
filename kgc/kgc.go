// Package kgc implements the Key Generation Centre: it holds the master
// secret s and public P_pub = s*P, and issues the per-member partial key
// material (Y, z) that makes each ring member's key certificateless.
package kgc

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"sync"

	"github.com/clring/clring/common/constants"
	"github.com/clring/clring/common/errs"
	"github.com/clring/clring/common/log"
	"github.com/clring/clring/group"
	"github.com/clring/clring/hashfamily"
)

// PublicParams are the system parameters Setup produces and distributes to
// every party: the curve, digest, master public key and the
// five HMAC keys. This is the public half of the KGC's state; it MUST be
// distributed to all ring members and verifiers.
type PublicParams struct {
	CurveID  group.ID
	HashAlg  string
	PPub     group.Point
	HashKeys [constants.NumHashKeys][]byte
}

// KGC holds the master secret alongside the public parameters it was
// derived from, and issues partial keys to signers. It is safe for
// concurrent use: the master scalar is mutated only by Setup and is
// read-only thereafter.
type KGC struct {
	mu     sync.RWMutex
	log    log.Logger
	group  group.Group
	hashes *hashfamily.Family
	params PublicParams
	secret *big.Int // s
}

// Setup generates a fresh KGC: a random master secret s in [1,q), the
// corresponding P_pub = s*P, and five distinct cryptographically random
// HMAC keys. The KGC MUST sample s (and, per issuance, y) from a
// cryptographic RNG, never a seeded PRNG.
func Setup(curveID group.ID, hashAlg string, logger log.Logger) (*KGC, error) {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	g, err := group.CurveByID(curveID)
	if err != nil {
		return nil, err
	}
	s, err := g.RandomScalar()
	if err != nil {
		return nil, errs.WrapStack(errs.CryptoBackend, err, "kgc: sampling master secret")
	}
	pPub := g.Mul(s, g.Generator())

	keys, err := generateHashKeys()
	if err != nil {
		return nil, err
	}
	hf, err := hashfamily.New(g, hashAlg, keys)
	if err != nil {
		return nil, err
	}

	k := &KGC{
		log:    logger,
		group:  g,
		hashes: hf,
		secret: s,
		params: PublicParams{CurveID: curveID, HashAlg: hashAlg, PPub: pPub, HashKeys: keys},
	}
	k.log.Infow("kgc setup complete", "curve", curveID, "hash_alg", hashAlg)
	return k, nil
}

// generateHashKeys draws five distinct HMAC keys, each 32 cryptographically
// random bytes hex-encoded into a 64-byte ASCII key (comfortably above the
// 16-byte minimum), so the keys survive the TOML string round trip of the
// public system file.
func generateHashKeys() ([constants.NumHashKeys][]byte, error) {
	var keys [constants.NumHashKeys][]byte
	seen := make(map[string]struct{}, constants.NumHashKeys)
	for i := range keys {
		for {
			buf := make([]byte, 32)
			if _, err := rand.Read(buf); err != nil {
				return keys, errs.CryptoBackendf("kgc: generating hash key: %v", err)
			}
			key := []byte(hex.EncodeToString(buf))
			if _, dup := seen[string(key)]; dup {
				continue // astronomically unlikely; re-roll rather than risk losing domain separation
			}
			seen[string(key)] = struct{}{}
			keys[i] = key
			break
		}
	}
	return keys, nil
}

// PublicParams returns the system parameters a ring member or verifier
// needs. Safe for concurrent use; the returned value is never mutated.
func (k *KGC) PublicParams() PublicParams {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.params
}

// Group returns the group context this KGC was set up with.
func (k *KGC) Group() group.Group { return k.group }

// Hashes returns the keyed hash family this KGC was set up with, so callers
// can reuse the exact same H0..H4 instance a member or verifier needs.
func (k *KGC) Hashes() *hashfamily.Family { return k.hashes }

// IssuePartialKey runs the KGC's half of the two-message key-issuance
// protocol: given a member's id and self-chosen public point
// X = x*P, it returns (Y, z) such that z*P = Y + h*P_pub, and discards its
// own ephemeral y.
//
// Invalid X (not on curve, identity) is rejected as a ProtocolError; the
// protocol terminates without emitting (Y, z).
func (k *KGC) IssuePartialKey(id string, x group.Point) (group.Point, *big.Int, error) {
	if id == "" {
		return nil, nil, errs.Protocolf("kgc: member id must not be empty")
	}
	if !k.group.IsOnCurve(x) {
		return nil, nil, errs.Protocolf("kgc: member %q submitted a point not on the curve", id)
	}

	k.mu.RLock()
	s := k.secret
	pPub := k.params.PPub
	k.mu.RUnlock()

	h, err := k.hashes.IdentityBinder(id, x, pPub)
	if err != nil {
		return nil, nil, err
	}

	y, err := k.group.RandomScalar()
	if err != nil {
		return nil, nil, errs.CryptoBackendf("kgc: sampling ephemeral y for %q: %v", id, err)
	}
	Y := k.group.Mul(y, k.group.Generator())
	z := k.group.ScalarAdd(y, k.group.ScalarMul(h, s))
	// y is not retained anywhere beyond this point.

	k.log.Infow("kgc.issued", "id", id)
	return Y, z, nil
}

// IssueResult is one member's issued partial key, used by IssueBatch.
type IssueResult struct {
	ID  string
	Y   group.Point
	Z   *big.Int
	Err error
}

// IssueRequest is one member's issuance request for IssueBatch.
type IssueRequest struct {
	ID string
	X  group.Point
}
