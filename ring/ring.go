// Package ring implements the signer and verifier halves of the scheme:
// the per-member key-agreement lifecycle, ring signing, and ring
// verification. Signer and verifier share this package because they share
// every primitive — the group, the hash family, and the ring encoding.
package ring

import (
	"bytes"
	"sort"

	"github.com/clring/clring/common/constants"
	"github.com/clring/clring/common/errs"
	"github.com/clring/clring/group"
)

// Member is one ring entry: an id and the two-part public key (X, Y). X is
// the member's self-chosen partial public point; Y is the KGC-issued
// partial public point.
type Member struct {
	ID string
	X  group.Point
	Y  group.Point
}

// Ring is an ordered list of Members forming the anonymity set of a
// signature. A valid Ring is sorted ascending by ID, byte-wise (not
// locale-aware), contains no duplicate IDs, and has at least
// constants.MinRingSize members.
type Ring []Member

// NewRing sorts members by ID and validates the ring's structural
// invariants (minimum size, no duplicate ids). Every member's (X, Y) MUST
// already be validated on-curve by the caller — NewRing only checks
// structure, not curve membership, since that requires the group and is
// checked by Sign/Verify instead.
func NewRing(members []Member) (Ring, error) {
	r := make(Ring, len(members))
	copy(r, members)
	sort.Slice(r, func(i, j int) bool { return r[i].ID < r[j].ID })

	if len(r) < constants.MinRingSize {
		return nil, errs.Protocolf("ring: need at least %d members, got %d", constants.MinRingSize, len(r))
	}
	for i := 1; i < len(r); i++ {
		if r[i-1].ID == r[i].ID {
			return nil, errs.Protocolf("ring: duplicate id %q", r[i].ID)
		}
		if !validUTF8(r[i].ID) || !validUTF8(r[i-1].ID) {
			return nil, errs.Encodingf("ring: member ids must be valid UTF-8")
		}
	}
	return r, nil
}

func validUTF8(s string) bool {
	for _, r := range s {
		if r == 0xFFFD {
			return false
		}
	}
	return true
}

// Index returns the position of id in the ring, and whether it was found.
func (r Ring) Index(id string) (int, bool) {
	for i, m := range r {
		if m.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Contains reports whether id is present in the ring.
func (r Ring) Contains(id string) bool {
	_, ok := r.Index(id)
	return ok
}

// EncodeForChallenge returns the sorted concatenation of (id_i || X_i ||
// Y_i) that the ring challenge theta hashes over. The ring MUST already be
// sorted — Ring values produced by NewRing always are.
func (r Ring) EncodeForChallenge(g group.Group) []byte {
	var buf bytes.Buffer
	for _, m := range r {
		buf.WriteString(m.ID)
		buf.WriteString(g.PointToHex(m.X))
		buf.WriteString(g.PointToHex(m.Y))
	}
	return buf.Bytes()
}

// ValidateMembers checks that every member's X and Y are valid non-identity
// points on g. It does not re-verify the key-consistency equation for each
// member, since that requires the per-member binder h = H1(id || X ||
// P_pub) and is checked by the caller instead.
func (r Ring) ValidateMembers(g group.Group) error {
	for _, m := range r {
		if !g.IsOnCurve(m.X) {
			return errs.Encodingf("ring: member %q has X not on curve", m.ID)
		}
		if !g.IsOnCurve(m.Y) {
			return errs.Encodingf("ring: member %q has Y not on curve", m.ID)
		}
	}
	return nil
}
