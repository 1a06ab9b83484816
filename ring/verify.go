package ring

import (
	"math/big"

	"github.com/clring/clring/common/errs"
	"github.com/clring/clring/common/log"
	"github.com/clring/clring/group"
	"github.com/clring/clring/hashfamily"
)

// Verify checks a Signature against a ring, message, and event tag. It
// returns (false, nil) for any malformed or simply-invalid signature and
// only returns a non-nil error for inputs a verifier cannot even evaluate
// (wrong-sized signature, ring too small, duplicate id) — per the
// certificateless scheme's rule that a rejected signature is just
// "invalid", not an exceptional condition. A nil logger defaults to
// log.DefaultLogger(); every rejection is logged at Warn with the reason
// but never the message, event tag, or signature content.
func Verify(g group.Group, hashes *hashfamily.Family, pPub group.Point, l Ring, sig *Signature, m, evt []byte, logger log.Logger) (bool, error) {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	sorted, err := NewRing(l)
	if err != nil {
		return false, err
	}
	if err := sorted.ValidateMembers(g); err != nil {
		logger.Warnw("ring.verify.failed", "reason", "invalid ring member")
		return false, nil
	}
	if len(sig.A) != len(sorted) {
		return false, errs.Protocolf("ring: signature has %d commitments, ring has %d members", len(sig.A), len(sorted))
	}
	for _, p := range sig.A {
		if !g.IsOnCurve(p) {
			logger.Warnw("ring.verify.failed", "reason", "commitment not on curve")
			return false, nil
		}
	}
	if !g.IsOnCurve(sig.T) {
		logger.Warnw("ring.verify.failed", "reason", "linking tag not on curve")
		return false, nil
	}

	E, err := hashes.EventPoint(evt)
	if err != nil {
		return false, err
	}

	sumA := g.Identity()
	rhsKeyTerm := g.Identity() // sum of a_i*(X_i+Y_i+T)
	ahSum := big.NewInt(0)     // sum of a_i*h_i mod q

	for i, member := range sorted {
		sumA = g.Add(sumA, sig.A[i])

		ai, err := hashes.ChallengeShare(m, evt, member.ID, member.X, member.Y, sig.A[i])
		if err != nil {
			return false, err
		}
		hi, err := hashes.IdentityBinder(member.ID, member.X, pPub)
		if err != nil {
			return false, err
		}

		rhsKeyTerm = g.Add(rhsKeyTerm, g.Mul(ai, g.Add(g.Add(member.X, member.Y), sig.T)))
		ahSum = g.ScalarAdd(ahSum, g.ScalarMul(ai, hi))
	}

	phiPlusPsi := g.ScalarAdd(sig.Phi, sig.Psi)
	rhs := g.Add(rhsKeyTerm, g.Mul(sig.Psi, E))
	rhs = g.Add(rhs, g.Mul(ahSum, pPub))
	rhs = g.Add(rhs, g.Mul(phiPlusPsi, g.Generator()))

	ok := g.Equal(sumA, rhs)
	if !ok {
		logger.Warnw("ring.verify.failed", "reason", "challenge equation mismatch")
	}
	return ok, nil
}
