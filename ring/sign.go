package ring

import (
	"math/big"

	"github.com/clring/clring/common/errs"
	"github.com/clring/clring/group"
)

// combinedKey returns X + Y + h*P_pub, the point whose discrete log any
// holder of a valid (x, z) pair with z*P = Y + h*P_pub effectively knows:
// sk = x + z satisfies sk*P = X + Y + h*P_pub. Every ring member's
// combined key is computable from public data alone; only its owner knows
// the scalar behind it.
func combinedKey(g group.Group, x, y, pPub group.Point, h *big.Int) group.Point {
	return g.Add(g.Add(x, y), g.Mul(h, pPub))
}

// Sign produces a ring signature over m bound to evt, on behalf of s,
// against the ring formed by inserting s's own (id, X, Y) into coSigners.
// s must be FullKeyInstalled. The returned Ring is the sorted ring the
// signature was produced against — callers MUST distribute it alongside
// the signature, since a verifier that sorts differently will reject.
func (s *Signer) Sign(m, evt []byte, coSigners []Member) (*Signature, Ring, error) {
	if s.state != FullKeyInstalled {
		return nil, nil, errs.Statef("ring: signer %q must have a full key installed to sign, is %s", s.id, s.state)
	}

	members := make([]Member, 0, len(coSigners)+1)
	members = append(members, coSigners...)
	members = append(members, Member{ID: s.id, X: s.X, Y: s.Y})

	l, err := NewRing(members)
	if err != nil {
		return nil, nil, err
	}
	if err := l.ValidateMembers(s.group); err != nil {
		return nil, nil, err
	}
	omega, ok := l.Index(s.id)
	if !ok {
		return nil, nil, errs.Protocolf("ring: signer %q missing from its own ring after sort", s.id)
	}

	g := s.group
	n := len(l)

	E, err := s.hashes.EventPoint(evt)
	if err != nil {
		return nil, nil, err
	}
	T := g.Mul(s.xScalar, E)

	mu, err := g.RandomScalar()
	if err != nil {
		return nil, nil, errs.CryptoBackendf("ring: sampling mu: %v", err)
	}
	nu, err := g.RandomScalar()
	if err != nil {
		return nil, nil, errs.CryptoBackendf("ring: sampling nu: %v", err)
	}

	A := make([]group.Point, n)

	decoySumA := g.Identity()
	decoyTermM := g.Identity() // sum of a_i*(X_i+Y_i+h_i*P_pub), i != omega
	decoyTermN := g.Identity() // sum of a_i*T, i != omega

	for i, member := range l {
		if i == omega {
			continue
		}
		r, err := g.RandomScalar()
		if err != nil {
			return nil, nil, errs.CryptoBackendf("ring: sampling decoy scalar for %q: %v", member.ID, err)
		}
		A[i] = g.Mul(r, g.Generator())

		ai, err := s.hashes.ChallengeShare(m, evt, member.ID, member.X, member.Y, A[i])
		if err != nil {
			return nil, nil, err
		}
		hi, err := s.hashes.IdentityBinder(member.ID, member.X, s.params.PPub)
		if err != nil {
			return nil, nil, err
		}

		decoySumA = g.Add(decoySumA, A[i])
		decoyTermM = g.Add(decoyTermM, g.Mul(ai, combinedKey(g, member.X, member.Y, s.params.PPub, hi)))
		decoyTermN = g.Add(decoyTermN, g.Mul(ai, T))
	}

	muPlusNu := g.ScalarAdd(mu, nu)
	M := g.Add(g.Mul(muPlusNu, g.Generator()), decoyTermM)
	N := g.Add(g.Mul(nu, E), decoyTermN)

	theta, err := s.hashes.RingChallenge(m, evt, T, M, N, l.EncodeForChallenge(g))
	if err != nil {
		return nil, nil, err
	}

	D := g.Add(g.Add(M, N), g.Mul(theta, g.Generator()))
	A[omega] = g.Add(D, g.Neg(decoySumA))

	aOmega, err := s.hashes.ChallengeShare(m, evt, s.id, s.X, s.Y, A[omega])
	if err != nil {
		return nil, nil, err
	}

	phi := g.ScalarSub(g.ScalarAdd(mu, theta), g.ScalarMul(aOmega, s.z))
	psi := g.ScalarSub(nu, g.ScalarMul(aOmega, s.xScalar))

	s.log.Infow("ring.signed", "id", s.id, "ring_size", n)
	return &Signature{A: A, Phi: phi, Psi: psi, T: T}, l, nil
}
