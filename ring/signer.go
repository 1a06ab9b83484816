package ring

import (
	"math/big"

	"github.com/clring/clring/common/errs"
	"github.com/clring/clring/common/log"
	"github.com/clring/clring/group"
	"github.com/clring/clring/hashfamily"
	"github.com/clring/clring/kgc"
)

// State is a Signer's position in the key-agreement lifecycle. A Signer
// advances strictly forward; there is no way to reset one back to an
// earlier state short of constructing a new one.
type State int

const (
	// Fresh is a Signer that has an identity, a group and a hash family but
	// no self-chosen secret and no KGC-issued material yet.
	Fresh State = iota
	// PartialKeyGenerated is a Signer that has chosen x, computed X = x*P,
	// and is ready to submit (id, X) to the KGC.
	PartialKeyGenerated
	// FullKeyInstalled is a Signer that holds a verified (Y, z) from the
	// KGC and can sign.
	FullKeyInstalled
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case PartialKeyGenerated:
		return "partial-key-generated"
	case FullKeyInstalled:
		return "full-key-installed"
	default:
		return "unknown"
	}
}

// Signer is one ring member's view of the scheme: it carries the member's
// own secret x, the KGC-issued (Y, z), and the group and hash family needed
// to sign. A Signer only ever exists for one identity.
type Signer struct {
	log    log.Logger
	group  group.Group
	hashes *hashfamily.Family
	params kgc.PublicParams

	id    string
	state State

	X group.Point
	Y group.Point

	xScalar *big.Int // member's self-chosen secret
	z       *big.Int // KGC-issued response scalar
}

// NewSigner creates a Fresh signer bound to an identity and the given
// system parameters, before any key material has been exchanged.
func NewSigner(id string, g group.Group, hashes *hashfamily.Family, params kgc.PublicParams, logger log.Logger) (*Signer, error) {
	if id == "" {
		return nil, errs.Protocolf("ring: signer id must not be empty")
	}
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Signer{log: logger, group: g, hashes: hashes, params: params, id: id, state: Fresh}, nil
}

// ID returns the signer's identity string.
func (s *Signer) ID() string { return s.id }

// State returns the signer's current lifecycle state.
func (s *Signer) State() State { return s.state }

// GeneratePartialKey draws the member's own secret x uniformly from the
// scalar field and computes X = x*P. The Signer must be Fresh; afterwards
// it is PartialKeyGenerated and X is ready to be submitted to the KGC.
func (s *Signer) GeneratePartialKey() (group.Point, error) {
	if s.state != Fresh {
		return nil, errs.Statef("ring: signer %q must be fresh to generate a partial key, is %s", s.id, s.state)
	}
	x, err := s.group.RandomScalar()
	if err != nil {
		return nil, errs.CryptoBackendf("ring: sampling secret for %q: %v", s.id, err)
	}
	s.xScalar = x
	s.X = s.group.Mul(x, s.group.Generator())
	s.state = PartialKeyGenerated
	return s.X, nil
}

// InstallFullKey verifies the KGC's issued (Y, z) against the
// key-consistency equation z*P = Y + h*P_pub, where h = H1(id || X ||
// P_pub). On success the Signer becomes FullKeyInstalled and can sign; on
// failure the Signer's state is unchanged so the caller can retry issuance.
func (s *Signer) InstallFullKey(y group.Point, z *big.Int) error {
	if s.state != PartialKeyGenerated {
		return errs.Statef("ring: signer %q must have a partial key before installing a full key, is %s", s.id, s.state)
	}
	if !s.group.IsOnCurve(y) {
		return errs.Protocolf("ring: signer %q received Y not on curve", s.id)
	}
	h, err := s.hashes.IdentityBinder(s.id, s.X, s.params.PPub)
	if err != nil {
		return err
	}
	lhs := s.group.Mul(z, s.group.Generator())
	rhs := s.group.Add(y, s.group.Mul(h, s.params.PPub))
	if !s.group.Equal(lhs, rhs) {
		return errs.Protocolf("ring: signer %q's issued key fails the key-consistency check", s.id)
	}
	s.Y = y
	s.z = z
	s.state = FullKeyInstalled
	return nil
}

// PublicKey returns the (X, Y) pair this signer publishes into a Ring. The
// signer must be at least PartialKeyGenerated.
func (s *Signer) PublicKey() (group.Point, group.Point, error) {
	if s.state == Fresh {
		return nil, nil, errs.Statef("ring: signer %q has no public key yet", s.id)
	}
	return s.X, s.Y, nil
}
