package ring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clring/clring/common/testlogger"
	"github.com/clring/clring/group"
	"github.com/clring/clring/kgc"
)

func TestSignerLifecycle(t *testing.T) {
	logger := testlogger.New(t)
	k, err := kgc.Setup(group.Secp256k1, "sha256", logger)
	require.NoError(t, err)

	s, err := NewSigner("alice", k.Group(), k.Hashes(), k.PublicParams(), logger)
	require.NoError(t, err)
	require.Equal(t, Fresh, s.State())

	_, err = s.PublicKey()
	require.Error(t, err, "no public key before GeneratePartialKey")

	X, err := s.GeneratePartialKey()
	require.NoError(t, err)
	require.Equal(t, PartialKeyGenerated, s.State())

	_, err = s.GeneratePartialKey()
	require.Error(t, err, "cannot generate a partial key twice")

	Y, z, err := k.IssuePartialKey("alice", X)
	require.NoError(t, err)

	require.NoError(t, s.InstallFullKey(Y, z))
	require.Equal(t, FullKeyInstalled, s.State())

	gotX, gotY, err := s.PublicKey()
	require.NoError(t, err)
	require.True(t, k.Group().Equal(gotX, X))
	require.True(t, k.Group().Equal(gotY, Y))
}

func TestInstallFullKeyRejectsForgedResponse(t *testing.T) {
	logger := testlogger.New(t)
	k, err := kgc.Setup(group.Secp256k1, "sha256", logger)
	require.NoError(t, err)

	s, err := NewSigner("alice", k.Group(), k.Hashes(), k.PublicParams(), logger)
	require.NoError(t, err)
	X, err := s.GeneratePartialKey()
	require.NoError(t, err)

	Y, z, err := k.IssuePartialKey("alice", X)
	require.NoError(t, err)

	forgedZ := k.Group().ScalarAdd(z, k.Group().ScalarFromBytes([]byte{1}))
	require.Error(t, s.InstallFullKey(Y, forgedZ))
	require.Equal(t, PartialKeyGenerated, s.State(), "a failed install must not advance state")
}

func TestIssuePartialKeyRejectsOffCurveX(t *testing.T) {
	logger := testlogger.New(t)
	k, err := kgc.Setup(group.Secp256k1, "sha256", logger)
	require.NoError(t, err)

	bogus, err := k.Group().PointFromHex("00")
	require.NoError(t, err)
	_, _, err = k.IssuePartialKey("alice", bogus)
	require.Error(t, err)
}

func TestKeyIssuanceSatisfiesInvariant(t *testing.T) {
	_, signers := setupParties(t, "alice")
	s := signers[0]

	h, err := s.hashes.IdentityBinder(s.id, s.X, s.params.PPub)
	require.NoError(t, err)

	lhs := s.group.Mul(s.z, s.group.Generator())
	rhs := s.group.Add(s.Y, s.group.Mul(h, s.params.PPub))
	require.True(t, s.group.Equal(lhs, rhs))
}
