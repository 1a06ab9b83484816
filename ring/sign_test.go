package ring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clring/clring/common/testlogger"
	"github.com/clring/clring/group"
)

func TestSignThenVerify(t *testing.T) {
	k, signers := setupParties(t, "alice", "bob", "carol")

	sig, l, err := signers[0].Sign([]byte("hi"), []byte("e1"), coSignersExcept(signers, 0))
	require.NoError(t, err)

	ok, err := Verify(k.Group(), k.Hashes(), k.PublicParams().PPub, l, sig, []byte("hi"), []byte("e1"), testlogger.New(t))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyIgnoresRingOrder(t *testing.T) {
	k, signers := setupParties(t, "alice", "bob", "carol")

	sig, l, err := signers[0].Sign([]byte("hi"), []byte("e1"), coSignersExcept(signers, 0))
	require.NoError(t, err)

	reversed := make(Ring, len(l))
	for i, m := range l {
		reversed[len(l)-1-i] = m
	}

	ok, err := Verify(k.Group(), k.Hashes(), k.PublicParams().PPub, reversed, sig, []byte("hi"), []byte("e1"), testlogger.New(t))
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyRejectsTamperedCommitment(t *testing.T) {
	k, signers := setupParties(t, "alice", "bob", "carol")
	g := k.Group()

	sig, l, err := signers[0].Sign([]byte("hi"), []byte("e1"), coSignersExcept(signers, 0))
	require.NoError(t, err)

	badA := append([]group.Point{}, sig.A...)
	badA[0] = g.Add(badA[0], g.Generator())
	tampered := &Signature{A: badA, Phi: sig.Phi, Psi: sig.Psi, T: sig.T}

	ok, err := Verify(g, k.Hashes(), k.PublicParams().PPub, l, tampered, []byte("hi"), []byte("e1"), testlogger.New(t))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	k, signers := setupParties(t, "alice", "bob", "carol")

	sig, l, err := signers[0].Sign([]byte("hi"), []byte("e1"), coSignersExcept(signers, 0))
	require.NoError(t, err)

	ok, err := Verify(k.Group(), k.Hashes(), k.PublicParams().PPub, l, sig, []byte("bye"), []byte("e1"), testlogger.New(t))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyRejectsTamperedResponseScalar(t *testing.T) {
	k, signers := setupParties(t, "alice", "bob", "carol")
	g := k.Group()

	sig, l, err := signers[0].Sign([]byte("hi"), []byte("e1"), coSignersExcept(signers, 0))
	require.NoError(t, err)

	one := g.ScalarFromBytes([]byte{1})
	tampered := &Signature{A: sig.A, Phi: g.ScalarAdd(sig.Phi, one), Psi: sig.Psi, T: sig.T}

	ok, err := Verify(g, k.Hashes(), k.PublicParams().PPub, l, tampered, []byte("hi"), []byte("e1"), testlogger.New(t))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSignRejectsDuplicateID(t *testing.T) {
	_, signers := setupParties(t, "alice", "bob")
	_, _, err := signers[0].Sign([]byte("hi"), []byte("e1"), []Member{{ID: "alice", X: signers[0].X, Y: signers[0].Y}})
	require.Error(t, err)
}

func TestLinkingTagStableAcrossMessagesSameEvent(t *testing.T) {
	_, signers := setupParties(t, "alice", "bob", "carol")

	sig1, _, err := signers[0].Sign([]byte("msg1"), []byte("e1"), coSignersExcept(signers, 0))
	require.NoError(t, err)
	sig2, _, err := signers[0].Sign([]byte("msg2"), []byte("e1"), coSignersExcept(signers, 0))
	require.NoError(t, err)

	require.True(t, DetectLink(signers[0].group, sig1, sig2))
}

func TestLinkingTagDiffersAcrossSigners(t *testing.T) {
	_, signers := setupParties(t, "alice", "bob", "carol")

	sigAlice, _, err := signers[0].Sign([]byte("hi"), []byte("e1"), coSignersExcept(signers, 0))
	require.NoError(t, err)
	sigBob, _, err := signers[1].Sign([]byte("hi"), []byte("e1"), coSignersExcept(signers, 1))
	require.NoError(t, err)

	require.False(t, DetectLink(signers[0].group, sigAlice, sigBob))
}

func TestLinkingTagDiffersAcrossEvents(t *testing.T) {
	_, signers := setupParties(t, "alice", "bob", "carol")

	sig1, _, err := signers[0].Sign([]byte("hi"), []byte("e1"), coSignersExcept(signers, 0))
	require.NoError(t, err)
	sig2, _, err := signers[0].Sign([]byte("hi"), []byte("e2"), coSignersExcept(signers, 0))
	require.NoError(t, err)

	require.False(t, DetectLink(signers[0].group, sig1, sig2))
}

func TestResponseScalarsInRange(t *testing.T) {
	k, signers := setupParties(t, "alice", "bob", "carol")
	sig, _, err := signers[0].Sign([]byte("hi"), []byte("e1"), coSignersExcept(signers, 0))
	require.NoError(t, err)

	q := k.Group().Order()
	require.True(t, sig.Phi.Sign() >= 0 && sig.Phi.Cmp(q) < 0)
	require.True(t, sig.Psi.Sign() >= 0 && sig.Psi.Cmp(q) < 0)
}

func TestEveryRingMemberCanSign(t *testing.T) {
	_, signers := setupParties(t, "alice", "bob", "carol")

	for i := range signers {
		sig, l, err := signers[i].Sign([]byte("hi"), []byte("e1"), coSignersExcept(signers, i))
		require.NoError(t, err)
		ok, err := Verify(signers[i].group, signers[i].hashes, signers[i].params.PPub, l, sig, []byte("hi"), []byte("e1"), testlogger.New(t))
		require.NoError(t, err)
		require.True(t, ok)
	}
}
