package ring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clring/clring/common/testlogger"
	"github.com/clring/clring/group"
	"github.com/clring/clring/kgc"
)

// setupParties spins up a KGC and onboards n named members, returning
// fully key-installed Signers ready to sign against one another.
func setupParties(t *testing.T, ids ...string) (*kgc.KGC, []*Signer) {
	t.Helper()
	logger := testlogger.New(t)

	k, err := kgc.Setup(group.Secp256k1, "sha256", logger)
	require.NoError(t, err)

	signers := make([]*Signer, len(ids))
	for i, id := range ids {
		s, err := NewSigner(id, k.Group(), k.Hashes(), k.PublicParams(), logger)
		require.NoError(t, err)

		X, err := s.GeneratePartialKey()
		require.NoError(t, err)

		Y, z, err := k.IssuePartialKey(id, X)
		require.NoError(t, err)

		require.NoError(t, s.InstallFullKey(Y, z))
		signers[i] = s
	}
	return k, signers
}

func coSignersExcept(signers []*Signer, omega int) []Member {
	out := make([]Member, 0, len(signers)-1)
	for i, s := range signers {
		if i == omega {
			continue
		}
		out = append(out, Member{ID: s.ID(), X: s.X, Y: s.Y})
	}
	return out
}
