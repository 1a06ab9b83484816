package ring

import (
	"math/big"

	"github.com/clring/clring/group"
)

// Signature is a certificateless linkable ring signature: one commitment
// point per ring member, two response scalars, and the event-bound linking
// tag. len(A) always equals the ring size the signature was produced
// against; Verify rejects any mismatch.
type Signature struct {
	A   []group.Point
	Phi *big.Int
	Psi *big.Int
	T   group.Point
}
