// Package group wraps a named prime-order elliptic curve group and exposes
// the point and scalar arithmetic the ring-signature engine needs: a single
// multiplication primitive, modular scalar algebra, and a canonical hex
// codec for both.
package group

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/clring/clring/common/errs"
)

// ID identifies a supported curve. In practice only secp256k1 is named, but
// the registry keeps the door open for others without changing callers.
type ID string

// Secp256k1 is the 256-bit Koblitz curve used throughout the blockchain
// ecosystem.
const Secp256k1 ID = "secp256k1"

// Group is a prime-order elliptic curve group: a generator, an order, and
// the operations needed to build and verify ring signatures over it.
//
// Implementations are side-effect free and safe for concurrent use by many
// goroutines.
type Group interface {
	ID() ID
	// Order returns the (prime) order q of the group.
	Order() *big.Int
	// Generator returns the fixed base point P.
	Generator() Point
	// Identity returns the identity element (point at infinity).
	Identity() Point

	// RandomScalar draws a scalar uniformly from [1, q) using a
	// cryptographically strong source.
	RandomScalar() (*big.Int, error)

	// Scalar algebra, all reduced mod q into [0, q).
	ScalarAdd(a, b *big.Int) *big.Int
	ScalarSub(a, b *big.Int) *big.Int
	ScalarMul(a, b *big.Int) *big.Int
	ScalarNeg(a *big.Int) *big.Int
	// ScalarFromBytes interprets data big-endian as an unsigned integer and
	// reduces it mod q. Used by the keyed hash family (H0..H4).
	ScalarFromBytes(data []byte) *big.Int

	// Mul computes a*Q. Mul(a, g.Generator()) is the canonical way to turn a
	// scalar into a public point; there is no separate base-point primitive.
	Mul(a *big.Int, q Point) Point
	Add(p, q Point) Point
	Neg(p Point) Point
	Equal(p, q Point) bool
	// IsOnCurve reports whether p is a valid, non-identity point of the group.
	IsOnCurve(p Point) bool

	// Hex codec: uppercase hex of the SEC1 uncompressed point encoding,
	// and of the big-endian scalar bytes.
	PointToHex(p Point) string
	PointFromHex(s string) (Point, error)
	ScalarToHex(a *big.Int) string
	ScalarFromHex(s string) (*big.Int, error)
}

// CurveByID resolves a curve identifier to a Group.
func CurveByID(id ID) (Group, error) {
	switch id {
	case Secp256k1:
		return newSecp256k1(), nil
	default:
		return nil, errs.Configf("group: unsupported curve id %q", id)
	}
}

// Point is an element of a Group. It carries no exported internals: callers
// must go through Group's methods, so no interior representation leaks
// across the package boundary.
type Point interface {
	fmt.Stringer
	isPoint()
}
