package group

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/clring/clring/common/errs"
)

// secp256k1 field prime p = 2^256 - 2^32 - 977.
var fieldPrime, _ = new(big.Int).SetString(
	"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)

// secp256k1 group order q.
var groupOrder, _ = new(big.Int).SetString(
	"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

var curveB = big.NewInt(7)

type secpPoint struct {
	infinity bool
	x, y     *big.Int
}

func (*secpPoint) isPoint() {}

func (p *secpPoint) String() string {
	if p.infinity {
		return "Infinity"
	}
	return fmt.Sprintf("(%x, %x)", p.x, p.y)
}

type secpGroup struct{}

func newSecp256k1() Group { return secpGroup{} }

func (secpGroup) ID() ID           { return Secp256k1 }
func (secpGroup) Order() *big.Int  { return new(big.Int).Set(groupOrder) }
func (secpGroup) Identity() Point  { return &secpPoint{infinity: true} }

func (secpGroup) Generator() Point {
	var one secp256k1.ModNScalar
	one.SetInt(1)
	var jp secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&one, &jp)
	return fromJacobian(&jp)
}

// RandomScalar draws from [1, q) the way the classic randFieldElement
// recipe does: oversample by 64 extra bits, reduce mod (q-1), then shift
// into range to kill modulo bias.
func (g secpGroup) RandomScalar() (*big.Int, error) {
	buf := make([]byte, (groupOrder.BitLen()+7)/8+8)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, errs.WrapStack(errs.CryptoBackend, err, "group: reading randomness")
	}
	k := new(big.Int).SetBytes(buf)
	qMinus1 := new(big.Int).Sub(groupOrder, bigOne)
	k.Mod(k, qMinus1)
	k.Add(k, bigOne)
	return k, nil
}

var bigOne = big.NewInt(1)

func (g secpGroup) mod(a *big.Int) *big.Int {
	return new(big.Int).Mod(a, groupOrder)
}

func (g secpGroup) ScalarAdd(a, b *big.Int) *big.Int {
	return g.mod(new(big.Int).Add(a, b))
}

func (g secpGroup) ScalarSub(a, b *big.Int) *big.Int {
	return g.mod(new(big.Int).Sub(a, b))
}

func (g secpGroup) ScalarMul(a, b *big.Int) *big.Int {
	return g.mod(new(big.Int).Mul(a, b))
}

func (g secpGroup) ScalarNeg(a *big.Int) *big.Int {
	return g.mod(new(big.Int).Neg(a))
}

func (g secpGroup) ScalarFromBytes(data []byte) *big.Int {
	return g.mod(new(big.Int).SetBytes(data))
}

func (g secpGroup) Mul(a *big.Int, p Point) Point {
	pt, ok := p.(*secpPoint)
	if !ok {
		panic("group: foreign point type")
	}
	if pt.infinity {
		return pt
	}
	var s secp256k1.ModNScalar
	s.SetByteSlice(to32Bytes(g.mod(a)))

	jp := toJacobian(pt)
	var result secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s, &jp, &result)
	return fromJacobian(&result)
}

func (g secpGroup) Add(p, q Point) Point {
	pp, ok1 := p.(*secpPoint)
	qp, ok2 := q.(*secpPoint)
	if !ok1 || !ok2 {
		panic("group: foreign point type")
	}
	if pp.infinity {
		return qp
	}
	if qp.infinity {
		return pp
	}
	jp1 := toJacobian(pp)
	jp2 := toJacobian(qp)
	var result secp256k1.JacobianPoint
	secp256k1.AddNonConst(&jp1, &jp2, &result)
	return fromJacobian(&result)
}

func (g secpGroup) Neg(p Point) Point {
	pt, ok := p.(*secpPoint)
	if !ok {
		panic("group: foreign point type")
	}
	if pt.infinity {
		return pt
	}
	return &secpPoint{x: new(big.Int).Set(pt.x), y: new(big.Int).Sub(fieldPrime, pt.y)}
}

func (secpGroup) Equal(p, q Point) bool {
	pp, ok1 := p.(*secpPoint)
	qp, ok2 := q.(*secpPoint)
	if !ok1 || !ok2 {
		return false
	}
	if pp.infinity || qp.infinity {
		return pp.infinity == qp.infinity
	}
	return pp.x.Cmp(qp.x) == 0 && pp.y.Cmp(qp.y) == 0
}

func (secpGroup) IsOnCurve(p Point) bool {
	pt, ok := p.(*secpPoint)
	if !ok || pt.infinity {
		return false
	}
	if pt.x.Sign() < 0 || pt.x.Cmp(fieldPrime) >= 0 || pt.y.Sign() < 0 || pt.y.Cmp(fieldPrime) >= 0 {
		return false
	}
	lhs := new(big.Int).Exp(pt.y, big.NewInt(2), fieldPrime)
	rhs := new(big.Int).Exp(pt.x, big.NewInt(3), fieldPrime)
	rhs.Add(rhs, curveB)
	rhs.Mod(rhs, fieldPrime)
	return lhs.Cmp(rhs) == 0
}

func (secpGroup) PointToHex(p Point) string {
	pt, ok := p.(*secpPoint)
	if !ok {
		panic("group: foreign point type")
	}
	if pt.infinity {
		return "00"
	}
	buf := make([]byte, 65)
	buf[0] = 0x04
	copy(buf[1:33], to32Bytes(pt.x))
	copy(buf[33:65], to32Bytes(pt.y))
	return strings.ToUpper(hex.EncodeToString(buf))
}

func (g secpGroup) PointFromHex(s string) (Point, error) {
	buf, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errs.Encodingf("group: malformed point hex: %v", err)
	}
	if len(buf) == 1 && buf[0] == 0x00 {
		return &secpPoint{infinity: true}, nil
	}
	if len(buf) != 65 || buf[0] != 0x04 {
		return nil, errs.Encodingf("group: expected 65-byte uncompressed point, got %d bytes", len(buf))
	}
	pt := &secpPoint{
		x: new(big.Int).SetBytes(buf[1:33]),
		y: new(big.Int).SetBytes(buf[33:65]),
	}
	if !g.IsOnCurve(pt) {
		return nil, errs.Encodingf("group: point is not on curve")
	}
	return pt, nil
}

func (secpGroup) ScalarToHex(a *big.Int) string {
	return strings.ToUpper(hex.EncodeToString(to32Bytes(a)))
}

func (g secpGroup) ScalarFromHex(s string) (*big.Int, error) {
	buf, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errs.Encodingf("group: malformed scalar hex: %v", err)
	}
	v := new(big.Int).SetBytes(buf)
	if v.Cmp(groupOrder) >= 0 {
		return nil, errs.Encodingf("group: scalar %s is not reduced mod q", s)
	}
	return v, nil
}

func to32Bytes(a *big.Int) []byte {
	b := a.Bytes()
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func toJacobian(p *secpPoint) secp256k1.JacobianPoint {
	var jp secp256k1.JacobianPoint
	jp.X.SetByteSlice(to32Bytes(p.x))
	jp.Y.SetByteSlice(to32Bytes(p.y))
	jp.Z.SetInt(1)
	return jp
}

func fromJacobian(jp *secp256k1.JacobianPoint) *secpPoint {
	jp.ToAffine()
	if jp.X.IsZero() && jp.Y.IsZero() {
		return &secpPoint{infinity: true}
	}
	xBytes := jp.X.Bytes()
	yBytes := jp.Y.Bytes()
	return &secpPoint{
		x: new(big.Int).SetBytes(xBytes[:]),
		y: new(big.Int).SetBytes(yBytes[:]),
	}
}
