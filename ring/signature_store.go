package ring

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/clring/clring/common/errs"
	"github.com/clring/clring/fs"
	"github.com/clring/clring/group"
)

// signatureTOML is the on-disk form of a signature file: the per-member
// commitments, the two response scalars, and the linking tag, all hex.
type signatureTOML struct {
	A   []string `toml:"A"`
	Phi string   `toml:"phi"`
	Psi string   `toml:"psi"`
	T   string   `toml:"T"`
}

// SaveSignature persists sig to path, atomically and with owner-only
// permissions.
func SaveSignature(path string, g group.Group, sig *Signature) error {
	t := signatureTOML{
		Phi: g.ScalarToHex(sig.Phi),
		Psi: g.ScalarToHex(sig.Psi),
		T:   g.PointToHex(sig.T),
	}
	t.A = make([]string, len(sig.A))
	for i, p := range sig.A {
		t.A[i] = g.PointToHex(p)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return errs.Configf("ring: encoding signature: %v", err)
	}
	return fs.AtomicWriteFile(path, buf.Bytes())
}

// LoadSignature reads a signature file produced by SaveSignature.
func LoadSignature(path string, g group.Group) (*Signature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Configf("ring: reading signature %q: %v", path, err)
	}
	var t signatureTOML
	if _, err := toml.Decode(string(data), &t); err != nil {
		return nil, errs.Configf("ring: decoding signature %q: %v", path, err)
	}

	phi, err := g.ScalarFromHex(t.Phi)
	if err != nil {
		return nil, err
	}
	psi, err := g.ScalarFromHex(t.Psi)
	if err != nil {
		return nil, err
	}
	tag, err := g.PointFromHex(t.T)
	if err != nil {
		return nil, err
	}
	a := make([]group.Point, len(t.A))
	for i, hexStr := range t.A {
		p, err := g.PointFromHex(hexStr)
		if err != nil {
			return nil, err
		}
		a[i] = p
	}
	return &Signature{A: a, Phi: phi, Psi: psi, T: tag}, nil
}
