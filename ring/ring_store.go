package ring

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/clring/clring/common/errs"
	"github.com/clring/clring/fs"
	"github.com/clring/clring/group"
)

type memberTOML struct {
	ID string `toml:"id"`
	X  string `toml:"X"`
	Y  string `toml:"Y"`
}

type ringTOML struct {
	Members []memberTOML `toml:"member"`
}

// SaveRing persists the anonymity set to path as a list of (id, X, Y)
// entries, so a signer and a verifier can share the same ring file
// out-of-band.
func SaveRing(path string, g group.Group, r Ring) error {
	t := ringTOML{Members: make([]memberTOML, len(r))}
	for i, m := range r {
		t.Members[i] = memberTOML{ID: m.ID, X: g.PointToHex(m.X), Y: g.PointToHex(m.Y)}
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return errs.Configf("ring: encoding ring file: %v", err)
	}
	return fs.AtomicWriteFile(path, buf.Bytes())
}

// LoadRing reads a ring file produced by SaveRing and re-validates it
// through NewRing, so a tampered or malformed file is rejected up front
// rather than at signing/verification time.
func LoadRing(path string, g group.Group) (Ring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Configf("ring: reading ring file %q: %v", path, err)
	}
	var t ringTOML
	if _, err := toml.Decode(string(data), &t); err != nil {
		return nil, errs.Configf("ring: decoding ring file %q: %v", path, err)
	}

	members := make([]Member, len(t.Members))
	for i, m := range t.Members {
		X, err := g.PointFromHex(m.X)
		if err != nil {
			return nil, err
		}
		Y, err := g.PointFromHex(m.Y)
		if err != nil {
			return nil, err
		}
		members[i] = Member{ID: m.ID, X: X, Y: Y}
	}
	r, err := NewRing(members)
	if err != nil {
		return nil, err
	}
	if err := r.ValidateMembers(g); err != nil {
		return nil, err
	}
	return r, nil
}
