package kgc

import (
	"bytes"
	"math/big"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/clring/clring/common/errs"
	"github.com/clring/clring/fs"
	"github.com/clring/clring/group"
)

type issueTOML struct {
	ID string `toml:"id"`
	Y  string `toml:"Y"`
	Z  string `toml:"z"`
}

// SaveIssued persists one IssuePartialKey response to path, so it can be
// carried out-of-band back to the requesting signer.
func SaveIssued(path string, g group.Group, id string, y group.Point, z *big.Int) error {
	t := issueTOML{ID: id, Y: g.PointToHex(y), Z: g.ScalarToHex(z)}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return errs.Configf("kgc: encoding issued key: %v", err)
	}
	return fs.AtomicWriteFile(path, buf.Bytes())
}

// LoadIssued reads an issuance response file produced by SaveIssued.
func LoadIssued(path string, g group.Group) (id string, y group.Point, z *big.Int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, nil, errs.Configf("kgc: reading issued key %q: %v", path, err)
	}
	var t issueTOML
	if _, err := toml.Decode(string(data), &t); err != nil {
		return "", nil, nil, errs.Configf("kgc: decoding issued key %q: %v", path, err)
	}
	y, err = g.PointFromHex(t.Y)
	if err != nil {
		return "", nil, nil, err
	}
	z, err = g.ScalarFromHex(t.Z)
	if err != nil {
		return "", nil, nil, err
	}
	return t.ID, y, z, nil
}
