package ring

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/clring/clring/common/errs"
	"github.com/clring/clring/common/log"
	"github.com/clring/clring/fs"
	"github.com/clring/clring/group"
	"github.com/clring/clring/hashfamily"
	"github.com/clring/clring/kgc"
)

// memberKeyTOML is the on-disk form of a signer's key file: id plus the
// hex encoding of every secret and public scalar/point it holds.
type memberKeyTOML struct {
	ID string `toml:"id"`
	X  string `toml:"x"`
	Z  string `toml:"z"`
	PX string `toml:"X"`
	PY string `toml:"Y"`
}

// SaveKey persists s's identity and full key material to path, atomically
// and with owner-only permissions. s must be FullKeyInstalled.
func (s *Signer) SaveKey(path string) error {
	if s.state != FullKeyInstalled {
		return errs.Statef("ring: signer %q must have a full key installed to save it, is %s", s.id, s.state)
	}
	t := memberKeyTOML{
		ID: s.id,
		X:  s.group.ScalarToHex(s.xScalar),
		Z:  s.group.ScalarToHex(s.z),
		PX: s.group.PointToHex(s.X),
		PY: s.group.PointToHex(s.Y),
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return errs.Configf("ring: encoding key file: %v", err)
	}
	return fs.AtomicWriteFile(path, buf.Bytes())
}

// LoadKey reconstructs a FullKeyInstalled Signer from a file SaveKey wrote,
// against the given system parameters. It re-verifies the key-consistency
// equation z*P = Y + h*P_pub before returning, so a tampered or stale file
// is rejected rather than silently trusted.
func LoadKey(path string, g group.Group, hashes *hashfamily.Family, params kgc.PublicParams, logger log.Logger) (*Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Configf("ring: reading key file %q: %v", path, err)
	}
	var t memberKeyTOML
	if _, err := toml.Decode(string(data), &t); err != nil {
		return nil, errs.Configf("ring: decoding key file %q: %v", path, err)
	}

	x, err := g.ScalarFromHex(t.X)
	if err != nil {
		return nil, err
	}
	z, err := g.ScalarFromHex(t.Z)
	if err != nil {
		return nil, err
	}
	X, err := g.PointFromHex(t.PX)
	if err != nil {
		return nil, err
	}
	Y, err := g.PointFromHex(t.PY)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = log.DefaultLogger()
	}
	s := &Signer{
		log: logger, group: g, hashes: hashes, params: params,
		id: t.ID, state: PartialKeyGenerated,
		X: X, xScalar: x,
	}
	if err := s.InstallFullKey(Y, z); err != nil {
		return nil, err
	}
	return s, nil
}
