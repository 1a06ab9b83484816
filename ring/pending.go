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

// pendingTOML is the on-disk form of a signer's in-flight key request: the
// self-chosen secret x and public X = x*P, held between GeneratePartialKey
// and the KGC's response.
type pendingTOML struct {
	ID string `toml:"id"`
	X  string `toml:"x"`
	PX string `toml:"X"`
}

// SavePendingRequest persists a signer's partial key request so the x it
// generated survives the round trip to the KGC and back.
func (s *Signer) SavePendingRequest(path string) error {
	if s.state != PartialKeyGenerated {
		return errs.Statef("ring: signer %q has no pending request to save, is %s", s.id, s.state)
	}
	t := pendingTOML{ID: s.id, X: s.group.ScalarToHex(s.xScalar), PX: s.group.PointToHex(s.X)}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return errs.Configf("ring: encoding pending request: %v", err)
	}
	return fs.AtomicWriteFile(path, buf.Bytes())
}

// LoadPendingRequest reconstructs a PartialKeyGenerated Signer from a file
// SavePendingRequest wrote, ready for InstallFullKey once the KGC responds.
func LoadPendingRequest(path string, g group.Group, hashes *hashfamily.Family, params kgc.PublicParams, logger log.Logger) (*Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Configf("ring: reading pending request %q: %v", path, err)
	}
	var t pendingTOML
	if _, err := toml.Decode(string(data), &t); err != nil {
		return nil, errs.Configf("ring: decoding pending request %q: %v", path, err)
	}

	x, err := g.ScalarFromHex(t.X)
	if err != nil {
		return nil, err
	}
	X, err := g.PointFromHex(t.PX)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Signer{
		log: logger, group: g, hashes: hashes, params: params,
		id: t.ID, state: PartialKeyGenerated,
		X: X, xScalar: x,
	}, nil
}

// LoadPendingRequestPoint reads just the id and public point X out of a
// pending request file, for a KGC that only needs to issue against X and
// has no use for the signer's secret x.
func LoadPendingRequestPoint(path string, g group.Group) (id string, x group.Point, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, errs.Configf("ring: reading pending request %q: %v", path, err)
	}
	var t pendingTOML
	if _, err := toml.Decode(string(data), &t); err != nil {
		return "", nil, errs.Configf("ring: decoding pending request %q: %v", path, err)
	}
	X, err := g.PointFromHex(t.PX)
	if err != nil {
		return "", nil, err
	}
	return t.ID, X, nil
}
