package kgc

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/clring/clring/common/errs"
	"github.com/clring/clring/common/log"
	"github.com/clring/clring/fs"
	"github.com/clring/clring/group"
	"github.com/clring/clring/hashfamily"
)

// publicTOML is the on-disk form of the public system file: curve id,
// digest name, master public point, and the five hash keys, all as
// strings.
type publicTOML struct {
	CurveID  string
	HashAlg  string
	PPub     string
	HashKeys [5]string
}

// privateTOML is the on-disk form of the private master file. It never
// leaves the KGC.
type privateTOML struct {
	PPub string
	S    string
}

// SavePublic persists the public system parameters to path, atomically and
// with owner-only permissions.
func (k *KGC) SavePublic(path string) error {
	k.mu.RLock()
	p := k.params
	k.mu.RUnlock()

	t := publicTOML{
		CurveID: string(p.CurveID),
		HashAlg: p.HashAlg,
		PPub:    k.group.PointToHex(p.PPub),
	}
	for i, key := range p.HashKeys {
		t.HashKeys[i] = string(key)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return errs.Configf("kgc: encoding public params: %v", err)
	}
	return fs.AtomicWriteFile(path, buf.Bytes())
}

// SavePrivate persists the master secret to path, atomically and with
// owner-only permissions. The private file never leaves the KGC.
func (k *KGC) SavePrivate(path string) error {
	k.mu.RLock()
	s := k.secret
	pPub := k.params.PPub
	k.mu.RUnlock()

	t := privateTOML{
		PPub: k.group.PointToHex(pPub),
		S:    k.group.ScalarToHex(s),
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return errs.Configf("kgc: encoding private state: %v", err)
	}
	return fs.AtomicWriteFile(path, buf.Bytes())
}

// LoadPublicParams reads a public system file produced by SavePublic.
func LoadPublicParams(path string) (group.Group, PublicParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, PublicParams{}, errs.Configf("kgc: reading public params %q: %v", path, err)
	}
	var t publicTOML
	if _, err := toml.Decode(string(data), &t); err != nil {
		return nil, PublicParams{}, errs.Configf("kgc: decoding public params %q: %v", path, err)
	}
	g, err := group.CurveByID(group.ID(t.CurveID))
	if err != nil {
		return nil, PublicParams{}, err
	}
	pPub, err := g.PointFromHex(t.PPub)
	if err != nil {
		return nil, PublicParams{}, err
	}
	var keys [5][]byte
	for i, s := range t.HashKeys {
		keys[i] = []byte(s)
	}
	return g, PublicParams{
		CurveID:  group.ID(t.CurveID),
		HashAlg:  t.HashAlg,
		PPub:     pPub,
		HashKeys: keys,
	}, nil
}

// Load reconstructs a KGC from its persisted public and private files.
func Load(publicPath, privatePath string, logger log.Logger) (*KGC, error) {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	g, params, err := LoadPublicParams(publicPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, errs.Configf("kgc: reading private state %q: %v", privatePath, err)
	}
	var t privateTOML
	if _, err := toml.Decode(string(data), &t); err != nil {
		return nil, errs.Configf("kgc: decoding private state %q: %v", privatePath, err)
	}
	s, err := g.ScalarFromHex(t.S)
	if err != nil {
		return nil, err
	}

	expectPPub := g.Mul(s, g.Generator())
	if !g.Equal(expectPPub, params.PPub) {
		return nil, errs.Configf("kgc: private master secret does not match public P_pub")
	}

	hf, err := hashfamily.New(g, params.HashAlg, params.HashKeys)
	if err != nil {
		return nil, err
	}

	return &KGC{log: logger, group: g, hashes: hf, params: params, secret: s}, nil
}
