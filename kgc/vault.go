package kgc

import (
	"sync"

	"github.com/clring/clring/common/log"
)

// Vault holds a *KGC loaded from disk and lets it be swapped for a freshly
// reloaded one without disturbing issuance requests already in flight
// against the old value. A caller that took a reference via Current keeps
// working against that snapshot even after Reload installs a new one.
type Vault struct {
	mu          sync.RWMutex
	log         log.Logger
	publicPath  string
	privatePath string
	current     *KGC
}

// NewVault loads the KGC persisted at publicPath/privatePath and wraps it in
// a Vault ready for hot reload.
func NewVault(publicPath, privatePath string, logger log.Logger) (*Vault, error) {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	k, err := Load(publicPath, privatePath, logger)
	if err != nil {
		return nil, err
	}
	return &Vault{log: logger, publicPath: publicPath, privatePath: privatePath, current: k}, nil
}

// Current returns the KGC snapshot the vault currently holds.
func (v *Vault) Current() *KGC {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Reload re-reads the master state from disk and swaps it in, replacing the
// snapshot future callers of Current will see. It fails closed: if the new
// state cannot be loaded or no longer matches P_pub on disk, the vault keeps
// serving the previous snapshot.
func (v *Vault) Reload() error {
	k, err := Load(v.publicPath, v.privatePath, v.log)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.current = k
	v.mu.Unlock()
	v.log.Infow("kgc vault reloaded master state")
	return nil
}
