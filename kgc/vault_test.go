package kgc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clring/clring/common/testlogger"
	"github.com/clring/clring/group"
)

func TestVaultServesCurrentSnapshot(t *testing.T) {
	dir := t.TempDir()
	publicPath := dir + "/public.toml"
	privatePath := dir + "/private.toml"

	k, err := Setup(group.Secp256k1, "sha256", testlogger.New(t))
	require.NoError(t, err)
	require.NoError(t, k.SavePublic(publicPath))
	require.NoError(t, k.SavePrivate(privatePath))

	v, err := NewVault(publicPath, privatePath, testlogger.New(t))
	require.NoError(t, err)
	require.True(t, k.Group().Equal(v.Current().PublicParams().PPub, k.PublicParams().PPub))
}

func TestVaultReloadSwapsSnapshot(t *testing.T) {
	dir := t.TempDir()
	publicPath := dir + "/public.toml"
	privatePath := dir + "/private.toml"

	k1, err := Setup(group.Secp256k1, "sha256", testlogger.New(t))
	require.NoError(t, err)
	require.NoError(t, k1.SavePublic(publicPath))
	require.NoError(t, k1.SavePrivate(privatePath))

	v, err := NewVault(publicPath, privatePath, testlogger.New(t))
	require.NoError(t, err)
	before := v.Current()

	k2, err := Setup(group.Secp256k1, "sha256", testlogger.New(t))
	require.NoError(t, err)
	require.NoError(t, k2.SavePublic(publicPath))
	require.NoError(t, k2.SavePrivate(privatePath))

	require.NoError(t, v.Reload())
	after := v.Current()

	require.False(t, before.Group().Equal(before.PublicParams().PPub, after.PublicParams().PPub))
}

func TestVaultReloadFailsClosedOnBadState(t *testing.T) {
	dir := t.TempDir()
	publicPath := dir + "/public.toml"
	privatePath := dir + "/private.toml"

	k, err := Setup(group.Secp256k1, "sha256", testlogger.New(t))
	require.NoError(t, err)
	require.NoError(t, k.SavePublic(publicPath))
	require.NoError(t, k.SavePrivate(privatePath))

	v, err := NewVault(publicPath, privatePath, testlogger.New(t))
	require.NoError(t, err)
	before := v.Current()

	other, err := Setup(group.Secp256k1, "sha256", testlogger.New(t))
	require.NoError(t, err)
	require.NoError(t, other.SavePrivate(privatePath)) // now mismatched against publicPath's P_pub

	require.Error(t, v.Reload())
	require.Same(t, before, v.Current())
}
