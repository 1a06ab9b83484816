package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildRingFile(t *testing.T, dir, publicPath string, keyPaths []string) string {
	t.Helper()
	ringPath := filepath.Join(dir, "ring.toml")
	args := []string{"ringd", "ring-build", "--public", publicPath, "--out", ringPath}
	for _, p := range keyPaths {
		args = append(args, "--key", p)
	}
	require.NoError(t, CLI().Run(args))
	return ringPath
}

func onlySignatureIn(t *testing.T, dir string) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	return filepath.Join(dir, entries[0].Name())
}

func onboardSigner(t *testing.T, dir, publicPath, privatePath, id string) string {
	t.Helper()
	pendingPath := filepath.Join(dir, id+".pending.toml")
	issuedPath := filepath.Join(dir, id+".issued.toml")
	keyPath := filepath.Join(dir, id+".key.toml")

	app := CLI()
	require.NoError(t, app.Run([]string{"ringd", "signer-request",
		"--public", publicPath, "--id", id, "--out", pendingPath}))

	app = CLI()
	require.NoError(t, app.Run([]string{"ringd", "kgc-issue",
		"--public", publicPath, "--private", privatePath, "--request", pendingPath, "--out", issuedPath}))

	app = CLI()
	require.NoError(t, app.Run([]string{"ringd", "signer-install",
		"--public", publicPath, "--request", pendingPath, "--issued", issuedPath, "--out", keyPath}))

	return keyPath
}

func TestEndToEndSignAndVerify(t *testing.T) {
	dir := t.TempDir()
	publicPath := filepath.Join(dir, "public.toml")
	privatePath := filepath.Join(dir, "private.toml")

	app := CLI()
	require.NoError(t, app.Run([]string{"ringd", "kgc-setup",
		"--out-public", publicPath, "--out-private", privatePath}))

	aliceKey := onboardSigner(t, dir, publicPath, privatePath, "alice")
	bobKey := onboardSigner(t, dir, publicPath, privatePath, "bob")
	carolKey := onboardSigner(t, dir, publicPath, privatePath, "carol")

	ringPath := buildRingFile(t, dir, publicPath, []string{aliceKey, bobKey, carolKey})

	sigDir := t.TempDir()
	app = CLI()
	require.NoError(t, app.Run([]string{"ringd", "sign",
		"--public", publicPath, "--ring", ringPath, "--message", "hello", "--event", "e1",
		"--key", aliceKey, "--out-dir", sigDir}))

	sigPath := onlySignatureIn(t, sigDir)

	app = CLI()
	require.NoError(t, app.Run([]string{"ringd", "verify",
		"--public", publicPath, "--ring", ringPath, "--message", "hello", "--event", "e1", "--sig", sigPath}))
}

func TestVerifyCommandFailsOnWrongMessage(t *testing.T) {
	dir := t.TempDir()
	publicPath := filepath.Join(dir, "public.toml")
	privatePath := filepath.Join(dir, "private.toml")

	app := CLI()
	require.NoError(t, app.Run([]string{"ringd", "kgc-setup",
		"--out-public", publicPath, "--out-private", privatePath}))

	aliceKey := onboardSigner(t, dir, publicPath, privatePath, "alice")
	bobKey := onboardSigner(t, dir, publicPath, privatePath, "bob")

	ringPath := buildRingFile(t, dir, publicPath, []string{aliceKey, bobKey})

	sigDir := t.TempDir()
	app = CLI()
	require.NoError(t, app.Run([]string{"ringd", "sign",
		"--public", publicPath, "--ring", ringPath, "--message", "hello", "--event", "e1",
		"--key", aliceKey, "--out-dir", sigDir}))
	sigPath := onlySignatureIn(t, sigDir)

	app = CLI()
	require.Error(t, app.Run([]string{"ringd", "verify",
		"--public", publicPath, "--ring", ringPath, "--message", "bye", "--event", "e1", "--sig", sigPath}))
}
