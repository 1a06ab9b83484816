package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/clring/clring/common/log"
	"github.com/clring/clring/group"
	"github.com/clring/clring/hashfamily"
	"github.com/clring/clring/kgc"
	"github.com/clring/clring/ring"
)

var output = os.Stdout

var (
	version   = "master"
	gitCommit = "none"
	buildDate = "unknown"
)

var curveFlag = &cli.StringFlag{
	Name:  "curve",
	Value: string(group.Secp256k1),
	Usage: "curve identifier for the group context",
}

var hashAlgFlag = &cli.StringFlag{
	Name:  "hash-alg",
	Value: "sha256",
	Usage: "digest backing the keyed hash family",
}

var publicFlag = &cli.StringFlag{
	Name:     "public",
	Usage:    "path to the KGC's public system parameters file",
	Required: true,
}

var privateFlag = &cli.StringFlag{
	Name:  "private",
	Usage: "path to the KGC's private master-secret file",
}

var idFlag = &cli.StringFlag{
	Name:     "id",
	Usage:    "ring member identity string",
	Required: true,
}

var outFlag = &cli.StringFlag{
	Name:     "out",
	Usage:    "output file path",
	Required: true,
}

var ringFlag = &cli.StringFlag{
	Name:     "ring",
	Usage:    "path to the ring file shared by every member and the verifier",
	Required: true,
}

var messageFlag = &cli.StringFlag{
	Name:     "message",
	Usage:    "message to sign or verify",
	Required: true,
}

var eventFlag = &cli.StringFlag{
	Name:     "event",
	Usage:    "event tag binding the linking key",
	Required: true,
}

func verboseLogger(c *cli.Context) log.Logger {
	level := log.InfoLevel
	if c.Bool("verbose") {
		level = log.DebugLevel
	}
	return log.New(os.Stderr, level, false)
}

// CLI assembles the ringd command tree.
func CLI() *cli.App {
	app := cli.NewApp()
	app.Name = "ringd"
	app.Usage = "certificateless linkable ring signature engine"
	app.Version = version
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(output, "ringd %v (date %v, commit %v)\n", version, buildDate, gitCommit)
	}
	app.Flags = []cli.Flag{&cli.BoolFlag{Name: "verbose", Usage: "debug-level logging"}}
	app.Commands = []*cli.Command{
		{
			Name:  "kgc-setup",
			Usage: "generate a fresh Key Generation Centre and persist its public/private state",
			Flags: []cli.Flag{curveFlag, hashAlgFlag,
				&cli.StringFlag{Name: "out-public", Required: true},
				&cli.StringFlag{Name: "out-private", Required: true}},
			Action: kgcSetupCmd,
		},
		{
			Name:   "kgc-issue",
			Usage:  "issue a partial key for a pending signer request",
			Flags:  []cli.Flag{publicFlag, privateFlag, &cli.StringFlag{Name: "request", Required: true}, outFlag},
			Action: kgcIssueCmd,
		},
		{
			Name:   "signer-request",
			Usage:  "generate a signer's self-chosen secret and public point, ready for KGC issuance",
			Flags:  []cli.Flag{publicFlag, idFlag, outFlag},
			Action: signerRequestCmd,
		},
		{
			Name:   "signer-install",
			Usage:  "verify a KGC issuance response and install the signer's full key",
			Flags:  []cli.Flag{publicFlag, &cli.StringFlag{Name: "request", Required: true}, &cli.StringFlag{Name: "issued", Required: true}, outFlag},
			Action: signerInstallCmd,
		},
		{
			Name:   "ring-build",
			Usage:  "assemble a ring file from a set of installed signer key files",
			Flags:  []cli.Flag{publicFlag, &cli.StringSliceFlag{Name: "key", Required: true}, outFlag},
			Action: ringBuildCmd,
		},
		{
			Name:   "sign",
			Usage:  "produce a ring signature over a message and event tag",
			Flags:  []cli.Flag{publicFlag, ringFlag, messageFlag, eventFlag, &cli.StringFlag{Name: "key", Required: true}, &cli.StringFlag{Name: "out-dir", Required: true}},
			Action: signCmd,
		},
		{
			Name:   "verify",
			Usage:  "verify a ring signature",
			Flags:  []cli.Flag{publicFlag, ringFlag, messageFlag, eventFlag, &cli.StringFlag{Name: "sig", Required: true}},
			Action: verifyCmd,
		},
		{
			Name:   "link",
			Usage:  "report which signatures in a set share a linking tag",
			Flags:  []cli.Flag{publicFlag, &cli.StringSliceFlag{Name: "sig", Required: true}},
			Action: linkCmd,
		},
	}
	return app
}

func kgcSetupCmd(c *cli.Context) error {
	logger := verboseLogger(c)
	k, err := kgc.Setup(group.ID(c.String(curveFlag.Name)), c.String(hashAlgFlag.Name), logger)
	if err != nil {
		return err
	}
	if err := k.SavePublic(c.String("out-public")); err != nil {
		return err
	}
	if err := k.SavePrivate(c.String("out-private")); err != nil {
		return err
	}
	fmt.Fprintf(output, "kgc: wrote %s and %s\n", c.String("out-public"), c.String("out-private"))
	return nil
}

func kgcIssueCmd(c *cli.Context) error {
	logger := verboseLogger(c)
	k, err := kgc.Load(c.String(publicFlag.Name), c.String(privateFlag.Name), logger)
	if err != nil {
		return err
	}
	id, X, err := ring.LoadPendingRequestPoint(c.String("request"), k.Group())
	if err != nil {
		return err
	}
	Y, z, err := k.IssuePartialKey(id, X)
	if err != nil {
		return err
	}
	if err := kgc.SaveIssued(c.String(outFlag.Name), k.Group(), id, Y, z); err != nil {
		return err
	}
	fmt.Fprintf(output, "kgc: issued partial key for %q -> %s\n", id, c.String(outFlag.Name))
	return nil
}

func signerRequestCmd(c *cli.Context) error {
	logger := verboseLogger(c)
	g, params, err := kgc.LoadPublicParams(c.String(publicFlag.Name))
	if err != nil {
		return err
	}
	hashes, err := hashFamilyFromParams(g, params)
	if err != nil {
		return err
	}
	s, err := ring.NewSigner(c.String(idFlag.Name), g, hashes, params, logger)
	if err != nil {
		return err
	}
	if _, err := s.GeneratePartialKey(); err != nil {
		return err
	}
	if err := s.SavePendingRequest(c.String(outFlag.Name)); err != nil {
		return err
	}
	fmt.Fprintf(output, "signer: wrote pending request to %s\n", c.String(outFlag.Name))
	return nil
}

func signerInstallCmd(c *cli.Context) error {
	logger := verboseLogger(c)
	g, params, err := kgc.LoadPublicParams(c.String(publicFlag.Name))
	if err != nil {
		return err
	}
	hashes, err := hashFamilyFromParams(g, params)
	if err != nil {
		return err
	}
	s, err := ring.LoadPendingRequest(c.String("request"), g, hashes, params, logger)
	if err != nil {
		return err
	}
	_, Y, z, err := kgc.LoadIssued(c.String("issued"), g)
	if err != nil {
		return err
	}
	if err := s.InstallFullKey(Y, z); err != nil {
		return err
	}
	if err := s.SaveKey(c.String(outFlag.Name)); err != nil {
		return err
	}
	fmt.Fprintf(output, "signer: installed full key, wrote %s\n", c.String(outFlag.Name))
	return nil
}

func ringBuildCmd(c *cli.Context) error {
	logger := verboseLogger(c)
	g, params, err := kgc.LoadPublicParams(c.String(publicFlag.Name))
	if err != nil {
		return err
	}
	hashes, err := hashFamilyFromParams(g, params)
	if err != nil {
		return err
	}
	paths := c.StringSlice("key")
	members := make([]ring.Member, len(paths))
	for i, p := range paths {
		s, err := ring.LoadKey(p, g, hashes, params, logger)
		if err != nil {
			return err
		}
		X, Y, err := s.PublicKey()
		if err != nil {
			return err
		}
		members[i] = ring.Member{ID: s.ID(), X: X, Y: Y}
	}
	l, err := ring.NewRing(members)
	if err != nil {
		return err
	}
	if err := ring.SaveRing(c.String(outFlag.Name), g, l); err != nil {
		return err
	}
	fmt.Fprintf(output, "ring: wrote %s\n", c.String(outFlag.Name))
	return nil
}

func signCmd(c *cli.Context) error {
	logger := verboseLogger(c)
	g, params, err := kgc.LoadPublicParams(c.String(publicFlag.Name))
	if err != nil {
		return err
	}
	hashes, err := hashFamilyFromParams(g, params)
	if err != nil {
		return err
	}
	s, err := ring.LoadKey(c.String("key"), g, hashes, params, logger)
	if err != nil {
		return err
	}
	l, err := ring.LoadRing(c.String(ringFlag.Name), g)
	if err != nil {
		return err
	}
	coSigners := make([]ring.Member, 0, len(l))
	for _, m := range l {
		if m.ID != s.ID() {
			coSigners = append(coSigners, m)
		}
	}
	sig, _, err := s.Sign([]byte(c.String(messageFlag.Name)), []byte(c.String(eventFlag.Name)), coSigners)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("sig-%s.toml", uuid.New().String())
	outPath := filepath.Join(c.String("out-dir"), name)
	if err := ring.SaveSignature(outPath, g, sig); err != nil {
		return err
	}
	fmt.Fprintf(output, "ring: wrote %s\n", outPath)
	return nil
}

func verifyCmd(c *cli.Context) error {
	logger := verboseLogger(c)
	g, params, err := kgc.LoadPublicParams(c.String(publicFlag.Name))
	if err != nil {
		return err
	}
	hashes, err := hashFamilyFromParams(g, params)
	if err != nil {
		return err
	}
	l, err := ring.LoadRing(c.String(ringFlag.Name), g)
	if err != nil {
		return err
	}
	sig, err := ring.LoadSignature(c.String("sig"), g)
	if err != nil {
		return err
	}
	ok, err := ring.Verify(g, hashes, params.PPub, l, sig, []byte(c.String(messageFlag.Name)), []byte(c.String(eventFlag.Name)), logger)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(output, "valid")
		return nil
	}
	fmt.Fprintln(output, "invalid")
	return cli.Exit("signature did not verify", 1)
}

func linkCmd(c *cli.Context) error {
	g, _, err := kgc.LoadPublicParams(c.String(publicFlag.Name))
	if err != nil {
		return err
	}
	paths := c.StringSlice("sig")
	sigs := make([]*ring.Signature, len(paths))
	for i, p := range paths {
		sig, err := ring.LoadSignature(p, g)
		if err != nil {
			return err
		}
		sigs[i] = sig
	}
	groups := ring.DetectLinks(g, sigs)
	for _, grp := range groups {
		fmt.Fprintf(output, "linked: %v\n", grp)
	}
	if len(groups) == 0 {
		fmt.Fprintln(output, "no links detected")
	}
	return nil
}

func hashFamilyFromParams(g group.Group, params kgc.PublicParams) (*hashfamily.Family, error) {
	return hashfamily.New(g, params.HashAlg, params.HashKeys)
}
