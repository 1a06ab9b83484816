// Package testlogger supplies a *testing.T-scoped Logger, so test failures
// and verbose runs carry structured, per-test log output instead of each
// package's tests wiring up zap by hand.
package testlogger

import (
	"os"
	"testing"

	"github.com/clring/clring/common/log"
)

// level picks InfoLevel unless CLRING_TEST_LOGS=DEBUG is set in the
// environment, in which case it logs t.Name() at Debug too.
func level(t testing.TB) int {
	if v, ok := os.LookupEnv("CLRING_TEST_LOGS"); ok && v == "DEBUG" {
		t.Logf("%s: debug logging enabled", t.Name())
		return log.DebugLevel
	}
	return log.InfoLevel
}

// New returns a Logger tagged with the running test's name, writing to
// stdout at Info unless CLRING_TEST_LOGS=DEBUG raises it to Debug.
func New(t testing.TB) log.Logger {
	return log.New(nil, level(t), true).With("testName", t.Name())
}
