package testutil

import (
	"os"
	"testing"
)

// SkipIfNoTiming skips the test if TIMESYNC_TEST_SKIP_TIMING is set.
// Use this for tests that wait on real animation tickers, which can be
// unreliable on heavily loaded CI machines.
func SkipIfNoTiming(t *testing.T) {
	t.Helper()
	if os.Getenv("TIMESYNC_TEST_SKIP_TIMING") != "" {
		t.Skip("skipping timing test: TIMESYNC_TEST_SKIP_TIMING is set")
	}
}
