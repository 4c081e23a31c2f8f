package tutil

import (
	"os"
	"strings"
	"testing"
)

// IsIntegrationTest is true when ROSTERBOT_TEST=integration, the tests that
// talk to a live Discord guild only run then.
func IsIntegrationTest() bool {
	testType := os.Getenv("ROSTERBOT_TEST")
	return strings.ToLower(testType) == "integration"
}

// RequireEnv skips t unless this is an integration run and every key in
// keys is set. It returns the values in the same order.
func RequireEnv(t *testing.T, keys ...string) []string {
	t.Helper()

	if !IsIntegrationTest() {
		t.Skip("set ROSTERBOT_TEST=integration to run")
	}

	values := make([]string, 0, len(keys))
	for _, key := range keys {
		val := os.Getenv(key)
		if val == "" {
			t.Skipf("%s not set", key)
		}
		values = append(values, val)
	}

	return values
}
