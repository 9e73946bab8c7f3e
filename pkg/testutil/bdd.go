// Package testutil holds helpers for idcheck's router and handler tests:
// JSON request builders, response assertions, and Given/When/Then steps
// for scenario-style walks through the HTTP surface.
package testutil

import "testing"

// step runs fn as a subtest named "<keyword> <desc>".
func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(keyword+" "+desc, fn)
}

// Given names the fixture a scenario starts from, such as a wired router.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Given", desc, fn)
}

// When names the request under test.
func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "When", desc, fn)
}

// Then names the expected response.
func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	step(t, "Then", desc, fn)
}
