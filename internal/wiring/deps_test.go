package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
)

// TestGraftDependencies validates the injection graph: every node that
// declares a dependency resolves it, and every resolved dependency is
// declared on the node.
func TestGraftDependencies(t *testing.T) {
	graft.AssertDepsValid(t, "../../internal")
}
