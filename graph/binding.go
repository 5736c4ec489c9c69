// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"sync"

	"github.com/ik5/auviz/player"
)

// bindings maps each playback element to its one source node, by identity.
// Entries are created inside EnsureGraph and never removed: re-ensuring a
// graph for an element it has seen before reuses the node, so an element can
// never end up feeding the chain twice. The table outlives every Manager.
var (
	bindingsMu sync.Mutex
	bindings   = make(map[*player.Element]*SourceNode)
)

// bindingFor returns the source node bound to elem, creating and registering
// it on first sight. Lookup and creation happen under one lock so concurrent
// EnsureGraph calls for the same element agree on a single node.
func bindingFor(elem *player.Element, sampleRate, channels int) *SourceNode {
	bindingsMu.Lock()
	defer bindingsMu.Unlock()

	if n, ok := bindings[elem]; ok {
		return n
	}
	n := newSourceNode(elem, sampleRate, channels)
	bindings[elem] = n
	return n
}

// boundElements reports the number of elements currently bound.
func boundElements() int {
	bindingsMu.Lock()
	defer bindingsMu.Unlock()
	return len(bindings)
}
