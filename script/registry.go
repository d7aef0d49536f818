package script

import "github.com/phanxgames/tilewalk"

// Registry maps script handles to nodes. Handles start at 1 and are never
// reused.
type Registry struct {
	nodes []*tilewalk.Node
}

// Add registers n and returns its handle.
func (r *Registry) Add(n *tilewalk.Node) int {
	r.nodes = append(r.nodes, n)
	return len(r.nodes)
}

// Next returns the handle the next Add will assign.
func (r *Registry) Next() int { return len(r.nodes) + 1 }

// Lookup returns the node for handle h.
func (r *Registry) Lookup(h int) (*tilewalk.Node, bool) {
	if h < 1 || h > len(r.nodes) {
		return nil, false
	}
	return r.nodes[h-1], true
}

// Len returns the number of handles issued.
func (r *Registry) Len() int { return len(r.nodes) }
