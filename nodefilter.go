package stage3d

import (
	"log"
	"regexp"
	"sort"
	"strings"
)

// NodeFilter represents a chain of node filters, executed in sequence to collect the desired nodes out of a hierarchy.
// Filters are only run when a result is asked for (INodes, Models, Count and so on), so a NodeFilter can be built up
// and reused as the tree changes.
type NodeFilter struct {
	Filters        []func(INode) bool // The filters that a node must pass to be included.
	Start          INode              // The start (root) of the search; it's never included in the results itself.
	MaxDepth       int                // How deep below Start to search; a negative value searches the whole tree.
	stopOnFiltered bool               // If a node fails the filters, its children aren't visited.
	sortTo         *Vector
}

func newNodeFilter(start INode) NodeFilter {
	return NodeFilter{Start: start, MaxDepth: -1}
}

func (nf NodeFilter) with(filter func(INode) bool) NodeFilter {
	// Copy so that chained filters built off a shared base don't write into each other's backing array
	nf.Filters = append(append(make([]func(INode) bool, 0, len(nf.Filters)+1), nf.Filters...), filter)
	return nf
}

func (nf NodeFilter) passes(node INode) bool {
	for _, filter := range nf.Filters {
		if !filter(node) {
			return false
		}
	}
	return true
}

// execute walks the tree depth-first, calling fn for each node that passes; fn returns false to stop early.
func (nf NodeFilter) execute(fn func(INode) bool) {

	var walk func(node INode, depth int) bool

	walk = func(node INode, depth int) bool {
		for _, child := range node.Children() {
			passed := nf.passes(child)
			if passed && !fn(child) {
				return false
			}
			if nf.stopOnFiltered && !passed {
				continue
			}
			if nf.MaxDepth < 0 || depth < nf.MaxDepth {
				if !walk(child, depth+1) {
					return false
				}
			}
		}
		return true
	}

	if nf.Start != nil {
		walk(nf.Start, 0)
	}

}

// ByFunc filters the selection by the function given, which returns whether the node passes.
func (nf NodeFilter) ByFunc(filterFunc func(node INode) bool) NodeFilter {
	return nf.with(filterFunc)
}

// ByName filters the selection to nodes whose names are wholly equal to the name given.
func (nf NodeFilter) ByName(name string) NodeFilter {
	return nf.with(func(node INode) bool { return node.Name() == name })
}

// ByRegex filters the selection to nodes whose names match the regular expression given. An invalid expression is
// logged and matches nothing.
func (nf NodeFilter) ByRegex(regexString string) NodeFilter {
	re, err := regexp.Compile(regexString)
	if err != nil {
		log.Println("warning: NodeFilter.ByRegex:", err)
		return nf.with(func(INode) bool { return false })
	}
	return nf.with(func(node INode) bool { return re.MatchString(node.Name()) })
}

// ByPrefix filters the selection to nodes whose names start with the prefix given ("mixamorig:", say).
func (nf NodeFilter) ByPrefix(prefix string) NodeFilter {
	return nf.with(func(node INode) bool { return strings.HasPrefix(node.Name(), prefix) })
}

// ByType filters the selection by NodeType; NodeTypeLight matches every kind of light.
func (nf NodeFilter) ByType(nodeType NodeType) NodeFilter {
	return nf.with(func(node INode) bool { return node.Type().Is(nodeType) })
}

// Visible filters out nodes that are hidden.
func (nf NodeFilter) Visible() NodeFilter {
	return nf.with(func(node INode) bool { return node.Visible() })
}

// Bones filters the selection to armature bones.
func (nf NodeFilter) Bones() NodeFilter {
	return nf.with(func(node INode) bool { return node.IsBone() })
}

// Not filters out the nodes given.
func (nf NodeFilter) Not(others ...INode) NodeFilter {
	return nf.with(func(node INode) bool {
		for _, other := range others {
			if node == other {
				return false
			}
		}
		return true
	})
}

// StopOnFiltered makes a node that fails the filters hide its children from the search as well.
func (nf NodeFilter) StopOnFiltered() NodeFilter {
	nf.stopOnFiltered = true
	return nf
}

// SortByDistance sorts the results by distance from the world position given, nearest first.
func (nf NodeFilter) SortByDistance(to Vector) NodeFilter {
	nf.sortTo = &to
	return nf
}

// ForEach calls the callback on each filtered node until it returns false. Sorting is ignored.
func (nf NodeFilter) ForEach(callback func(node INode) bool) {
	if nf.sortTo != nil {
		log.Println("warning: NodeFilter.ForEach doesn't sort; use INodes instead")
	}
	nf.execute(callback)
}

// INodes returns the filtered nodes.
func (nf NodeFilter) INodes() []INode {

	out := []INode{}
	nf.execute(func(node INode) bool {
		out = append(out, node)
		return true
	})

	if nf.sortTo != nil {
		to := *nf.sortTo
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].WorldPosition().Distance(to) < out[j].WorldPosition().Distance(to)
		})
	}

	return out

}

// First returns the first filtered node, or nil if there are none.
func (nf NodeFilter) First() INode {
	if nf.sortTo != nil {
		if nodes := nf.INodes(); len(nodes) > 0 {
			return nodes[0]
		}
		return nil
	}
	var first INode
	nf.execute(func(node INode) bool {
		first = node
		return false
	})
	return first
}

// Count returns the number of nodes that pass the filters.
func (nf NodeFilter) Count() int {
	count := 0
	nf.execute(func(INode) bool {
		count++
		return true
	})
	return count
}

// Empty returns true if no nodes pass the filters.
func (nf NodeFilter) Empty() bool {
	return nf.First() == nil
}

// Models returns the filtered nodes that are Models.
func (nf NodeFilter) Models() []*Model {
	out := []*Model{}
	for _, node := range nf.INodes() {
		if model, ok := node.(*Model); ok {
			out = append(out, model)
		}
	}
	return out
}

// Lights returns the filtered nodes that are lights.
func (nf NodeFilter) Lights() []ILight {
	out := []ILight{}
	for _, node := range nf.INodes() {
		if light, ok := node.(ILight); ok {
			out = append(out, light)
		}
	}
	return out
}
