package dom

// Predicate selects nodes during a walk.
type Predicate func(*W3CNode) bool

// NodeIsText is a predicate to match text-nodes of a DOM.
// Whitespace-only text and CDATA sections match as well.
var NodeIsText Predicate = func(n *W3CNode) bool {
	return n.NodeName() == "#text" || n.NodeName() == "#cdata-section"
}

// NodeIsElement returns a predicate matching elements with the given tag
// name, or all elements if tag is empty.
func NodeIsElement(tag string) Predicate {
	return func(n *W3CNode) bool {
		return n.IsElement() && (tag == "" || n.NodeName() == tag)
	}
}

// Collect walks the subtree at root depth-first and returns the nodes
// matching pred, in document order. root itself is included if it matches.
func Collect(root *W3CNode, pred Predicate) []*W3CNode {
	var found []*W3CNode
	var walk func(n *W3CNode)
	walk = func(n *W3CNode) {
		if pred(n) {
			found = append(found, n)
		}
		for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
			walk(ch.(*W3CNode))
		}
	}
	walk(root)
	return found
}
