package polyclip

import (
	"fmt"
	"strings"
	"sync"
)

// SweepNode is a node in the sweep status tree. It wraps the left endpoint of
// an active segment, ie. a segment currently crossed by the sweep line.
type SweepNode struct {
	parent, left, right *SweepNode
	height              int

	*SweepPoint
}

// Prev returns the active segment directly below, or nil.
func (n *SweepNode) Prev() *SweepNode {
	// go left
	if n.left != nil {
		n = n.left
		for n.right != nil {
			n = n.right // find the right-most of current subtree
		}
		return n
	}

	for n.parent != nil && n.parent.left == n {
		n = n.parent // find first parent for which we're right
	}
	return n.parent // can be nil
}

// Next returns the active segment directly above, or nil.
func (n *SweepNode) Next() *SweepNode {
	// go right
	if n.right != nil {
		n = n.right
		for n.left != nil {
			n = n.left // find the left-most of current subtree
		}
		return n
	}

	for n.parent != nil && n.parent.right == n {
		n = n.parent // find first parent for which we're left
	}
	return n.parent // can be nil
}

func (n *SweepNode) balance() int {
	r := 0
	if n.left != nil {
		r -= n.left.height
	}
	if n.right != nil {
		r += n.right.height
	}
	return r
}

func (n *SweepNode) updateHeight() {
	n.height = 0
	if n.left != nil {
		n.height = n.left.height
	}
	if n.right != nil && n.height < n.right.height {
		n.height = n.right.height
	}
	n.height++
}

func (n *SweepNode) swapChild(a, b *SweepNode) {
	if n.right == a {
		n.right = b
	} else {
		n.left = b
	}
	if b != nil {
		b.parent = n
	}
}

func (a *SweepNode) rotateLeft() *SweepNode {
	b := a.right
	if a.parent != nil {
		a.parent.swapChild(a, b)
	} else {
		b.parent = nil
	}
	a.parent = b
	if a.right = b.left; a.right != nil {
		a.right.parent = a
	}
	b.left = a
	return b
}

func (a *SweepNode) rotateRight() *SweepNode {
	b := a.left
	if a.parent != nil {
		a.parent.swapChild(a, b)
	} else {
		b.parent = nil
	}
	a.parent = b
	if a.left = b.right; a.left != nil {
		a.left.parent = a
	}
	b.right = a
	return b
}

func (n *SweepNode) print(sb *strings.Builder, indent int) {
	if n.right != nil {
		n.right.print(sb, indent+1)
	}
	fmt.Fprintf(sb, "%v%v\n", strings.Repeat("  ", indent), n.SweepPoint)
	if n.left != nil {
		n.left.print(sb, indent+1)
	}
}

// SweepStatus is the ordered set of active segments, bottom to top at the
// current sweep position. It is an AVL tree with parent pointers so that
// neighbour queries and removal through a node handle are cheap.
type SweepStatus struct {
	root *SweepNode
	pool *sync.Pool
}

func NewSweepStatus() *SweepStatus {
	return &SweepStatus{
		pool: &sync.Pool{New: func() any { return &SweepNode{} }},
	}
}

func (s *SweepStatus) newNode(item *SweepPoint) *SweepNode {
	n := s.pool.Get().(*SweepNode)
	n.parent = nil
	n.left = nil
	n.right = nil
	n.height = 1
	n.SweepPoint = item
	n.SweepPoint.node = n
	return n
}

func (s *SweepStatus) returnNode(n *SweepNode) {
	n.SweepPoint.node = nil
	n.SweepPoint = nil // help the GC
	s.pool.Put(n)
}

func (s *SweepStatus) find(item *SweepPoint) (*SweepNode, int) {
	n := s.root
	for n != nil {
		cmp := item.CompareV(n.SweepPoint)
		if cmp < 0 {
			if n.left == nil {
				return n, -1
			}
			n = n.left
		} else {
			if n.right == nil {
				return n, 1
			}
			n = n.right
		}
	}
	return n, 0
}

func (s *SweepStatus) rebalance(n *SweepNode) {
	for {
		oheight := n.height
		if balance := n.balance(); balance == 2 {
			// tree is excessively right-heavy, rotate it to the left
			if n.right != nil && n.right.balance() < 0 {
				// right tree is left-heavy, rotate the right tree to the right first
				n.right = n.right.rotateRight()
				n.right.right.updateHeight()
			}
			n = n.rotateLeft()
			n.left.updateHeight()
		} else if balance == -2 {
			// tree is excessively left-heavy, rotate it to the right
			if n.left != nil && n.left.balance() > 0 {
				// left tree is right-heavy, rotate the left tree to the left first
				n.left = n.left.rotateLeft()
				n.left.left.updateHeight()
			}
			n = n.rotateRight()
			n.right.updateHeight()
		}

		n.updateHeight()
		if n.parent == nil {
			s.root = n
			return
		}
		if oheight == n.height {
			return
		}
		n = n.parent
	}
}

func (s *SweepStatus) String() string {
	if s.root == nil {
		return "nil"
	}

	sb := strings.Builder{}
	s.root.print(&sb, 0)
	return strings.TrimSuffix(sb.String(), "\n")
}

// First returns the bottom-most active segment, or nil.
func (s *SweepStatus) First() *SweepNode {
	if s.root == nil {
		return nil
	}
	n := s.root
	for n.left != nil {
		n = n.left
	}
	return n
}

// Last returns the top-most active segment, or nil.
func (s *SweepStatus) Last() *SweepNode {
	if s.root == nil {
		return nil
	}
	n := s.root
	for n.right != nil {
		n = n.right
	}
	return n
}

// Insert adds item to the status and returns its node together with its new
// neighbours below and above.
func (s *SweepStatus) Insert(item *SweepPoint) (*SweepNode, *SweepNode, *SweepNode) {
	if s.root == nil {
		s.root = s.newNode(item)
		return s.root, nil, nil
	}

	n, cmp := s.find(item)
	rebalance := false
	if cmp < 0 {
		n.left = s.newNode(item)
		n.left.parent = n
		rebalance = n.right == nil
		n = n.left
	} else {
		n.right = s.newNode(item)
		n.right.parent = n
		rebalance = n.left == nil
		n = n.right
	}

	if rebalance {
		n.height++
		if n.parent != nil {
			s.rebalance(n.parent)
		}
	}
	return n, n.Prev(), n.Next()
}

// Remove deletes node n from the status. The neighbours that were below and
// above n become adjacent and should be re-checked for intersection.
func (s *SweepStatus) Remove(n *SweepNode) {
	var o *SweepNode
	for {
		if n.height == 1 {
			o = n.parent
			if o != nil {
				o.swapChild(n, nil)
				s.rebalance(o)
			} else {
				s.root = nil
			}
			s.returnNode(n)
			return
		} else if n.right != nil {
			o = n.right
			for o.left != nil {
				o = o.left
			}
		} else {
			o = n.left
			for o.right != nil {
				o = o.right
			}
		}
		n.SweepPoint, o.SweepPoint = o.SweepPoint, n.SweepPoint
		n.SweepPoint.node, o.SweepPoint.node = n, o
		n = o
	}
}
