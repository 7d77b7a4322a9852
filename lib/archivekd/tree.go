// Package archivekd implements component E: the 3D/4D archive,
// maintained as an ordered associative container keyed on f1 (spec
// §4.4). The backing structure is a red-black tree adapted from the
// teacher's lib/containers.RBTree — same CLRS rotation/rebalance
// engine, specialized here to a fixed key (the first objective
// coordinate, via the scalar façade) and a resident record value
// instead of the teacher's generic KeyFn/AttrFn pair.
package archivekd

import "github.com/cma-es/moarchiving-go/lib/scalar"

type color bool

const (
	black = color(false)
	red   = color(true)
)

type node[C scalar.Value[C], Info any] struct {
	parent, left, right *node[C, Info]
	clr                  color

	point []C
	info  Info
}

func (n *node[C, Info]) getColor() color {
	if n == nil {
		return black
	}
	return n.clr
}

// tree is an ordered-by-f1 balanced search tree of resident objective
// vectors. The zero value is an empty tree.
type tree[C scalar.Value[C], Info any] struct {
	root *node[C, Info]
	size int
}

func (t *tree[C, Info]) Len() int { return t.size }

// walk visits every node in ascending key order.
func (t *tree[C, Info]) walk(fn func(*node[C, Info])) {
	t.root.walk(fn)
}

func (n *node[C, Info]) walk(fn func(*node[C, Info])) {
	if n == nil {
		return
	}
	n.left.walk(fn)
	fn(n)
	n.right.walk(fn)
}

// search locates the node for which fn reports a match, per the same
// ternary-comparator contract as the teacher's RBTree.Search: fn
// returns <0 to go left, 0 for a match, >0 to go right.
func (t *tree[C, Info]) search(fn func([]C) int) *node[C, Info] {
	n := t.root
	for n != nil {
		switch d := fn(n.point); {
		case d < 0:
			n = n.left
		case d == 0:
			return n
		default:
			n = n.right
		}
	}
	return nil
}

// searchNearest is search, but on a miss it also returns the last
// node visited — the natural insertion point, used by bisect-style
// callers that need "where would this key go".
func (t *tree[C, Info]) searchNearest(fn func([]C) int) (exact, nearest *node[C, Info]) {
	var prev *node[C, Info]
	n := t.root
	for n != nil {
		prev = n
		switch d := fn(n.point); {
		case d < 0:
			n = n.left
		case d == 0:
			return n, nil
		default:
			n = n.right
		}
	}
	return nil, prev
}

// walkLE visits, in ascending key order, every node whose f1 (point[0])
// is <= bound, stopping early if fn returns false. Subtrees that the
// BST property guarantees hold only keys > bound are never descended
// into, so the cost is O(log n + m) for m matching nodes rather than a
// full walk — the windowing spec §4.4 asks the locate step to have.
func (t *tree[C, Info]) walkLE(bound C, fn func(*node[C, Info]) bool) bool {
	return t.root.walkLE(bound, fn)
}

func (n *node[C, Info]) walkLE(bound C, fn func(*node[C, Info]) bool) bool {
	if n == nil {
		return true
	}
	if n.point[0].Cmp(bound) > 0 {
		return n.left.walkLE(bound, fn)
	}
	if !n.left.walkLE(bound, fn) {
		return false
	}
	if !fn(n) {
		return false
	}
	return n.right.walkLE(bound, fn)
}

// walkGE is walkLE's mirror: ascending order over every node whose f1
// is >= bound.
func (t *tree[C, Info]) walkGE(bound C, fn func(*node[C, Info]) bool) bool {
	return t.root.walkGE(bound, fn)
}

func (n *node[C, Info]) walkGE(bound C, fn func(*node[C, Info]) bool) bool {
	if n == nil {
		return true
	}
	if n.point[0].Cmp(bound) < 0 {
		return n.right.walkGE(bound, fn)
	}
	if !n.left.walkGE(bound, fn) {
		return false
	}
	if !fn(n) {
		return false
	}
	return n.right.walkGE(bound, fn)
}

func (n *node[C, Info]) min() *node[C, Info] {
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

func (n *node[C, Info]) max() *node[C, Info] {
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

// next returns the in-order successor of n.
func (n *node[C, Info]) next() *node[C, Info] {
	if n.right != nil {
		return n.right.min()
	}
	child, parent := n, n.parent
	for parent != nil && child == parent.right {
		child, parent = parent, parent.parent
	}
	return parent
}

// prev returns the in-order predecessor of n.
func (n *node[C, Info]) prev() *node[C, Info] {
	if n.left != nil {
		return n.left.max()
	}
	child, parent := n, n.parent
	for parent != nil && child == parent.left {
		child, parent = parent, parent.parent
	}
	return parent
}

func (t *tree[C, Info]) parentSlot(n *node[C, Info]) **node[C, Info] {
	switch {
	case n.parent == nil:
		return &t.root
	case n.parent.left == n:
		return &n.parent.left
	default:
		return &n.parent.right
	}
}

func (t *tree[C, Info]) leftRotate(x *node[C, Info]) {
	p := x.parent
	slot := t.parentSlot(x)
	y := x.right
	b := y.left

	y.parent = p
	*slot = y

	x.parent = y
	y.left = x

	if b != nil {
		b.parent = x
	}
	x.right = b
}

func (t *tree[C, Info]) rightRotate(y *node[C, Info]) {
	p := y.parent
	slot := t.parentSlot(y)
	x := y.left
	b := x.right

	x.parent = p
	*slot = x

	y.parent = x
	x.right = y

	if b != nil {
		b.parent = y
	}
	y.left = b
}

// pointCmp orders primarily by f1 (point[0]), per spec §4.4's "keyed
// on f1". Residents that happen to share f1 are not necessarily a
// dominated pair in 3+ dimensions, so the remaining coordinates break
// the tie — this only needs to be a total order, not a meaningful
// one, since the dominance window Add uses (walkLE/walkGE) is bounded
// by f1 alone.
func pointCmp[C scalar.Value[C]](a, b []C) int {
	if c := a[0].Cmp(b[0]); c != 0 {
		return c
	}
	for i := 1; i < len(a) && i < len(b); i++ {
		if c := a[i].Cmp(b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// insert inserts (point, info) keyed on point (spec §4.4 "Insertion is
// O(log n + k): locate by f1"), overwriting any entry whose full
// coordinates exactly match.
func (t *tree[C, Info]) insert(point []C, info Info) {
	key := func(p []C) int { return pointCmp(point, p) }
	exact, parent := t.searchNearest(key)
	if exact != nil {
		exact.point = point
		exact.info = info
		return
	}
	t.size++

	n := &node[C, Info]{clr: red, parent: parent, point: point, info: info}
	switch {
	case parent == nil:
		t.root = n
	case pointCmp[C](point, parent.point) < 0:
		parent.left = n
	default:
		parent.right = n
	}

	// Rebalance; CLRS 3e RB-INSERT-FIXUP.
	for n.parent.getColor() == red {
		if n.parent == n.parent.parent.left {
			uncle := n.parent.parent.right
			if uncle.getColor() == red {
				n.parent.clr = black
				uncle.clr = black
				n.parent.parent.clr = red
				n = n.parent.parent
			} else {
				if n == n.parent.right {
					n = n.parent
					t.leftRotate(n)
				}
				n.parent.clr = black
				n.parent.parent.clr = red
				t.rightRotate(n.parent.parent)
			}
		} else {
			uncle := n.parent.parent.left
			if uncle.getColor() == red {
				n.parent.clr = black
				uncle.clr = black
				n.parent.parent.clr = red
				n = n.parent.parent
			} else {
				if n == n.parent.left {
					n = n.parent
					t.rightRotate(n)
				}
				n.parent.clr = black
				n.parent.parent.clr = red
				t.leftRotate(n.parent.parent)
			}
		}
	}
	t.root.clr = black
}

// deleteByPoint removes the node whose coordinates exactly match
// point, reporting whether one was found.
func (t *tree[C, Info]) deleteByPoint(point []C) bool {
	n := t.search(func(p []C) int { return pointCmp(point, p) })
	if n == nil {
		return false
	}
	t.deleteNode(n)
	return true
}

func (t *tree[C, Info]) transplant(oldNode, newNode *node[C, Info]) {
	*t.parentSlot(oldNode) = newNode
	if newNode != nil {
		newNode.parent = oldNode.parent
	}
}

// deleteNode removes n from the tree. CLRS 3e RB-DELETE.
func (t *tree[C, Info]) deleteNode(toDelete *node[C, Info]) {
	t.size--

	var rebalanceNode, rebalanceParent *node[C, Info]
	needsRebalance := toDelete.getColor() == black

	switch {
	case toDelete.left == nil:
		rebalanceNode = toDelete.right
		rebalanceParent = toDelete.parent
		t.transplant(toDelete, toDelete.right)
	case toDelete.right == nil:
		rebalanceNode = toDelete.left
		rebalanceParent = toDelete.parent
		t.transplant(toDelete, toDelete.left)
	default:
		successor := toDelete.next()
		if successor.parent == toDelete {
			rebalanceNode = successor.right
			rebalanceParent = successor

			*t.parentSlot(toDelete) = successor
			successor.parent = toDelete.parent

			successor.left = toDelete.left
			successor.left.parent = successor
		} else {
			y := successor.parent
			b := successor.right
			rebalanceNode = b
			rebalanceParent = y

			*t.parentSlot(toDelete) = successor
			successor.parent = toDelete.parent

			successor.left = toDelete.left
			successor.left.parent = successor

			successor.right = toDelete.right
			successor.right.parent = successor

			y.left = b
			if b != nil {
				b.parent = y
			}
		}
		needsRebalance = successor.getColor() == black
		successor.clr = toDelete.clr
	}

	if !needsRebalance {
		return
	}

	n, parent := rebalanceNode, rebalanceParent
	for n != t.root && n.getColor() == black {
		if n == parent.left {
			sibling := parent.right
			if sibling.getColor() == red {
				sibling.clr = black
				parent.clr = red
				t.leftRotate(parent)
				sibling = parent.right
			}
			if sibling.left.getColor() == black && sibling.right.getColor() == black {
				sibling.clr = red
				n, parent = parent, parent.parent
			} else {
				if sibling.right.getColor() == black {
					sibling.left.clr = black
					sibling.clr = red
					t.rightRotate(sibling)
					sibling = parent.right
				}
				sibling.clr = parent.clr
				parent.clr = black
				sibling.right.clr = black
				t.leftRotate(parent)
				n, parent = t.root, nil
			}
		} else {
			sibling := parent.left
			if sibling.getColor() == red {
				sibling.clr = black
				parent.clr = red
				t.rightRotate(parent)
				sibling = parent.left
			}
			if sibling.right.getColor() == black && sibling.left.getColor() == black {
				sibling.clr = red
				n, parent = parent, parent.parent
			} else {
				if sibling.left.getColor() == black {
					sibling.right.clr = black
					sibling.clr = red
					t.leftRotate(sibling)
					sibling = parent.left
				}
				sibling.clr = parent.clr
				parent.clr = black
				sibling.left.clr = black
				t.rightRotate(parent)
				n, parent = t.root, nil
			}
		}
	}
	if n != nil {
		n.clr = black
	}
}
