package spatial

// NoHit is the primitive index returned by ray queries that miss.
const NoHit = -1

// stackDepth bounds DFS traversal; enough for any realistic volume set.
const stackDepth = 64

// node is a packed BVH node. Interior nodes store the index of their
// first child (the second is at left+1); leaves store a primitive range
// into the index permutation. count > 0 marks a leaf.
type node struct {
	MinX, MinY, MinZ float32
	leftOrFirst      uint32
	MaxX, MaxY, MaxZ float32
	count            uint32
}

func (n *node) isLeaf() bool { return n.count > 0 }

func (n *node) bounds() AABB {
	return AABB{
		Min: Vec3{n.MinX, n.MinY, n.MinZ},
		Max: Vec3{n.MaxX, n.MaxY, n.MaxZ},
	}
}

// Tree is a linear-array bounding volume hierarchy over a set of boxes.
// Build captures a copy of the input boxes; all queries are read-only
// and allocation free. The zero value is an empty tree whose queries
// return no hit.
type Tree struct {
	nodes   []node
	indices []uint32
	boxes   []AABB
}

// Build rebuilds the tree from boxes. Node and index storage is reused
// across rebuilds. An empty input leaves the tree empty.
func (t *Tree) Build(boxes []AABB) {
	t.nodes = t.nodes[:0]
	if len(boxes) == 0 {
		t.indices = t.indices[:0]
		t.boxes = t.boxes[:0]
		return
	}

	t.boxes = append(t.boxes[:0], boxes...)
	t.indices = t.indices[:0]
	for i := range boxes {
		t.indices = append(t.indices, uint32(i))
	}

	t.nodes = append(t.nodes, node{})
	t.buildRecursive(0, 0, uint32(len(t.indices)))
}

func (t *Tree) buildRecursive(nodeIdx, start, count uint32) {
	bounds := NewAABB()
	centroids := NewAABB()
	for i := uint32(0); i < count; i++ {
		b := t.boxes[t.indices[start+i]]
		bounds.ExpandBox(b)
		centroids.Expand(b.Center())
	}

	n := &t.nodes[nodeIdx]
	n.MinX, n.MinY, n.MinZ = bounds.Min.X, bounds.Min.Y, bounds.Min.Z
	n.MaxX, n.MaxY, n.MaxZ = bounds.Max.X, bounds.Max.Y, bounds.Max.Z

	if count <= 2 {
		n.leftOrFirst = start
		n.count = count
		return
	}

	// Split on the widest centroid axis; ties resolve x before y before z.
	extent := centroids.Max.Sub(centroids.Min)
	axis := 0
	if extent.Y > extent.X {
		axis = 1
	}
	if extent.Z > extent.Axis(axis) {
		axis = 2
	}

	splitPos := centroids.Min.Axis(axis) + extent.Axis(axis)*0.5
	leftCount := t.partition(start, count, axis, splitPos)
	if leftCount == 0 || leftCount == count {
		// Degenerate midpoint split; fall back to a median split.
		leftCount = count / 2
		t.selectMedian(start, count, leftCount, axis)
	}

	leftChild := uint32(len(t.nodes))
	t.nodes = append(t.nodes, node{}, node{})
	// The append may have moved the backing array; re-resolve the node.
	t.nodes[nodeIdx].leftOrFirst = leftChild
	t.nodes[nodeIdx].count = 0

	t.buildRecursive(leftChild, start, leftCount)
	t.buildRecursive(leftChild+1, start+leftCount, count-leftCount)
}

// partition reorders indices[start:start+count] so primitives with a
// centroid below splitPos on axis come first, returning their count.
func (t *Tree) partition(start, count uint32, axis int, splitPos float32) uint32 {
	lo := int(start)
	hi := int(start + count)
	for lo < hi {
		if t.boxes[t.indices[lo]].Center().Axis(axis) < splitPos {
			lo++
		} else {
			hi--
			t.indices[lo], t.indices[hi] = t.indices[hi], t.indices[lo]
		}
	}
	return uint32(lo) - start
}

// selectMedian partially sorts indices[start:start+count] so that the
// element at start+k is in its sorted-by-centroid position with smaller
// centroids before it. Quickselect over the index permutation.
func (t *Tree) selectMedian(start, count, k uint32, axis int) {
	lo := int(start)
	hi := int(start+count) - 1
	target := int(start + k)
	for lo < hi {
		pivot := t.boxes[t.indices[(lo+hi)/2]].Center().Axis(axis)
		i, j := lo, hi
		for i <= j {
			for t.boxes[t.indices[i]].Center().Axis(axis) < pivot {
				i++
			}
			for t.boxes[t.indices[j]].Center().Axis(axis) > pivot {
				j--
			}
			if i <= j {
				t.indices[i], t.indices[j] = t.indices[j], t.indices[i]
				i++
				j--
			}
		}
		if target <= j {
			hi = j
		} else if target >= i {
			lo = i
		} else {
			return
		}
	}
}

// QueryOverlap reports whether any primitive box overlaps box.
func (t *Tree) QueryOverlap(box AABB) bool {
	if len(t.nodes) == 0 || !t.nodes[0].bounds().Overlaps(box) {
		return false
	}

	var stack [stackDepth]uint32
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		n := &t.nodes[stack[sp]]
		if n.isLeaf() {
			for i := uint32(0); i < n.count; i++ {
				if t.boxes[t.indices[n.leftOrFirst+i]].Overlaps(box) {
					return true
				}
			}
			continue
		}
		left := n.leftOrFirst
		if t.nodes[left].bounds().Overlaps(box) {
			stack[sp] = left
			sp++
		}
		if t.nodes[left+1].bounds().Overlaps(box) {
			stack[sp] = left + 1
			sp++
		}
	}
	return false
}

// QueryPoint reports whether p is contained in any primitive box.
func (t *Tree) QueryPoint(p Vec3) bool {
	if len(t.nodes) == 0 || !t.nodes[0].bounds().Contains(p) {
		return false
	}

	var stack [stackDepth]uint32
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		n := &t.nodes[stack[sp]]
		if n.isLeaf() {
			for i := uint32(0); i < n.count; i++ {
				if t.boxes[t.indices[n.leftOrFirst+i]].Contains(p) {
					return true
				}
			}
			continue
		}
		left := n.leftOrFirst
		if t.nodes[left].bounds().Contains(p) {
			stack[sp] = left
			sp++
		}
		if t.nodes[left+1].bounds().Contains(p) {
			stack[sp] = left + 1
			sp++
		}
	}
	return false
}

// QueryRay returns the index of the primitive whose box the ray hits
// closest, and the near-t of that hit. Misses return NoHit with the
// max-float sentinel.
// Traversal descends the nearer child first and prunes subtrees whose
// entry distance exceeds the best hit so far.
func (t *Tree) QueryRay(r Ray) (int, float32) {
	closest := float32(maxFloat)
	closestIdx := NoHit
	if len(t.nodes) == 0 {
		return closestIdx, closest
	}

	type entry struct {
		node uint32
		dist float32
	}
	var stack [stackDepth]entry
	sp := 0
	if tBox, ok := t.nodes[0].bounds().Intersect(r); ok {
		stack[sp] = entry{0, tBox}
		sp++
	}

	for sp > 0 {
		sp--
		cur := stack[sp]
		if cur.dist >= closest {
			continue
		}
		n := &t.nodes[cur.node]
		if n.isLeaf() {
			for i := uint32(0); i < n.count; i++ {
				primIdx := t.indices[n.leftOrFirst+i]
				if tHit, ok := t.boxes[primIdx].Intersect(r); ok && tHit >= 0 && tHit < closest {
					closest = tHit
					closestIdx = int(primIdx)
				}
			}
			continue
		}

		left := n.leftOrFirst
		tLeft, hitLeft := t.nodes[left].bounds().Intersect(r)
		tRight, hitRight := t.nodes[left+1].bounds().Intersect(r)
		switch {
		case hitLeft && hitRight:
			if tLeft < tRight {
				stack[sp] = entry{left + 1, tRight}
				stack[sp+1] = entry{left, tLeft}
			} else {
				stack[sp] = entry{left, tLeft}
				stack[sp+1] = entry{left + 1, tRight}
			}
			sp += 2
		case hitLeft:
			stack[sp] = entry{left, tLeft}
			sp++
		case hitRight:
			stack[sp] = entry{left + 1, tRight}
			sp++
		}
	}
	return closestIdx, closest
}
