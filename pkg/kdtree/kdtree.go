// Package kdtree is a k-dimensional binary spatial index supporting nearest-N queries.
package kdtree

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDimensionMismatch is returned when points or queries disagree on dimensionality
var ErrDimensionMismatch = errors.New("kdtree: dimension mismatch")

// Number is any coordinate type the tree can compare and measure
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Point is anything with coordinates
type Point[N Number] interface {
	Coordinates() []N
}

// Neighbor is a query result
type Neighbor[P any] struct {
	Point           P
	DistanceSquared float64
}

type node[P any] struct {
	point       P
	left, right *node[P]
}

// Tree is a kd-tree balanced by median splits. It is immutable once built
// and safe for concurrent queries.
type Tree[P Point[N], N Number] struct {
	root *node[P]
	k    int
	size int
}

// New builds a tree over points. Every point must have the same number of coordinates.
func New[P Point[N], N Number](points []P) (*Tree[P, N], error) {
	t := &Tree[P, N]{size: len(points)}
	if len(points) == 0 {
		return t, nil
	}

	t.k = len(points[0].Coordinates())
	if t.k == 0 {
		return nil, fmt.Errorf("%w: points have no coordinates", ErrDimensionMismatch)
	}
	for i, p := range points {
		if d := len(p.Coordinates()); d != t.k {
			return nil, fmt.Errorf("%w: point %d has %d coordinates, expected %d", ErrDimensionMismatch, i, d, t.k)
		}
	}

	work := make([]P, len(points))
	copy(work, points)
	t.root = t.build(work, 0)
	return t, nil
}

// build sorts by the level's axis, keeps the median and recurses on either side
func (t *Tree[P, N]) build(points []P, depth int) *node[P] {
	if len(points) == 0 {
		return nil
	}
	axis := depth % t.k
	sort.Slice(points, func(i, j int) bool {
		return points[i].Coordinates()[axis] < points[j].Coordinates()[axis]
	})

	median := len(points) / 2
	return &node[P]{
		point: points[median],
		left:  t.build(points[:median], depth+1),
		right: t.build(points[median+1:], depth+1),
	}
}

// Len returns the number of points in the tree
func (t *Tree[P, N]) Len() int {
	return t.size
}

// Dimensions returns k, or 0 for an empty tree
func (t *Tree[P, N]) Dimensions() int {
	return t.k
}

// Nearest returns up to n points closest to query, nearest first
func (t *Tree[P, N]) Nearest(query []N, n int) ([]P, error) {
	neighbors, err := t.NearestNeighbors(query, n)
	if err != nil {
		return nil, err
	}
	points := make([]P, len(neighbors))
	for i, nb := range neighbors {
		points[i] = nb.Point
	}
	return points, nil
}

// NearestNeighbors returns up to n points closest to query with their squared distances, nearest first
func (t *Tree[P, N]) NearestNeighbors(query []N, n int) ([]Neighbor[P], error) {
	if t.root == nil || n <= 0 {
		return nil, nil
	}
	if len(query) != t.k {
		return nil, fmt.Errorf("%w: query has %d coordinates, tree has %d", ErrDimensionMismatch, len(query), t.k)
	}

	best := make([]Neighbor[P], 0, n)
	t.search(t.root, query, 0, n, &best)
	return best, nil
}

func distanceSquared[N Number](a, b []N) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// insert adds candidate to the bounded, sorted best set
func insert[P any](best *[]Neighbor[P], candidate Neighbor[P], n int) {
	set := *best
	if len(set) == n && candidate.DistanceSquared >= set[len(set)-1].DistanceSquared {
		return
	}
	i := sort.Search(len(set), func(i int) bool {
		return set[i].DistanceSquared > candidate.DistanceSquared
	})
	if len(set) < n {
		set = append(set, Neighbor[P]{})
	}
	copy(set[i+1:], set[i:len(set)-1])
	set[i] = candidate
	*best = set
}

// search descends toward query first and only visits the far side of a split
// when the splitting plane is closer than the current worst of the best set
func (t *Tree[P, N]) search(nd *node[P], query []N, depth, n int, best *[]Neighbor[P]) {
	if nd == nil {
		return
	}
	coords := nd.point.Coordinates()
	insert(best, Neighbor[P]{Point: nd.point, DistanceSquared: distanceSquared(coords, query)}, n)

	axis := depth % t.k
	diff := float64(query[axis]) - float64(coords[axis])
	near, far := nd.left, nd.right
	if diff > 0 {
		near, far = nd.right, nd.left
	}

	t.search(near, query, depth+1, n, best)

	set := *best
	if len(set) < n || diff*diff < set[len(set)-1].DistanceSquared {
		t.search(far, query, depth+1, n, best)
	}
}
