package kdtree

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	gonumkd "gonum.org/v1/gonum/spatial/kdtree"
)

type vec []float64

func (v vec) Coordinates() []float64 { return v }

type grid [2]int

func (g grid) Coordinates() []int { return g[:] }

func randomPoints(random *rand.Rand, count, k int) []vec {
	points := make([]vec, count)
	for i := range points {
		p := make(vec, k)
		for j := range p {
			p[j] = random.Float64()*200 - 100
		}
		points[i] = p
	}
	return points
}

// bruteForce returns the distances to the n closest points by linear scan
func bruteForce(points []vec, query vec, n int) []float64 {
	distances := make([]float64, len(points))
	for i, p := range points {
		distances[i] = floats.Distance(p, query, 2)
	}
	sort.Float64s(distances)
	if n > len(distances) {
		n = len(distances)
	}
	return distances[:n]
}

func TestTree_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	for _, k := range []int{1, 2, 3, 5} {
		points := randomPoints(random, 500, k)
		tree, err := New[vec, float64](points)
		require.NoError(t, err)
		require.Equal(t, 500, tree.Len())
		require.Equal(t, k, tree.Dimensions())

		for q := 0; q < 50; q++ {
			query := randomPoints(random, 1, k)[0]
			n := 1 + random.Intn(20)

			neighbors, err := tree.NearestNeighbors(query, n)
			require.NoError(t, err)
			require.Len(t, neighbors, n)

			expected := bruteForce(points, query, n)
			for i, nb := range neighbors {
				assert.InDelta(t, expected[i], floats.Distance(nb.Point, query, 2), 1e-9, "k=%d rank %d", k, i)
			}
		}
	}
}

func TestTree_MatchesGonum(t *testing.T) {
	random := rand.New(rand.NewSource(2))
	points := randomPoints(random, 1000, 3)

	tree, err := New[vec, float64](points)
	require.NoError(t, err)

	oracle := make(gonumkd.Points, len(points))
	for i, p := range points {
		oracle[i] = gonumkd.Point(p)
	}
	reference := gonumkd.New(oracle, false)

	for q := 0; q < 100; q++ {
		query := randomPoints(random, 1, 3)[0]
		const n = 8

		keeper := gonumkd.NewNKeeper(n)
		reference.NearestSet(keeper, gonumkd.Point(query))
		var expected []float64
		for _, c := range keeper.Heap {
			if c.Comparable == nil {
				continue
			}
			expected = append(expected, c.Dist)
		}
		sort.Float64s(expected)

		neighbors, err := tree.NearestNeighbors(query, n)
		require.NoError(t, err)
		require.Len(t, neighbors, len(expected))
		for i, nb := range neighbors {
			assert.InDelta(t, expected[i], nb.DistanceSquared, 1e-9)
		}
	}
}

func TestTree_Small(t *testing.T) {
	points := []grid{{0, 0}, {5, 5}, {1, 1}, {-3, 2}, {10, 0}}
	tree, err := New[grid, int](points)
	require.NoError(t, err)

	nearest, err := tree.Nearest([]int{0, 1}, 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []grid{{0, 0}, {1, 1}}, nearest)

	all, err := tree.Nearest([]int{9, 0}, 10)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, grid{10, 0}, all[0])
}

func TestTree_Empty(t *testing.T) {
	tree, err := New[vec, float64](nil)
	require.NoError(t, err)
	nearest, err := tree.Nearest(vec{1, 2, 3}, 3)
	require.NoError(t, err)
	assert.Empty(t, nearest)
}

func TestTree_DimensionMismatch(t *testing.T) {
	_, err := New[vec, float64]([]vec{{1, 2}, {1, 2, 3}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	tree, err := New[vec, float64]([]vec{{1, 2}, {3, 4}})
	require.NoError(t, err)
	_, err = tree.Nearest(vec{1, 2, 3}, 1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestTree_Duplicates(t *testing.T) {
	points := []vec{{1, 1}, {1, 1}, {1, 1}, {2, 2}}
	tree, err := New[vec, float64](points)
	require.NoError(t, err)
	neighbors, err := tree.NearestNeighbors(vec{1, 1}, 3)
	require.NoError(t, err)
	for _, nb := range neighbors {
		assert.Equal(t, 0.0, nb.DistanceSquared)
	}
}
