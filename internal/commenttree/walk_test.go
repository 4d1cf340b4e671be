package commenttree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/wave-feed/internal/models"
)

func TestWalk_PreOrderWithDepth(t *testing.T) {
	t.Parallel()

	roots := Build([]models.Comment{
		rec(1, nil, 1),
		rec(2, ptr(1), 2),
		rec(3, ptr(1), 3),
		rec(4, ptr(2), 4),
		rec(5, nil, 5),
	})

	type visit struct {
		id    int64
		depth int
	}

	var got []visit
	Walk(roots, func(n *Node, depth int) bool {
		got = append(got, visit{id: n.ID, depth: depth})
		return true
	})

	require.Equal(t, []visit{
		{1, 0}, {2, 1}, {4, 2}, {3, 1}, {5, 0},
	}, got)
}

func TestWalk_StopsEarly(t *testing.T) {
	t.Parallel()

	roots := Build([]models.Comment{rec(1, nil, 1), rec(2, ptr(1), 2), rec(3, nil, 3)})

	seen := 0
	Walk(roots, func(*Node, int) bool {
		seen++
		return seen < 2
	})

	require.Equal(t, 2, seen)
}

func TestWalk_DeepChainDoesNotRecurse(t *testing.T) {
	t.Parallel()

	const depth = 100_000
	in := make([]models.Comment, 0, depth)
	in = append(in, rec(1, nil, 0))
	for i := int64(2); i <= depth; i++ {
		in = append(in, rec(i, ptr(i-1), int(i)))
	}

	roots := Build(in)

	maxDepth := 0
	Walk(roots, func(_ *Node, d int) bool {
		if d > maxDepth {
			maxDepth = d
		}
		return true
	})

	require.Equal(t, depth-1, maxDepth)
	require.Equal(t, depth, Count(roots))
}

func TestCount_Empty(t *testing.T) {
	t.Parallel()
	require.Zero(t, Count(nil))
}
