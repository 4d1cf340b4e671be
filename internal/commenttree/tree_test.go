package commenttree

// Тесты сборки ветки комментариев (tree.go, walk.go).
//
// Проверяем:
//  - базовые сценарии: дерево из нескольких уровней, сирота, пустой вход;
//  - количество узлов и соответствие родителя в дереве полю ParentID;
//  - порядок детей (как во входе) и детерминизм повторной сборки;
//  - поведение на повторяющихся id и на ссылках «вперёд»;
//  - обход Walk: прямой порядок, глубина, досрочная остановка.

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/wave-feed/internal/models"
)

var base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func ptr(v int64) *int64 { return &v }

// rec — короткий хелпер сборки записи комментария; t — смещение created_at в секундах.
func rec(id int64, parent *int64, t int) models.Comment {
	return models.Comment{
		ID:        id,
		PostID:    7,
		ParentID:  parent,
		UserID:    uuid.New(),
		Text:      fmt.Sprintf("comment %d", id),
		CreatedAt: base.Add(time.Duration(t) * time.Second),
	}
}

func ids(nodes []*Node) []int64 {
	out := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}

	return out
}

func TestBuild_NestedThread(t *testing.T) {
	t.Parallel()

	roots := Build([]models.Comment{
		rec(1, nil, 1),
		rec(2, ptr(1), 2),
		rec(3, ptr(1), 3),
		rec(4, ptr(2), 4),
	})

	require.Equal(t, []int64{1}, ids(roots))
	require.Equal(t, []int64{2, 3}, ids(roots[0].Children))
	require.Equal(t, []int64{4}, ids(roots[0].Children[0].Children))
	require.Empty(t, roots[0].Children[1].Children)
	require.Empty(t, roots[0].Children[0].Children[0].Children)
}

func TestBuild_OrphanIsDropped(t *testing.T) {
	t.Parallel()

	roots := Build([]models.Comment{rec(1, ptr(99), 1)})
	require.NotNil(t, roots)
	require.Empty(t, roots)
}

func TestBuild_OrphanSubtreeIsDropped(t *testing.T) {
	t.Parallel()

	// 2 ссылается на отсутствующий 50, 3 — ответ на 2: вся ветка не видна.
	roots := Build([]models.Comment{
		rec(1, nil, 1),
		rec(2, ptr(50), 2),
		rec(3, ptr(2), 3),
	})

	require.Equal(t, []int64{1}, ids(roots))
	require.Empty(t, roots[0].Children)
	require.Equal(t, 1, Count(roots))
}

func TestBuild_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, in := range [][]models.Comment{nil, {}} {
		roots := Build(in)
		require.NotNil(t, roots)
		require.Empty(t, roots)
	}
}

func TestBuild_MultipleRootsKeepInputOrder(t *testing.T) {
	t.Parallel()

	roots := Build([]models.Comment{
		rec(10, nil, 1),
		rec(11, ptr(10), 2),
		rec(12, nil, 3),
		rec(13, ptr(12), 4),
		rec(14, ptr(10), 5),
		rec(15, nil, 6),
	})

	require.Equal(t, []int64{10, 12, 15}, ids(roots))
	require.Equal(t, []int64{11, 14}, ids(roots[0].Children))
	require.Equal(t, []int64{13}, ids(roots[1].Children))
}

func TestBuild_ParentListedAfterChildStillResolves(t *testing.T) {
	t.Parallel()

	// Разрешение родителя идёт по всему набору, а не только по уже пройденным записям.
	roots := Build([]models.Comment{
		rec(2, ptr(1), 1),
		rec(1, nil, 1),
	})

	require.Equal(t, []int64{1}, ids(roots))
	require.Equal(t, []int64{2}, ids(roots[0].Children))
}

func TestBuild_DuplicateIDsAttachToLastOccurrence(t *testing.T) {
	t.Parallel()

	roots := Build([]models.Comment{
		rec(1, nil, 1),
		rec(1, nil, 2),
		rec(2, ptr(1), 3),
	})

	require.Equal(t, []int64{1, 1}, ids(roots))
	require.Empty(t, roots[0].Children)
	require.Equal(t, []int64{2}, ids(roots[1].Children))
}

func TestBuild_ZeroParentIsRoot(t *testing.T) {
	t.Parallel()

	roots := Build([]models.Comment{
		rec(1, ptr(0), 1),
		rec(2, ptr(1), 2),
		rec(3, nil, 3),
	})

	require.Equal(t, []int64{1, 3}, ids(roots))
	require.Equal(t, []int64{2}, ids(roots[0].Children))
}

func TestBuild_CycleNeverReachesOutput(t *testing.T) {
	t.Parallel()

	roots := Build([]models.Comment{
		rec(1, nil, 1),
		rec(2, ptr(3), 2),
		rec(3, ptr(2), 3),
		rec(4, ptr(4), 4),
	})

	require.Equal(t, []int64{1}, ids(roots))
	require.Equal(t, 1, Count(roots))
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []models.Comment{rec(1, nil, 1), rec(2, ptr(1), 2)}
	snapshot := append([]models.Comment(nil), in...)

	_ = Build(in)
	require.Equal(t, snapshot, in)
}

// randomThread — случайная ацикличная ветка: родителем может быть только
// одна из ранее созданных записей, вход отсортирован по created_at.
func randomThread(r *rand.Rand, n int) []models.Comment {
	out := make([]models.Comment, 0, n)
	for i := 0; i < n; i++ {
		var parent *int64
		if i > 0 && r.Intn(3) != 0 {
			parent = ptr(out[r.Intn(i)].ID)
		}
		out = append(out, rec(int64(i+1), parent, i))
	}

	return out
}

func TestBuild_Properties(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		in := randomThread(r, r.Intn(200))
		roots := Build(in)

		// Количество узлов совпадает с длиной входа.
		require.Equal(t, len(in), Count(roots))

		// Родитель в дереве совпадает с ParentID; дети не убывают по created_at.
		var check func(parent *Node, nodes []*Node)
		check = func(parent *Node, nodes []*Node) {
			for i, n := range nodes {
				if parent == nil {
					require.Nil(t, n.ParentID)
				} else {
					require.NotNil(t, n.ParentID)
					require.Equal(t, parent.ID, *n.ParentID)
				}

				if i > 0 {
					require.False(t, n.CreatedAt.Before(nodes[i-1].CreatedAt))
				}

				check(n, n.Children)
			}
		}
		check(nil, roots)

		// Повторная сборка даёт структурно то же самое.
		require.Equal(t, roots, Build(in))
	}
}
