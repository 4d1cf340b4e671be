// Package commenttree собирает плоский список комментариев поста в лес
// вложенных веток для отображения.
//
// Сборка линейная (два прохода по входу), без рекурсии и без побочных
// эффектов: один и тот же вход всегда даёт один и тот же лес.
package commenttree

import "github.com/pribylovaa/wave-feed/internal/models"

// Node — комментарий вместе с прямыми ответами.
// Children упорядочены так же, как записи во входном списке
// (хранилище отдаёт их по created_at ASC).
type Node struct {
	models.Comment
	Children []*Node `json:"children"`
}

// Build превращает плоский список комментариев в список корневых узлов.
//
// Правила:
//   - ParentID == nil или 0: комментарий становится корнем;
//   - ParentID указывает на id из входного набора: комментарий добавляется
//     в Children этого узла;
//   - ParentID указывает на отсутствующий id: комментарий отбрасывается
//     вместе со своими потомками (сироты не показываются).
//
// Если id повторяется, ответы привязываются к последней записи с этим id;
// сами записи-дубликаты остаются в лесу каждая на своём месте.
//
// Порядок корней и порядок детей внутри узла совпадают с порядком входа.
// Для пустого входа возвращается пустой (не nil) срез.
func Build(records []models.Comment) []*Node {
	nodes := make([]*Node, len(records))
	byID := make(map[int64]*Node, len(records))

	for i := range records {
		n := &Node{Comment: records[i], Children: []*Node{}}
		nodes[i] = n
		byID[n.ID] = n
	}

	roots := make([]*Node, 0, len(records))
	for _, n := range nodes {
		if n.IsRoot() {
			roots = append(roots, n)
			continue
		}

		parent, ok := byID[*n.ParentID]
		if !ok {
			continue
		}

		parent.Children = append(parent.Children, n)
	}

	return roots
}
