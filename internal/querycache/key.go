package querycache

import (
	"fmt"
	"strings"
)

// Key — семантический ключ кэша: кортеж вида ("comments", 42).
// Ключ сравнивается поэлементно; более короткий ключ служит шаблоном
// для всех ключей, начинающихся с тех же элементов.
type Key []string

// NewKey собирает ключ из произвольных значений через fmt.Sprint.
func NewKey(parts ...any) Key {
	k := make(Key, 0, len(parts))
	for _, p := range parts {
		k = append(k, fmt.Sprint(p))
	}

	return k
}

// HasPrefix сообщает, что k начинается с элементов pattern.
// Пустой шаблон совпадает с любым ключом.
func (k Key) HasPrefix(pattern Key) bool {
	if len(pattern) > len(k) {
		return false
	}

	for i := range pattern {
		if k[i] != pattern[i] {
			return false
		}
	}

	return true
}

// Head — первый элемент ключа (используется как метка метрик).
func (k Key) Head() string {
	if len(k) == 0 {
		return ""
	}

	return k[0]
}

// String — человекочитаемое представление для логов: "comments/42".
func (k Key) String() string { return strings.Join(k, "/") }

// id — однозначное внутреннее представление (элементы могут содержать '/').
func (k Key) id() string { return strings.Join(k, "\x1f") }

func matchesAny(k Key, patterns []Key) bool {
	for _, p := range patterns {
		if k.HasPrefix(p) {
			return true
		}
	}

	return false
}
