package utils

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

func PopMapValue(m map[string]any, k string) (bool, any, map[string]any) {
	v, found := m[k]
	if !found {
		return false, nil, m
	}

	m = maps.Clone(m)
	delete(m, k)

	return true, v, m
}

func SortedMap[Map ~map[K]V, K cmp.Ordered, V any](m Map) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}
