package memory

import (
	"cmp"
	"slices"
)

func sortByID[T any](list []T, id func(T) uint) {
	slices.SortFunc(list, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
}
