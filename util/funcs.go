package util

import (
	"iter"

	"github.com/hashicorp/go-set/v3"
)

// Reverse yields slice back-to-front, used to render the breadcrumb
// trail outermost-first even though the stack is kept innermost-first
// (spec.md ss4.1).
func Reverse[A any](slice []A) iter.Seq[A] {
	return func(yield func(A) bool) {
		for i := len(slice) - 1; i >= 0; i-- {
			if !yield(slice[i]) {
				return
			}
		}
	}
}

// SetFromSeq drains s into a hashicorp/go-set Set, used wherever a
// one-shot membership/dedup check is cheaper through a Set than a
// hand-rolled map.
func SetFromSeq[V comparable](s iter.Seq[V], size int) *set.Set[V] {
	newSet := set.New[V](size)
	for item := range s {
		newSet.Insert(item)
	}
	return newSet
}
