// Package memory implements the entity repositories as in-memory keyed maps
// with incrementally maintained secondary indexes. Updates that change an
// indexed field, a plan moving state or a user changing email, re-index in
// the same critical section, so index and primary map never disagree.
package memory

import "sort"

// index is a secondary index: key -> set of entity ids.
type index map[string]map[string]struct{}

func (ix index) put(key, id string) {
	set, ok := ix[key]
	if !ok {
		set = make(map[string]struct{})
		ix[key] = set
	}
	set[id] = struct{}{}
}

func (ix index) drop(key, id string) {
	if set, ok := ix[key]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(ix, key)
		}
	}
}

// ids returns the indexed ids for key in sorted order.
func (ix index) ids(key string) []string {
	set := ix[key]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// sortedValues returns the values of m ordered by id, so listings are
// deterministic.
func sortedValues[T any](m map[string]T) []T {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

// pick returns the entities for the given ids, preserving id order.
func pick[T any](m map[string]T, ids []string) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := m[id]; ok {
			out = append(out, item)
		}
	}
	return out
}
