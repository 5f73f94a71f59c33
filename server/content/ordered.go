package content

import (
	perrors "github.com/jrsteele09/restaurant-panel/internal/errors"
)

// ordered keeps values by id in display order.
type ordered[T any] struct {
	ids  []string
	byID map[string]T
}

func newOrdered[T any]() *ordered[T] {
	return &ordered[T]{byID: make(map[string]T)}
}

func (o *ordered[T]) add(id string, v T) {
	o.ids = append(o.ids, id)
	o.byID[id] = v
}

func (o *ordered[T]) get(id string) (T, bool) {
	v, ok := o.byID[id]
	return v, ok
}

func (o *ordered[T]) put(id string, v T) bool {
	if _, ok := o.byID[id]; !ok {
		return false
	}
	o.byID[id] = v
	return true
}

func (o *ordered[T]) remove(id string) bool {
	if _, ok := o.byID[id]; !ok {
		return false
	}
	delete(o.byID, id)
	for i, existing := range o.ids {
		if existing == id {
			o.ids = append(o.ids[:i], o.ids[i+1:]...)
			break
		}
	}
	return true
}

func (o *ordered[T]) list() []T {
	values := make([]T, 0, len(o.ids))
	for _, id := range o.ids {
		values = append(values, o.byID[id])
	}
	return values
}

// reorder accepts ids only when they are exactly the stored set.
func (o *ordered[T]) reorder(ids []string) error {
	if len(ids) != len(o.ids) {
		return perrors.Wrapf(perrors.ErrInvalidRequest, "reorder lists %d ids, %d stored", len(ids), len(o.ids))
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := o.byID[id]; !ok {
			return perrors.Wrapf(perrors.ErrInvalidRequest, "reorder names unknown id %q", id)
		}
		if _, dup := seen[id]; dup {
			return perrors.Wrapf(perrors.ErrInvalidRequest, "reorder repeats id %q", id)
		}
		seen[id] = struct{}{}
	}
	o.ids = append([]string(nil), ids...)
	return nil
}
