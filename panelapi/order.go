package panelapi

import (
	perrors "github.com/jrsteele09/restaurant-panel/internal/errors"
)

// ValidateOrder checks a reorder payload: at least one id, no blanks, no repeats.
func ValidateOrder(ids []string) error {
	if len(ids) == 0 {
		return perrors.Wrapf(perrors.ErrInvalidRequest, "reorder needs at least one id")
	}
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if id == "" {
			return perrors.Wrapf(perrors.ErrInvalidRequest, "reorder id %d is empty", i)
		}
		if _, ok := seen[id]; ok {
			return perrors.Wrapf(perrors.ErrInvalidRequest, "reorder id %q repeated", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
