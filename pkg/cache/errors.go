package cache

import (
	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
)

// wrapErr tags a backend failure with IO_ERROR and the failing operation.
// Callers treat cache errors as misses, so the code is informational.
func wrapErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return stitcherrors.Wrap(stitcherrors.ErrCodeIO, err, "cache %s %s", op, key)
}
