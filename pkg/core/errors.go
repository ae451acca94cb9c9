package core

import "github.com/pkg/errors"

var (
	// ErrInvalidConfiguration is returned when render or camera parameters are rejected before rendering.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrMissingAsset is returned when an external asset such as an image texture cannot be loaded.
	ErrMissingAsset = errors.New("missing asset")
)

// InvalidConfigf wraps ErrInvalidConfiguration with a formatted reason
func InvalidConfigf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfiguration, format, args...)
}
