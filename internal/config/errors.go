// internal/config/errors.go
//
// Error taxonomy for configuration loading.
//
// Every failure returned by LoadSettings or New wraps exactly one of the
// three class sentinels, so bootstrap code can branch with errors.Is.  The
// validation sentinels wrap ErrValidation.

package config

import (
	"errors"
	"fmt"

	"github.com/AdeptTravel/peerd/internal/network"
)

var (
	// ErrIO marks a missing, unreadable, or empty file.  Topology read
	// failures wrap network.ErrIO, which is matched by ErrIO as well.
	ErrIO = errors.New("config io")
	// ErrParse marks a grammar violation or a malformed value.
	ErrParse = errors.New("config parse")
	// ErrValidation marks a violated cross-field invariant.
	ErrValidation = errors.New("config validation")
)

var (
	ErrStatsURLNotSet    = fmt.Errorf("%w: stats url not set", ErrValidation)
	ErrNetworkNameEmpty  = fmt.Errorf("%w: network name empty", ErrValidation)
	ErrNetworkNodesEmpty = fmt.Errorf("%w: network nodes empty", ErrValidation)
)

// topologyError wraps a topology loader failure with ErrIO so callers only
// need the config sentinels.
func topologyError(err error) error {
	if errors.Is(err, network.ErrIO) {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return err
}
