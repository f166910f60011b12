package services

import (
	"errors"
	"fmt"

	"github.com/maxlgn/counterhub/repositories"
)

// translateRepoError promotes connectivity failures to the service
// taxonomy so handlers can answer 503 instead of 500, and keeps every
// other repository error intact for the callers' errors.Is checks.
func translateRepoError(err error) error {
	if errors.Is(err, repositories.ErrStoreUnavailable) {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return err
}
