// SPDX-License-Identifier: AGPL-3.0-only
package social

import "errors"

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following")
	ErrNotFollowing     = errors.New("not following")
	ErrNotFound         = errors.New("not found")
)
