package domain

import "errors"

var (
	// ErrDuplicateName rejects a create/update that would give two products
	// the same normalized name. Mapped to 409 by the HTTP layer.
	ErrDuplicateName = errors.New("product name already exists")

	// ErrStoreUnavailable wraps transport-level store failures. A validation
	// message that hits it is left uncommitted so the broker redelivers.
	ErrStoreUnavailable = errors.New("product store unavailable")
)
