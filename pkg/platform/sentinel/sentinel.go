package sentinel

import "errors"

// Sentinel errors for lookup facts. Registries and catalogs return these
// (optionally wrapped) so services can translate them into domain errors:
// - ErrNotFound: unknown identifier type, country or choice table
// - ErrConflict: duplicate registration in a read-only table
// - ErrUnavailable: dependency temporarily unavailable
//
// Identifier rejections are not sentinels; they live in internal/idnumber/failure.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
