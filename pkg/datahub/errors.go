package datahub

import "errors"

// ErrAspectNotFound is returned when an entity or aspect does not exist in
// the catalog.
var ErrAspectNotFound = errors.New("aspect not found")
