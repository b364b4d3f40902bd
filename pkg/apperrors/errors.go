package apperrors

import "errors"

var (
	ErrMissingConfig      = errors.New("missing required configuration")
	ErrSettingsNotApplied = errors.New("structured property settings were not applied")
)
