package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrSettingsLocked    = errors.New("settings are locked while a work session is active")
	ErrLastPreset        = errors.New("cannot delete the last preset")
	ErrHookDisabled      = errors.New("hook is disabled")
	ErrHookTimeout       = errors.New("hook timeout")
	ErrCapabilityMissing = errors.New("hook capability missing")
)
