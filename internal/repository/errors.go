package repository

import "errors"

var (
	// ErrElementNotFound is returned when a selector matches nothing on the current page.
	ErrElementNotFound = errors.New("element not found")
	// ErrTimeout is returned when a condition wait elapses before the page is ready.
	ErrTimeout = errors.New("timed out waiting for page")
	// ErrNavigationFailed is returned when the browser cannot load a URL.
	ErrNavigationFailed = errors.New("navigation failed")
	// ErrAuthenticationFailed is returned when the login form is still shown after submitting.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrBackupExists is returned instead of overwriting an earlier backup file.
	ErrBackupExists = errors.New("backup file already exists")
	// ErrRunNotFound is returned for an unknown run ID.
	ErrRunNotFound = errors.New("run not found")
)
