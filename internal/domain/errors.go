package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrTransport indicates a network or HTTP-level failure talking to a remote service
	ErrTransport = errors.New("transport error")

	// ErrDecode indicates a response did not have the expected shape
	ErrDecode = errors.New("unexpected response")

	// ErrNoMatch indicates the search succeeded but no candidate passed the exclusion filter
	ErrNoMatch = errors.New("no matching wallpaper found")

	// ErrConfiguration indicates malformed or missing configuration
	ErrConfiguration = errors.New("invalid configuration")

	// ErrPersistence indicates a local write failed
	ErrPersistence = errors.New("failed to write file")

	// ErrUnsupportedPlatform indicates no wallpaper or display backend exists for this OS
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)
