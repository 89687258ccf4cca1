package constants

import "errors"

// Configuration errors.
var (
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrTokenNotSettable  = errors.New("the token can only be stored with 'batfish authorize'")
	ErrNoHomeDirectory   = errors.New("could not determine home directory")
	ErrInvalidOutputType = errors.New("invalid output format")
)

// Resolution errors.
var (
	ErrDropletNotFound = errors.New("droplet not found")
	ErrImageNotFound   = errors.New("image not found")
	ErrRegionNotFound  = errors.New("region not found")
	ErrSizeNotFound    = errors.New("size not found")
	ErrActionNotFound  = errors.New("action not found")
)

// Authorization errors.
var (
	ErrAuthorizeFailed = errors.New("unable to authorize")
	ErrEmptyToken      = errors.New("token must not be empty")
)

// Operation errors.
var (
	ErrOperationCancelled = errors.New("operation cancelled")
	ErrInvalidID          = errors.New("invalid numeric id")
)
