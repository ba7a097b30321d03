package service

import "errors"

// Errors returned by the lift and provisioning services.
var (
	ErrClientClosed       = errors.New("liftcoords: client is closed")
	ErrChainFileMissing   = errors.New("chain file not installed")
	ErrChainSourceMissing = errors.New("chain file source not found")
)
