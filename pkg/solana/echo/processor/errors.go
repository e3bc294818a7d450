package processor

import (
	"github.com/pkg/errors"
)

var (
	ErrNotEnoughAccountKeys  = errors.New("not enough account keys")
	ErrBufferNotEmpty        = errors.New("echo buffer is not empty")
	ErrAlreadyInitialized    = errors.New("buffer is already initialized")
	ErrInvalidDerivedAddress = errors.New("account does not match derived address")
	ErrUnauthorized          = errors.New("missing required signature or permission")
	ErrMintMismatch          = errors.New("token account mint does not match")
)
