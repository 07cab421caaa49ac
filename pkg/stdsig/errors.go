package stdsig

import "errors"

// Sentinel errors - Input validation
var (
	ErrInvalidContextLength = errors.New("stdsig: context exceeds maximum length")
	ErrInvalidLength        = errors.New("stdsig: invalid encoding length")
)

// Sentinel errors - Encoding
var (
	ErrInvalidPublicKey   = errors.New("stdsig: invalid public key")
	ErrInvalidSignature   = errors.New("stdsig: invalid signature encoding")
	ErrPointDecompression = errors.New("stdsig: point decompression failed")
)

// Sentinel errors - Verification
var (
	ErrVerificationFailed = errors.New("stdsig: signature verification failed")
)
