package token

import "errors"

// ErrGeneration indicates the system random source failed.
var ErrGeneration = errors.New("token: generation failed")
