package service

import "errors"

// ErrInvalidInput flags request validation failures so transport layers can
// map them to a client error instead of a server fault.
var ErrInvalidInput = errors.New("invalid input")
