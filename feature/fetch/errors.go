package fetch

import "errors"

// ErrInvalidPath reports a malformed combined storage path.
// Failures from ParseObjectPath wrap this sentinel.
var ErrInvalidPath = errors.New("invalid storage path")
