package fileclient

import "errors"

// ErrFileNotFound mirrors the fileserver/quorumcoord sentinel so Runner
// callers can branch on it without importing either package directly.
var ErrFileNotFound = errors.New("fileclient: file not found")
