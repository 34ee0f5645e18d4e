package quorumcoord

import "errors"

// ErrFileNotFound is returned by Read when every server in the sampled
// read quorum reports version 0 for the file.
var ErrFileNotFound = errors.New("quorumcoord: file not found")
