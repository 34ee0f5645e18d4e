package dictclient

import "errors"

// ErrDuplicateWord mirrors ringnode.ErrDuplicateWord as seen by a client
// across the RPC boundary.
var ErrDuplicateWord = errors.New("dictclient: word already present")

// ErrWordNotFound mirrors ringnode.ErrWordNotFound as seen by a client
// across the RPC boundary.
var ErrWordNotFound = errors.New("dictclient: word not found")
