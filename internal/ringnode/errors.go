package ringnode

import "errors"

// ErrDuplicateWord is returned by Put when the word is already present
// at the node responsible for it (or, with caching enabled, at any
// node that has ever cached it).
var ErrDuplicateWord = errors.New("ringnode: word already present")

// ErrWordNotFound is returned by Get when the node responsible for the
// word does not have it in its store.
var ErrWordNotFound = errors.New("ringnode: word not found")

// ErrRoutingLoop is returned when a lookup would forward a request back
// to the node that is already handling it. This indicates corrupted
// finger-table state; the request fails but the process keeps serving.
var ErrRoutingLoop = errors.New("ringnode: routing would loop back to self")
