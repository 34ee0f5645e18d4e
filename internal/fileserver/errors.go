package fileserver

import "errors"

// ErrFileNotFound is returned by Fetch when the file is absent from the
// version table, i.e. no Update has ever been applied to it on this
// server.
var ErrFileNotFound = errors.New("fileserver: file not found")
