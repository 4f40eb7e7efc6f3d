package csvdata

import "errors"

// ErrUnrecognizedFormat is returned when a file matches none of the known CSV layouts
var ErrUnrecognizedFormat = errors.New("unrecognized file format")
