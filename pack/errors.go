package pack

import "errors"

var (
	// ErrUnknownPart indicates a requested part name no generator claims.
	ErrUnknownPart = errors.New("pack: no generator claims part")
	// ErrBadPartName indicates a part name that does not follow the fixed
	// naming scheme (for example a worksheet part with a malformed index).
	ErrBadPartName = errors.New("pack: malformed part name")
	// ErrSinkClosed indicates a chunked write without an open part.
	ErrSinkClosed = errors.New("pack: no part open on sink")
)
