package extract

import "errors"

var (
	// ErrUnsupportedType indicates a file extension outside the supported set.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrFileNotFound indicates the file does not exist at the resolved path.
	ErrFileNotFound = errors.New("file not found")
)
