package section

import (
	"bytes"
	"fmt"

	"github.com/rmalmain/alcov/errs"
)

// isASCII reports whether the path contains only non-NUL ASCII bytes.
// NUL is excluded because it terminates paths on the wire.
func isASCII(path string) bool {
	for i := 0; i < len(path); i++ {
		if path[i] == 0 || path[i] > 0x7f {
			return false
		}
	}

	return true
}

// AppendPath appends path as a NUL-terminated string to buf.
func AppendPath(buf []byte, path string) ([]byte, error) {
	if !isASCII(path) {
		return nil, fmt.Errorf("%w: %q", errs.ErrPathEncoding, path)
	}

	buf = append(buf, path...)
	buf = append(buf, 0)

	return buf, nil
}

// ReadPath extracts the NUL-terminated path starting at offset inside the
// paths chunk.
func ReadPath(paths []byte, offset int64) (string, error) {
	if offset < 0 || offset >= int64(len(paths)) {
		return "", fmt.Errorf("%w: offset %d outside paths chunk of %d bytes", errs.ErrPathRead, offset, len(paths))
	}

	tail := paths[offset:]
	end := bytes.IndexByte(tail, 0)
	if end < 0 {
		return "", fmt.Errorf("%w: offset %d", errs.ErrPathRead, offset)
	}

	path := string(tail[:end])
	if !isASCII(path) {
		return "", fmt.Errorf("%w: %q", errs.ErrPathEncoding, path)
	}

	return path, nil
}
