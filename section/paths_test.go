package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rmalmain/alcov/errs"
)

func TestPath_RoundTrip(t *testing.T) {
	buf, err := AppendPath(nil, "/home/abc")
	require.NoError(t, err)
	require.Equal(t, []byte("/home/abc\x00"), buf)

	buf, err = AppendPath(buf, "/usr/lib/libc.so")
	require.NoError(t, err)

	first, err := ReadPath(buf, 0)
	require.NoError(t, err)
	require.Equal(t, "/home/abc", first)

	second, err := ReadPath(buf, 10)
	require.NoError(t, err)
	require.Equal(t, "/usr/lib/libc.so", second)
}

func TestAppendPath_NonASCII(t *testing.T) {
	_, err := AppendPath(nil, "/home/café")
	require.ErrorIs(t, err, errs.ErrPathEncoding)

	_, err = AppendPath(nil, "embedded\x00nul")
	require.ErrorIs(t, err, errs.ErrPathEncoding)
}

func TestReadPath_Errors(t *testing.T) {
	_, err := ReadPath([]byte("no terminator"), 0)
	require.ErrorIs(t, err, errs.ErrPathRead)

	_, err = ReadPath([]byte("a\x00"), 5)
	require.ErrorIs(t, err, errs.ErrPathRead)

	_, err = ReadPath([]byte("a\x00"), -1)
	require.ErrorIs(t, err, errs.ErrPathRead)

	_, err = ReadPath([]byte{0xc3, 0xa9, 0x00}, 0)
	require.ErrorIs(t, err, errs.ErrPathEncoding)
}
