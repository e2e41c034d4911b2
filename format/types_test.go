package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlags_Valid(t *testing.T) {
	require.True(t, Flags(0).Valid())
	require.True(t, (FlagEdges | FlagCompress | FlagInputPath).Valid())
	require.False(t, Flags(0x0008).Valid())
	require.False(t, (FlagEdges | 0x8000).Valid())
}

func TestFlags_Has(t *testing.T) {
	f := FlagEdges | FlagCompress
	require.True(t, f.Has(FlagEdges))
	require.True(t, f.Has(FlagCompress))
	require.False(t, f.Has(FlagInputPath))
}

func TestFlags_String(t *testing.T) {
	require.Equal(t, "", Flags(0).String())
	require.Equal(t, "Edges", FlagEdges.String())
	require.Equal(t, "Edges, Compress, InputPath", (FlagEdges | FlagCompress | FlagInputPath).String())
}

func TestCompressionType_String(t *testing.T) {
	require.Equal(t, "LZMA2", CompressionLZMA2.String())
	require.Equal(t, "Unknown", CompressionType(0xee).String())
}
