package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rmalmain/alcov/errs"
	"github.com/rmalmain/alcov/format"
)

func testPayload() []byte {
	// Low-entropy payload resembling a blocks chunk: fixed-size records with
	// many zero bytes.
	payload := make([]byte, 0, 4096)
	for i := 0; i < 100; i++ {
		record := make([]byte, 40)
		record[0] = byte(i)
		record[8] = 0x20
		payload = append(payload, record...)
	}

	return payload
}

func TestCodecs_RoundTrip(t *testing.T) {
	payload := testPayload()

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionLZMA2,
		format.CompressionZstd,
		format.CompressionLZ4,
		format.CompressionGzip,
		format.CompressionXZ,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, decompressed)
		})
	}
}

func TestLZMA2_CompressesRepetitiveData(t *testing.T) {
	payload := testPayload()
	codec := NewLZMA2Compressor()

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Less(t, len(compressed), len(payload))
}

func TestLZMA2_EmptyInput(t *testing.T) {
	codec := NewLZMA2Compressor()

	compressed, err := codec.Compress(nil)
	require.NoError(t, err)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Empty(t, decompressed)
}

func TestLZMA2_CorruptedInput(t *testing.T) {
	codec := NewLZMA2Compressor()

	_, err := codec.Decompress(bytes.Repeat([]byte{0xff}, 64))
	require.ErrorIs(t, err, errs.ErrDecompress)
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0xee))
	require.Error(t, err)
}

func TestDetect(t *testing.T) {
	payload := testPayload()

	cases := []struct {
		ct    format.CompressionType
		codec Codec
	}{
		{format.CompressionZstd, NewZstdCompressor()},
		{format.CompressionLZ4, NewLZ4Compressor()},
		{format.CompressionGzip, NewGzipCompressor()},
		{format.CompressionXZ, NewXZCompressor()},
	}

	for _, tc := range cases {
		t.Run(tc.ct.String(), func(t *testing.T) {
			compressed, err := tc.codec.Compress(payload)
			require.NoError(t, err)
			require.Equal(t, tc.ct, Detect(compressed))
		})
	}

	require.Equal(t, format.CompressionNone, Detect(payload))
	require.Equal(t, format.CompressionNone, Detect(nil))
}

func TestDecapsulate(t *testing.T) {
	payload := testPayload()

	compressed, err := NewZstdCompressor().Compress(payload)
	require.NoError(t, err)

	out, err := Decapsulate(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, out)

	// Unrecognized data passes through untouched.
	out, err = Decapsulate(payload)
	require.NoError(t, err)
	require.Equal(t, payload, out)
}
