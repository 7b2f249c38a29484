package photo

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
	}{
		{name: "single byte", input: []byte{0xff}},
		{name: "two bytes needs padding", input: []byte{0x00, 0x01}},
		{name: "three bytes no padding", input: []byte("abc")},
		{name: "png signature", input: []byte("\x89PNG\r\n\x1a\n")},
		{name: "bytes mapping to + and /", input: []byte{0xfb, 0xff, 0xbf}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := Encode(tc.input)

			decoded, err := Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tc.input, decoded)
		})
	}
}

func TestEncodeDecodeRandomPayloads(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		b := make([]byte, 1+rng.Intn(2048))
		rng.Read(b)

		decoded, err := Decode(Encode(b))
		require.NoError(t, err)
		require.Equal(t, b, decoded)
	}
}

func TestEncodeIsPaddedAndDeterministic(t *testing.T) {
	assert.Equal(t, "YQ==", Encode([]byte("a")))
	assert.Equal(t, "YWI=", Encode([]byte("ab")))
	assert.Equal(t, Encode([]byte("same input")), Encode([]byte("same input")))
}

func TestDecodeRejectsCorruptInput(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "characters outside the alphabet", input: "not-valid-base64!!"},
		{name: "missing padding", input: "YQ"},
		{name: "url alphabet", input: "-_-_"},
		{name: "non zero padding bits", input: "YR=="},
		{name: "padding in the middle", input: "YQ==YQ=="},
		{name: "embedded line feed", input: "Y\nQ=="},
		{name: "trailing carriage return", input: "YQ==\r\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := Decode(tc.input)

			assert.Nil(t, decoded)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorruptPhoto))

			var codecErr *CodecError
			assert.True(t, errors.As(err, &codecErr))
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	decoded, err := Decode("")
	assert.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestMediaType(t *testing.T) {
	testCases := []struct {
		contentType string
		extension   string
	}{
		{contentType: "image/png", extension: "png"},
		{contentType: "image/jpeg", extension: "jpeg"},
		{contentType: "image/svg+xml", extension: "svg+xml"},
		{contentType: "image/vnd.microsoft.icon", extension: "vnd.microsoft.icon"},
		{contentType: "application/x-foo-bar", extension: "x-foo-bar"},
	}

	for _, tc := range testCases {
		t.Run(tc.contentType, func(t *testing.T) {
			mediaType := MediaType(tc.contentType)
			assert.Equal(t, tc.contentType+";base64", mediaType)

			contentType, err := ParseMediaType(mediaType)
			require.NoError(t, err)
			assert.Equal(t, tc.contentType, contentType)

			ext, err := Extension(mediaType)
			require.NoError(t, err)
			assert.Equal(t, tc.extension, ext)
		})
	}
}

func TestParseMediaTypeErrors(t *testing.T) {
	for _, input := range []string{"image/png", ";base64", "image/png;base32", ""} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseMediaType(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorruptPhoto))
		})
	}

	_, err := Extension("image/;base64")
	assert.Error(t, err)
}
