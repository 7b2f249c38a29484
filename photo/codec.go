package photo

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// encoding is the only scheme used for photos, in both directions.
var encoding = base64.StdEncoding.Strict()

// ErrCorruptPhoto is matched by every CodecError.
var ErrCorruptPhoto = errors.New("corrupt photo data")

// CodecError reports encoded photo text or a media type that can not be decoded.
type CodecError struct {
	Input string
	Err   error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("photo: %v", e.Err)
}

func (e *CodecError) Unwrap() error { return e.Err }

func (e *CodecError) Is(target error) bool {
	return target == ErrCorruptPhoto
}

// Encode returns the padded standard base64 text of b.
func Encode(b []byte) string {
	return encoding.EncodeToString(b)
}

// Decode is the inverse of Encode. Malformed text yields a *CodecError and
// no data; an empty string decodes to an empty slice. Line breaks are
// rejected even though the base64 package would skip them.
func Decode(s string) ([]byte, error) {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return nil, &CodecError{Input: truncate(s), Err: base64.CorruptInputError(i)}
	}
	b, err := encoding.DecodeString(s)
	if err != nil {
		return nil, &CodecError{Input: truncate(s), Err: err}
	}
	return b, nil
}

func truncate(s string) string {
	const max = 32
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

const encodingSuffix = ";base64"

// MediaType composes the stored media type for a content type, e.g.
// "image/png" becomes "image/png;base64".
func MediaType(contentType string) string {
	return contentType + encodingSuffix
}

// ParseMediaType returns the content type of a stored media type. Any content
// type is accepted as long as the encoding suffix is present.
func ParseMediaType(mediaType string) (string, error) {
	contentType, ok := strings.CutSuffix(mediaType, encodingSuffix)
	if !ok {
		return "", &CodecError{Input: mediaType, Err: fmt.Errorf("media type %q is not %s encoded", mediaType, strings.TrimPrefix(encodingSuffix, ";"))}
	}
	if strings.TrimSpace(contentType) == "" {
		return "", &CodecError{Input: mediaType, Err: fmt.Errorf("media type %q has no content type", mediaType)}
	}
	return contentType, nil
}

// Extension returns the file extension for a stored media type: the subtype
// of its content type ("image/png;base64" gives "png").
func Extension(mediaType string) (string, error) {
	contentType, err := ParseMediaType(mediaType)
	if err != nil {
		return "", err
	}
	_, subtype, found := strings.Cut(contentType, "/")
	if !found {
		return contentType, nil
	}
	if subtype == "" {
		return "", &CodecError{Input: mediaType, Err: fmt.Errorf("media type %q has no subtype", mediaType)}
	}
	return subtype, nil
}
