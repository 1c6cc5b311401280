package capture

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/matzehuels/codeshot/pkg/errors"
)

// EncodeDataURI returns data as a base64 data URI of the given media type.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// encodeTextDataURI percent-encodes text markup, the way vector captures
// are handed out.
func encodeTextDataURI(mime string, data []byte) string {
	return "data:" + mime + ";charset=utf-8," + url.PathEscape(string(data))
}

// DecodeDataURI splits a data URI into its media type and payload. Both
// base64 and percent-encoded payloads are accepted.
func DecodeDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New(errors.ErrCodeInvalidInput, "not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New(errors.ErrCodeInvalidInput, "data URI has no payload")
	}

	params := strings.Split(meta, ";")
	mime = params[0]
	if mime == "" {
		mime = "text/plain"
	}
	isBase64 := false
	for _, p := range params[1:] {
		if p == "base64" {
			isBase64 = true
		}
	}

	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode base64 payload")
		}
		return mime, data, nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode percent-encoded payload")
	}
	return mime, []byte(text), nil
}
