package capture

import (
	"testing"

	"github.com/matzehuels/codeshot/pkg/errors"
)

func TestDataURIRoundTrip(t *testing.T) {
	payload := []byte("<svg>a b%c</svg>")

	mime, data, err := DecodeDataURI(EncodeDataURI("image/png", payload))
	if err != nil || mime != "image/png" || string(data) != string(payload) {
		t.Errorf("base64: %q %q %v", mime, data, err)
	}

	mime, data, err = DecodeDataURI(encodeTextDataURI("image/svg+xml", payload))
	if err != nil || mime != "image/svg+xml" || string(data) != string(payload) {
		t.Errorf("text: %q %q %v", mime, data, err)
	}
}

func TestDecodeDataURIErrors(t *testing.T) {
	for _, uri := range []string{"http://x", "data:image/png;base64", "data:;base64,@@@"} {
		if _, _, err := DecodeDataURI(uri); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("DecodeDataURI(%q) err = %v", uri, err)
		}
	}
}
