package console

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strings"
)

var errNotDataURL = errors.New("not a data url")

// dataURL is the decoded form of an RFC 2397 data URL.
type dataURL struct {
	MediaType string
	Data      []byte
}

func parseDataURL(s string) (dataURL, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return dataURL{}, errNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return dataURL{}, errors.New("data url has no payload separator")
	}

	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}

	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return dataURL{}, err
		}
		return dataURL{MediaType: mediaType, Data: data}, nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return dataURL{}, err
	}
	return dataURL{MediaType: mediaType, Data: []byte(text)}, nil
}
