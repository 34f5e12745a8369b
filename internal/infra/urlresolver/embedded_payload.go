package urlresolver

import (
	"bytes"
	"encoding/base64"
	"net/url"
	"strings"
)

// resolveFromEmbeddedPayload implements strategy 2: the aggregator encodes
// the publisher URL into the opaque path segment after "/articles/" as
// base64url; this decodes it and scans the raw bytes for an embedded
// "http" URL.
func resolveFromEmbeddedPayload(aggregatorURL string) (string, bool) {
	segment, ok := articlesPathSegment(aggregatorURL)
	if !ok {
		return "", false
	}

	decoded, ok := decodeBase64URLPadded(segment)
	if !ok {
		return "", false
	}

	candidate, ok := scanForHTTPURL(decoded)
	if !ok {
		return "", false
	}

	if !isCandidatePublisherURL(candidate) {
		return "", false
	}
	return candidate, true
}

func articlesPathSegment(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	const marker = "/articles/"
	idx := strings.Index(u.Path, marker)
	if idx == -1 {
		return "", false
	}
	segment := u.Path[idx+len(marker):]
	segment = strings.Trim(segment, "/")
	if segment == "" {
		return "", false
	}
	return segment, true
}

// decodeBase64URLPadded converts the URL-safe alphabet to standard and pads
// to a multiple of 4 before decoding, since aggregators strip padding.
func decodeBase64URLPadded(segment string) ([]byte, bool) {
	std := strings.NewReplacer("-", "+", "_", "/").Replace(segment)
	if rem := len(std) % 4; rem != 0 {
		std += strings.Repeat("=", 4-rem)
	}
	decoded, err := base64.StdEncoding.DecodeString(std)
	if err != nil {
		return nil, false
	}
	return decoded, true
}

// scanForHTTPURL walks the decoded byte stream for the ASCII pattern
// "http", then forward while bytes remain printable ASCII (0x21-0x7e) to
// form the candidate URL.
func scanForHTTPURL(data []byte) (string, bool) {
	idx := bytes.Index(data, []byte("http"))
	if idx == -1 {
		return "", false
	}

	end := idx
	for end < len(data) && data[end] >= 0x21 && data[end] <= 0x7e {
		end++
	}
	if end == idx {
		return "", false
	}
	return string(data[idx:end]), true
}
