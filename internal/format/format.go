// Package format holds the small text encodings shared by the API, the CLI
// and the MCP tools: date ranges, data URLs and share payloads.
package format

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// DateRange renders a pair of free-form dates for display.
func DateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return "Dates not set"
	case end == "":
		return "From " + start
	case start == "":
		return "Until " + end
	default:
		return start + " → " + end
	}
}

// ErrNotDataURL is returned when a string is not a base64 data URL.
var ErrNotDataURL = errors.New("not a base64 data URL")

// EncodeDataURL returns data as "data:<mediaType>;base64,<payload>".
func EncodeDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a base64 data URL into its media type and bytes.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrNotDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNotDataURL, err)
	}
	return mediaType, data, nil
}

// EncodeShare serialises a trip to JSON and base64-encodes the UTF-8 bytes
// with the standard alphabet, the same payload a browser builds with
// btoa(unescape(encodeURIComponent(json))).
func EncodeShare(t domain.Trip) (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("format.EncodeShare: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeShare reverses EncodeShare. It also accepts the URL-safe alphabet,
// with or without padding, since share payloads travel in URL fragments.
func DecodeShare(payload string) (domain.Trip, error) {
	payload = strings.TrimSpace(strings.TrimPrefix(payload, "#"))
	if payload == "" {
		return domain.Trip{}, fmt.Errorf("format.DecodeShare: empty payload: %w", domain.ErrValidation)
	}

	var (
		b   []byte
		err error
	)
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding,
	} {
		if b, err = enc.DecodeString(payload); err == nil {
			break
		}
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("format.DecodeShare: %v: %w", err, domain.ErrValidation)
	}

	var t domain.Trip
	if err := json.Unmarshal(b, &t); err != nil {
		return domain.Trip{}, fmt.Errorf("format.DecodeShare: %v: %w", err, domain.ErrValidation)
	}
	if t.Steps == nil {
		t.Steps = []domain.Step{}
	}
	return t, nil
}

// ShareURL joins the app root and a share payload: "<base>share#<payload>".
func ShareURL(base, payload string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "share#" + payload
}
