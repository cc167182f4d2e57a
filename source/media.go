// Package source builds the media a playback session hands to its player.
package source

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Media is a playable target with the request headers the player must send.
type Media struct {
	URL     string
	Title   string
	Headers map[string]string
}

// IsRemote reports whether the media is fetched over HTTP.
func (m Media) IsRemote() bool {
	return strings.Contains(m.URL, "://")
}

var remoteSchemes = map[string]bool{"http": true, "https": true}

var (
	errEmptyTarget   = errors.New("empty media target")
	errControlChars  = errors.New("media target contains control characters")
	errFlagLikeInput = errors.New("media target must not start with '-'")
)

// normalizeTarget checks a URL or file path before it reaches the player command line.
// Remote targets must use http(s); local paths are cleaned.
func normalizeTarget(raw string) (string, error) {
	target := strings.TrimSpace(raw)

	switch {
	case target == "":
		return "", errEmptyTarget
	case strings.ContainsAny(target, "\x00\r\n"):
		return "", errControlChars
	case strings.HasPrefix(target, "-"):
		return "", errFlagLikeInput
	}

	if !strings.Contains(target, "://") {
		return filepath.Clean(target), nil
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parse media url: %w", err)
	}
	if !remoteSchemes[strings.ToLower(u.Scheme)] {
		return "", fmt.Errorf("unsupported media scheme %q", u.Scheme)
	}
	return target, nil
}
