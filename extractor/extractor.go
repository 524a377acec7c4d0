// Package extractor derives canonical YouTube identifiers from user-supplied URLs.
package extractor

import (
	"net/url"
	"regexp"
	"strings"

	ierrors "github.com/cnosuke/mcp-supadata/internal/errors"
)

var (
	// long form (watch?v=), short form (youtu.be/), embed form, plus shorts and live paths.
	videoURLRE = regexp.MustCompile(`(?i)^(?:https?://)?(?:(?:www|m|music)\.)?` +
		`(?:youtube(?:-nocookie)?\.com/(?:watch\?(?:[^#]*&)?v=|embed/|shorts/|live/|v/)|youtu\.be/)` +
		`([A-Za-z0-9_-]{11})(?:[?&#/]|$)`)

	channelIDRE = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)
)

// ExtractVideoID returns the 11-character video ID embedded in rawURL.
// node names the configuring node and is carried in the error for reporting.
func ExtractVideoID(rawURL string, node string) (string, error) {
	s := strings.TrimSpace(rawURL)
	m := videoURLRE.FindStringSubmatch(s)
	if m == nil {
		return "", &ierrors.ValidationError{
			Node:  node,
			Input: rawURL,
			Cause: "not a valid YouTube video URL",
		}
	}
	return m[1], nil
}

// ExtractChannelID returns the channel ID ("UC" followed by 22 characters)
// found as a path segment of rawURL. Handle URLs (/@name) carry no channel ID
// and are rejected.
func ExtractChannelID(rawURL string, node string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", &ierrors.ValidationError{Node: node, Input: rawURL, Cause: "not a valid URL"}
	}

	for _, seg := range strings.Split(u.Path, "/") {
		if channelIDRE.MatchString(seg) {
			return seg, nil
		}
	}

	cause := "no YouTube channel ID found in URL"
	if strings.Contains(u.Path, "/@") {
		cause = "channel handle URLs are not supported, use a /channel/UC... URL or the channel ID"
	}
	return "", &ierrors.ValidationError{Node: node, Input: rawURL, Cause: cause}
}
