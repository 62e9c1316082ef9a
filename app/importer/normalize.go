package importer

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	twitterHandleRe = regexp.MustCompile(`^[A-Za-z0-9_]{1,30}$`)
	linkedinSlugRe  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// normalizeTwitter accepts a bare handle, an @handle, or a profile URL and
// returns the canonical (handle, url) pair. Empty input is valid and yields
// empty output.
func normalizeTwitter(value string) (handle, profileURL string, err error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", "", nil
	}

	if strings.Contains(v, "twitter.com/") || strings.Contains(v, "x.com/") {
		raw := v
		if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
			raw = "https://" + raw
		}
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", fmt.Errorf("unparseable twitter URL")
		}
		h := strings.Trim(u.Path, "/")
		if i := strings.LastIndex(h, "/"); i >= 0 {
			h = h[i+1:]
		}
		h = strings.TrimPrefix(h, "@")
		if !twitterHandleRe.MatchString(h) {
			return "", "", fmt.Errorf("twitter URL has no usable handle")
		}
		return h, "https://twitter.com/" + h, nil
	}

	h := strings.TrimPrefix(v, "@")
	if !twitterHandleRe.MatchString(h) {
		return "", "", fmt.Errorf("invalid twitter handle")
	}
	return h, "https://twitter.com/" + h, nil
}

// normalizeLinkedIn accepts a profile URL or a bare profile slug and returns a
// canonical URL. Empty input is valid and yields empty output.
func normalizeLinkedIn(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", nil
	}

	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		u, err := url.Parse(v)
		if err != nil || u.Host == "" {
			return "", fmt.Errorf("unparseable linkedin URL")
		}
		if !strings.Contains(u.Host, "linkedin.com") {
			return "", fmt.Errorf("not a linkedin URL")
		}
		return v, nil
	}

	if strings.Contains(v, "linkedin.com") {
		return normalizeLinkedIn("https://" + v)
	}

	if !linkedinSlugRe.MatchString(v) {
		return "", fmt.Errorf("invalid linkedin profile")
	}
	return "https://linkedin.com/in/" + v, nil
}
