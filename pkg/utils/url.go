package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ToAbsoluteURL converts a relative URL to an absolute URL given a base URL.
func ToAbsoluteURL(base *url.URL, relative string) (string, error) {
	relURL, err := url.Parse(strings.TrimSpace(relative))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(relURL).String(), nil
}

// ResolveAgainst is ToAbsoluteURL for a base given as a string.
func ResolveAgainst(base, relative string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	return ToAbsoluteURL(baseURL, relative)
}

// JoinPath appends path elements to a site root, e.g. the account name to
// build a profile URL.
func JoinPath(base string, elem ...string) (string, error) {
	for _, e := range elem {
		if strings.TrimSpace(strings.Trim(e, "/")) == "" {
			return "", fmt.Errorf("empty path element for %q", base)
		}
	}
	return url.JoinPath(base, elem...)
}
