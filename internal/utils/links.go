package utils

import (
	"net/url"
	"regexp"
	"strings"
)

// Intent kinds produced by QR payloads and deep links. Every accepted format
// resolves to one of these two.
const (
	IntentAddContact = "add_contact"
	IntentJoinGroup  = "join_group"
)

type Intent struct {
	Kind   string `json:"kind"`
	UserID string `json:"user_id,omitempty"`
	Code   string `json:"code,omitempty"`
}

// BuildContactPayload returns the short-text QR payload for "add contact".
func BuildContactPayload(userID string) string {
	return "contact:" + userID
}

// BuildJoinCodePayload returns the short-text QR payload for "join group".
func BuildJoinCodePayload(code string) string {
	return "join:" + code
}

var inviteNameRe = regexp.MustCompile(`(?:^|/)i/([A-Za-z0-9_\-]+)(?:$|[/?#])`)

// ParsePayload accepts plain "contact:"/"join:" schemes, our own URLs
// (?code= / ?c= for joins, ?u= / ?user= / ?uid= for contacts, /i/<code>
// paths) and dynamic links whose inner target is passed as ?link=. Returns
// nil when nothing matches.
func ParsePayload(raw string) *Intent {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil
	}

	if rest, ok := strings.CutPrefix(text, "contact:"); ok {
		if id := strings.TrimSpace(rest); id != "" {
			return &Intent{Kind: IntentAddContact, UserID: id}
		}
		return nil
	}
	if rest, ok := strings.CutPrefix(text, "join:"); ok {
		if code := strings.TrimSpace(rest); code != "" {
			return &Intent{Kind: IntentJoinGroup, Code: code}
		}
		return nil
	}

	if outer, err := url.Parse(text); err == nil && outer.Scheme != "" {
		if inner := outer.Query().Get("link"); inner != "" {
			if u, err := url.Parse(inner); err == nil {
				if it := parseURL(u); it != nil {
					return it
				}
			}
		}
		if it := parseURL(outer); it != nil {
			return it
		}
	}

	// bare ".../i/<CODE>" without a scheme
	if m := inviteNameRe.FindStringSubmatch(text); m != nil {
		return &Intent{Kind: IntentJoinGroup, Code: m[1]}
	}
	return nil
}

func parseURL(u *url.URL) *Intent {
	if m := inviteNameRe.FindStringSubmatch(u.Path); m != nil {
		return &Intent{Kind: IntentJoinGroup, Code: m[1]}
	}
	q := u.Query()
	if code := firstOf(q, "c", "code"); code != "" {
		return &Intent{Kind: IntentJoinGroup, Code: code}
	}
	if id := firstOf(q, "u", "user", "uid"); id != "" {
		return &Intent{Kind: IntentAddContact, UserID: id}
	}
	return nil
}

func firstOf(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			return v
		}
	}
	return ""
}
