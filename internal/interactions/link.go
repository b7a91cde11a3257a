// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package interactions

import "strings"

// LinkBuilder turns a national phone number into a messaging deep link.
type LinkBuilder struct {
	BaseURL     string // e.g. "https://wa.me/"
	CountryCode string // e.g. "92"
}

// Build drops the national trunk prefix "0" and prepends the country code:
// "03001234567" becomes "https://wa.me/923001234567".
func (b LinkBuilder) Build(phone string) string {
	base := b.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + b.CountryCode + strings.TrimPrefix(phone, "0")
}
