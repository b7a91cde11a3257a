// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package logging

import "strings"

// RedactPhone keeps the operator prefix and the last two digits.
// Example: "03001234567" -> "0300*****67"
func RedactPhone(phone string) string {
	if phone == "" {
		return ""
	}
	if len(phone) < 7 {
		return "***"
	}
	return phone[:4] + strings.Repeat("*", len(phone)-6) + phone[len(phone)-2:]
}

// RedactEmail keeps the first two characters of the local part and the domain.
// Example: "ayesha@example.com" -> "ay***@example.com"
func RedactEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	if at <= 2 {
		return "***" + email[at:]
	}
	return email[:2] + "***" + email[at:]
}

// RedactToken keeps the first and last four characters of long secrets.
func RedactToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
