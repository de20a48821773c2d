// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small text helpers shared by the screens.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	separators      = regexp.MustCompile(`[\s_]+`)
	slugInvalid     = regexp.MustCompile(`[^a-z0-9-]+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	titleCaser      = cases.Title(language.English)
)

// Slugify turns a label such as a guide category ("Pet Care & Grooming")
// into the token used in URLs and backend filters ("pet-care-grooming").
// Accents are folded, so "Café" becomes "cafe".
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	result = strings.ToLower(result)
	result = separators.ReplaceAllString(result, "-")
	result = slugInvalid.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug reports whether s is already in Slugify's output form.
func IsValidSlug(s string) bool {
	return s != "" && Slugify(s) == s
}

// Unslug renders a slug for display: "pet-care" becomes "Pet Care".
func Unslug(slug string) string {
	return titleCaser.String(strings.ReplaceAll(slug, "-", " "))
}
