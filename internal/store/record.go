// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// KeySuffix is the file extension carried by every key.
	KeySuffix = ".cmd"
	// UntitledBase is the key base used when a record has neither a name nor any command text.
	UntitledBase = "untitled_command"
	slugLength   = 20 // Maximum number of command characters used for a derived key.
)

// slugPattern matches a base name that could have been produced by BaseFor from command text.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,20}$`)

// Record is a single stored shell command.
type Record struct {
	// Name is the optional display name. An empty name means the label and key
	// are derived from the command text.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Command is the shell text. It may be empty.
	Command string `json:"command" yaml:"command"`
}

// HasName reports whether the record carries a usable display name.
func (r Record) HasName() bool {
	return strings.TrimSpace(r.Name) != ""
}

// Normalize clears blank names so that a name is either meaningful or absent.
func Normalize(r Record) Record {
	if !r.HasName() {
		r.Name = ""
	}

	return r
}

// Equal reports whether two records have the same name and command once normalized.
func Equal(a, b Record) bool {
	a, b = Normalize(a), Normalize(b)
	return a.Name == b.Name && a.Command == b.Command
}

// BaseFor returns the key base for the record, without the KeySuffix.
// The name is used verbatim when present. Otherwise the first 20 characters
// of the command are used with every character outside [A-Za-z0-9] replaced by `_`.
func BaseFor(r Record) string {
	if r.HasName() {
		return r.Name
	}

	runes := []rune(r.Command)
	if len(runes) > slugLength {
		runes = runes[:slugLength]
	}

	if len(runes) == 0 {
		return UntitledBase
	}

	for i, c := range runes {
		if !isASCIIAlnum(c) {
			runes[i] = '_'
		}
	}

	return string(runes)
}

// KeyFor returns the key the record is stored under when there is no collision.
func KeyFor(r Record) string {
	return BaseFor(r) + KeySuffix
}

// SuffixedKey returns the n-th collision candidate for the record, e.g. `Build-1.cmd`.
func SuffixedKey(r Record, n int) string {
	return fmt.Sprintf("%s-%d%s", BaseFor(r), n, KeySuffix)
}

// BaseName strips the KeySuffix from a key. Keys are flat, so any `/` is part of the base.
func BaseName(key string) string {
	return strings.TrimSuffix(key, KeySuffix)
}

// LooksLikeSlug reports whether base could be an automatically derived key base.
func LooksLikeSlug(base string) bool {
	return slugPattern.MatchString(base)
}

// IsExplicitName reports whether base should be treated as a name the user chose,
// given the command text it will label.
//
// A base that looks like a slug, or that the command text starts with, is taken
// to be derived. Short alphanumeric names such as `ls` are therefore never
// recognised as explicit.
func IsExplicitName(base, text string) bool {
	return !LooksLikeSlug(base) && !strings.HasPrefix(text, base)
}

// Label returns the text shown for a record in lists: the name, or the first line of the command.
func Label(r Record) string {
	if r.HasName() {
		return r.Name
	}

	first, _, _ := strings.Cut(strings.TrimSpace(r.Command), "\n")
	if first = strings.TrimSpace(first); first == "" {
		return "untitled command"
	}

	return first
}

func isASCIIAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
