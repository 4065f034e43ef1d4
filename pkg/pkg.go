//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of callcheck embedded at build time.
// It is printed by the CLI's --version flag.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier. It names the
	// configuration and cache directories and prefixes environment variables.
	Name = "callcheck"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Check function calls against declared signatures"
)

// Prefix returns the prefix of environment variables recognized by callcheck,
// such as CALLCHECK_PATH.
func Prefix() string { return strings.ToUpper(Name) + "_" }

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
