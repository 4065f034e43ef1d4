package pkg

import (
	"os"
	"regexp"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "callcheck" {
		t.Errorf("Expected Name to be %q, got %q", "callcheck", Name)
	}

	if got := Prefix(); got != "CALLCHECK_" {
		t.Errorf("Expected Prefix to be %q, got %q", "CALLCHECK_", got)
	}
}

func TestVersion(t *testing.T) {
	// Tests run in the package directory.
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version)
	}

	if !regexp.MustCompile(`^\d+\.\d+\.\d+`).MatchString(Version) {
		t.Errorf("Version %q is not semantic", Version)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("Expected Author to have at least one entry")
	}

	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}
