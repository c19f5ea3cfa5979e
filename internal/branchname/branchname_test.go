package branchname

import (
	"regexp"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Fix Bug #123!", "fix-bug-123"},
		{"Add user settings", "add-user-settings"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"UPPER_case/mixed", "upper-case-mixed"},
		{"already-a-slug", "already-a-slug"},
		{"multiple---hyphens...here", "multiple-hyphens-here"},
		{"café au lait", "caf-au-lait"},
		{"日本語のみ", ""},
		{"!!!", ""},
		{"", ""},
		{strings.Repeat("a", 60), strings.Repeat("a", 50)},
		{strings.Repeat("ab ", 20), "ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab-ab"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Slugify(tt.input)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugifyShape(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9-]*$`)

	inputs := []string{
		"Fix Bug #123!", "---", "a--b", "Ünïcode everywhere",
		strings.Repeat("x-", 100), "0", "trailing hyphen -",
	}

	for _, input := range inputs {
		got := Slugify(input)
		if !valid.MatchString(got) {
			t.Errorf("Slugify(%q) = %q contains invalid characters", input, got)
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Errorf("Slugify(%q) = %q has leading/trailing hyphen", input, got)
		}
		if strings.Contains(got, "--") {
			t.Errorf("Slugify(%q) = %q has a hyphen run", input, got)
		}
		if len(got) > maxSlugLength {
			t.Errorf("Slugify(%q) = %q exceeds %d chars", input, got, maxSlugLength)
		}
	}
}

func TestForIssue(t *testing.T) {
	tests := []struct {
		number int
		title  string
		want   string
	}{
		{7, "Fix Bug #123!", "issue-7-fix-bug-123"},
		{42, "Add feature", "issue-42-add-feature"},
		{0, "", "issue-0-"},
		{123, "!!!", "issue-123-"},
	}

	for _, tt := range tests {
		got := ForIssue(tt.number, tt.title)
		if got != tt.want {
			t.Errorf("ForIssue(%d, %q) = %q, want %q", tt.number, tt.title, got, tt.want)
		}
	}
}

func TestIssueNumber(t *testing.T) {
	tests := []struct {
		branch string
		want   int
		wantOK bool
	}{
		{"issue-42-add-feature", 42, true},
		{"issue-7-fix-bug-123", 7, true},
		{"issue-0-", 0, true},
		{"issue-100", 100, true},
		{"feature-42", 0, false},
		{"ISSUE-42-x", 0, false},
		{"prefix-issue-42", 0, false},
		{"issue-", 0, false},
		{"main", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := IssueNumber(tt.branch)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("IssueNumber(%q) = (%d, %v), want (%d, %v)",
				tt.branch, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIssueNumberRoundTrip(t *testing.T) {
	titles := []string{"Fix Bug #123!", "", "日本語", "plain title"}
	for _, n := range []int{0, 1, 42, 999999} {
		for _, title := range titles {
			branch := ForIssue(n, title)
			got, ok := IssueNumber(branch)
			if !ok || got != n {
				t.Errorf("IssueNumber(ForIssue(%d, %q)) = (%d, %v), want (%d, true)",
					n, title, got, ok, n)
			}
		}
	}
}
