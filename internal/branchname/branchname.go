// Package branchname derives branch names from issues and back again.
package branchname

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const maxSlugLength = 50

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
var issueBranch = regexp.MustCompile(`^issue-([0-9]+)`)

// Slugify converts free text into a URL/branch-safe slug: lowercase,
// every run of non-alphanumeric characters collapsed to a single hyphen,
// trimmed, and capped at 50 characters. Diacritics are dropped along with
// all other non-ASCII characters, not transliterated.
// Examples: "Fix Bug #123!" → "fix-bug-123", "São Paulo" → "s-o-paulo".
func Slugify(text string) string {
	slug := strings.ToLower(text)
	slug = nonAlnumRun.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
		slug = strings.TrimRight(slug, "-")
	}

	return slug
}

// ForIssue composes the branch name for an issue, e.g.
// ForIssue(42, "Add feature") → "issue-42-add-feature".
func ForIssue(issueNumber int, title string) string {
	return fmt.Sprintf("issue-%d-%s", issueNumber, Slugify(title))
}

// IssueNumber parses the issue number back out of a branch name. Only
// branches starting with the literal "issue-<digits>" prefix match;
// matching is case-sensitive.
func IssueNumber(branch string) (int, bool) {
	m := issueBranch.FindStringSubmatch(branch)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
