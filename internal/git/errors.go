package git

import "strings"

const fatalPrefix = "fatal:"

// CleanGitError turns raw git stderr into a user-facing message: a leading
// "fatal:" token is stripped case-insensitively, surrounding whitespace is
// trimmed, and the two known lock-state failures map to fixed sentences.
// Everything else passes through verbatim.
func CleanGitError(msg string) string {
	cleaned := strings.TrimSpace(msg)

	if len(cleaned) >= len(fatalPrefix) && strings.EqualFold(cleaned[:len(fatalPrefix)], fatalPrefix) {
		cleaned = strings.TrimSpace(cleaned[len(fatalPrefix):])
	}

	if strings.Contains(cleaned, "is already locked") {
		return "This worktree is already locked."
	}
	if strings.Contains(cleaned, "is not locked") {
		return "This worktree is not locked."
	}

	return cleaned
}
