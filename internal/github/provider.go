// Package github talks to the issue tracker through the gh CLI.
package github

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mikanfactory/kodama/internal/model"
	"github.com/mikanfactory/kodama/internal/proc"
)

const issueListLimit = 100

var issueFields = "number,title,body,labels,assignees,state,url"

// ParseError reports structured output that could not be decoded, naming
// its source.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Provider lists, fetches, and assigns issues for one repository.
type Provider struct {
	Runner proc.Runner
	Dir    string
}

// issueJSON mirrors the gh `--json` field set for issues.
type issueJSON struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Labels    []struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	} `json:"labels"`
	Assignees []struct {
		Login string `json:"login"`
	} `json:"assignees"`
	State string `json:"state"`
	URL   string `json:"url"`
}

func (j issueJSON) toModel() model.Issue {
	issue := model.Issue{
		Number: j.Number,
		Title:  j.Title,
		Body:   j.Body,
		State:  j.State,
		URL:    j.URL,
	}
	for _, l := range j.Labels {
		issue.Labels = append(issue.Labels, model.Label{Name: l.Name, Color: l.Color})
	}
	for _, a := range j.Assignees {
		issue.Assignees = append(issue.Assignees, a.Login)
	}
	return issue
}

func (p *Provider) gh(args ...string) proc.Result {
	return p.Runner.Run(proc.RunOpts{Dir: p.Dir, Name: "gh", Args: args})
}

func (p *Provider) ghStrict(args ...string) (string, error) {
	return proc.RunStrict(p.Runner, proc.RunOpts{Dir: p.Dir, Name: "gh", Args: args})
}

// ListOpen fetches the open issues for the repository, bounded to the first
// page. An empty response is an empty list, not an error.
func (p *Provider) ListOpen() ([]model.Issue, error) {
	out, err := p.ghStrict("issue", "list",
		"--state", "open",
		"--limit", strconv.Itoa(issueListLimit),
		"--json", issueFields)
	if err != nil {
		return nil, fmt.Errorf("listing open issues: %w", err)
	}

	if strings.TrimSpace(out) == "" {
		return nil, nil
	}

	var raw []issueJSON
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, &ParseError{Source: "GitHub issues", Err: err}
	}

	issues := make([]model.Issue, 0, len(raw))
	for _, j := range raw {
		issues = append(issues, j.toModel())
	}
	return issues, nil
}

// Issue fetches a single issue by number. A missing issue is (nil, nil);
// transport and auth failures are real errors.
func (p *Provider) Issue(number int) (*model.Issue, error) {
	res := p.gh("issue", "view", strconv.Itoa(number), "--json", issueFields)
	if res.ExitCode != 0 {
		if isNotFound(res.Stderr) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching issue #%d: %s", number, strings.TrimSpace(res.Stderr))
	}

	var raw issueJSON
	if err := json.Unmarshal([]byte(res.Stdout), &raw); err != nil {
		return nil, &ParseError{Source: fmt.Sprintf("GitHub issue #%d", number), Err: err}
	}

	issue := raw.toModel()
	return &issue, nil
}

// isNotFound recognizes gh's not-found phrasing for issue lookups.
func isNotFound(stderr string) bool {
	return strings.Contains(stderr, "Could not resolve") ||
		strings.Contains(stderr, "no issues match") ||
		strings.Contains(stderr, "not found")
}

// AssignToSelf adds the authenticated user as an assignee on the issue.
func (p *Provider) AssignToSelf(number int) error {
	if _, err := p.ghStrict("issue", "edit", strconv.Itoa(number), "--add-assignee", "@me"); err != nil {
		return fmt.Errorf("assigning issue #%d: %w", number, err)
	}
	return nil
}

// CurrentUser returns the authenticated user's login.
func (p *Provider) CurrentUser() (string, error) {
	out, err := p.ghStrict("api", "user", "-q", ".login")
	if err != nil {
		return "", fmt.Errorf("getting current user: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// RepoFullName returns the repository's "owner/name" identifier.
func (p *Provider) RepoFullName() (string, error) {
	out, err := p.ghStrict("repo", "view", "--json", "nameWithOwner", "-q", ".nameWithOwner")
	if err != nil {
		return "", fmt.Errorf("getting repository name: %w", err)
	}
	return strings.TrimSpace(out), nil
}
