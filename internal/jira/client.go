// Package jira queries a Jira server for the issues assigned to the current user.
package jira

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/mikanfactory/jopen/internal/model"
)

const searchPath = "/rest/api/2/search"

// DefaultStatuses is the status set treated as active work.
var DefaultStatuses = []string{"To Do", "In Progress", "In Review"}

const (
	DefaultMaxResults = 50
	DefaultTimeout    = 10 * time.Second
)

// Client searches issues over the Jira REST API.
type Client struct {
	cfg    model.JiraConfig
	http   *http.Client
	logger *slog.Logger
}

// NewClient builds a client from cfg. A nil logger discards output.
func NewClient(cfg model.JiraConfig, logger *slog.Logger) *Client {
	if len(cfg.Statuses) == 0 {
		cfg.Statuses = DefaultStatuses
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type searchResponse struct {
	Issues []issueNode `json:"issues"`
}

type issueNode struct {
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// SearchAssignedActiveIssues returns issue key to detail for every issue
// assigned to the authenticated user in an active status. Any failure
// yields an empty map.
func (c *Client) SearchAssignedActiveIssues(ctx context.Context) map[string]model.IssueDetail {
	issues, err := c.search(ctx)
	if err != nil {
		c.logger.Warn("issue search degraded to empty result", "error", err)
		return map[string]model.IssueDetail{}
	}
	c.logger.Debug("issue search finished", "count", len(issues))
	return issues
}

func (c *Client) search(ctx context.Context) (map[string]model.IssueDetail, error) {
	if c.cfg.BaseURL == "" {
		return nil, fmt.Errorf("jira base url is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.Username != "" || c.cfg.Token != "" {
		req.SetBasicAuth(c.cfg.Username, c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching issues: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("searching issues: unexpected status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	issues := make(map[string]model.IssueDetail, len(body.Issues))
	for _, node := range body.Issues {
		if node.Key == "" {
			continue
		}
		issues[node.Key] = model.IssueDetail{
			Title:       node.Fields.Summary,
			Description: node.Fields.Description,
		}
	}
	return issues, nil
}

func (c *Client) searchURL() string {
	q := url.Values{}
	q.Set("jql", JQL(c.cfg.Statuses))
	q.Set("fields", "summary,description")
	q.Set("maxResults", strconv.Itoa(c.cfg.MaxResults))
	return strings.TrimRight(c.cfg.BaseURL, "/") + searchPath + "?" + q.Encode()
}

// jqlEscaper escapes the characters that end or break a double-quoted JQL string.
var jqlEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`)

// JQL builds the filter for active issues assigned to the current user,
// newest first.
func JQL(statuses []string) string {
	quoted := make([]string, len(statuses))
	for i, s := range statuses {
		quoted[i] = `"` + jqlEscaper.Replace(s) + `"`
	}
	return fmt.Sprintf("status in (%s) AND assignee = currentUser() ORDER BY created DESC",
		strings.Join(quoted, ", "))
}
