// Package jira is the outbound client for the Jira Cloud REST API. It
// validates credential sets, lists the caller's projects, and reshapes the
// payloads into the dashboard schema. A client is built per request from the
// decrypted credential and never cached.
package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrInvalidCredentials is returned when Jira answers 401 to a credential check.
	ErrInvalidCredentials = errors.New("invalid Jira credentials")
	// ErrForbidden is returned when Jira answers 403.
	ErrForbidden = errors.New("access to Jira denied")
	// ErrSessionExpired is returned when a previously valid credential now gets 401.
	ErrSessionExpired = errors.New("Jira session expired")
	// ErrTimeout is returned when a call exceeds its bounded timeout.
	ErrTimeout = errors.New("request to Jira timed out")
	// ErrUnreachable covers connection failures and unexpected upstream statuses.
	ErrUnreachable = errors.New("cannot connect to Jira")
)

// Per-call timeouts. A hung upstream cannot stall the caller beyond these;
// there are no retries at this layer.
const (
	validateTimeout = 10 * time.Second
	projectsTimeout = 15 * time.Second
	detailsTimeout  = 10 * time.Second
)

// Client talks to one Jira instance on behalf of one user.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient builds a client for the given credential set. The domain is
// normalized first, so callers may pass any of "company.atlassian.net",
// "https://company.atlassian.net/" or "  COMPANY.ATLASSIAN.NET  ".
func NewClient(jiraDomain, email, apiToken string) *Client {
	domain := NormalizeDomain(jiraDomain)

	auth := base64.StdEncoding.EncodeToString([]byte(email + ":" + apiToken))

	return &Client{
		baseURL:    domain + "/rest/api/3/",
		authHeader: "Basic " + auth,
		httpClient: &http.Client{},
	}
}

// NormalizeDomain trims whitespace, lower-cases, strips a leading scheme and
// trailing slashes, then prefixes https://.
func NormalizeDomain(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimRight(d, "/")
	return "https://" + d
}

// ValidateCredentials performs the "who am I" call. A nil return means the
// credential set is usable.
func (c *Client) ValidateCredentials(ctx context.Context) error {
	resp, err := c.get(ctx, "myself", validateTimeout)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return ErrInvalidCredentials
	case http.StatusForbidden:
		return ErrForbidden
	default:
		slog.Error("Jira credential validation failed",
			"status", resp.StatusCode,
		)
		return ErrUnreachable
	}
}

// GetUserProjects lists every project the credential can see, formatted for
// the dashboard and enriched best-effort with per-project details.
func (c *Client) GetUserProjects(ctx context.Context) ([]Project, error) {
	resp, err := c.get(ctx, "project", projectsTimeout)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrSessionExpired
	default:
		slog.Error("failed to fetch Jira projects", "status", resp.StatusCode)
		return nil, ErrUnreachable
	}

	var raw []rawProject
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode projects response: %w", err)
	}

	projects := make([]Project, 0, len(raw))
	for i := range raw {
		p := formatProject(&raw[i])

		// Enrichment is best-effort: a failure is logged and the project is
		// returned with base fields only.
		if err := c.enrichProject(ctx, &p); err != nil {
			slog.Warn("could not fetch additional details for project",
				"project_key", p.Key,
				"error", err.Error(),
			)
		}

		projects = append(projects, p)
	}

	return projects, nil
}

// enrichProject fetches issue types and style metadata for one project.
func (c *Client) enrichProject(ctx context.Context, p *Project) error {
	resp, err := c.get(ctx, "project/"+url.PathEscape(p.Key), detailsTimeout)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("project details returned status %d", resp.StatusCode)
	}

	var raw rawProject
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode project details: %w", err)
	}

	applyProjectDetails(p, &raw)
	return nil
}

// get issues one bounded GET against the versioned REST base path and maps
// transport failures to the typed errors. The timeout covers the whole call,
// including reading the response headers.
func (c *Client) get(ctx context.Context, path string, timeout time.Duration) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{
		Timeout:   timeout,
		Transport: c.httpClient.Transport,
	}

	resp, err := client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, ErrTimeout
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	return resp, nil
}
