package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"
)

const apiBase = "https://api.github.com"

// Client talks to the GitHub OAuth and REST endpoints on behalf of a user.
// Access tokens are passed per call and never stored on the client.
type Client struct {
	oauth *oauth2.Config
	http  *http.Client
	base  string
}

func NewClient(clientID, clientSecret, redirectURI string) *Client {
	return &Client{
		base: apiBase,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     oauthgithub.Endpoint,
		},
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// AuthorizeURL builds the GitHub consent page URL for the given state value.
func (c *Client) AuthorizeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("github: code exchange failed: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("github: code exchange returned an empty token")
	}
	return tok.AccessToken, nil
}

type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
	HTMLURL   string `json:"html_url"`
}

type Repository struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	FullName        string   `json:"full_name"`
	Description     string   `json:"description"`
	HTMLURL         string   `json:"html_url"`
	Language        string   `json:"language"`
	Topics          []string `json:"topics"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
}

// GetUser returns the profile of the token's owner.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	var u User
	if err := c.get(ctx, accessToken, "/user", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListRepos returns the owner-affiliated repositories of the token's owner,
// most recently pushed first.
func (c *Client) ListRepos(ctx context.Context, accessToken string, page, size int) ([]Repository, error) {
	q := url.Values{}
	q.Set("sort", "pushed")
	q.Set("affiliation", "owner")
	q.Set("page", fmt.Sprint(page))
	q.Set("per_page", fmt.Sprint(size))

	repos := make([]Repository, 0, size)
	if err := c.get(ctx, accessToken, "/user/repos?"+q.Encode(), &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// GetRepo returns a single repository, or nil when it does not exist or the
// token cannot see it.
func (c *Client) GetRepo(ctx context.Context, accessToken, owner, name string) (*Repository, error) {
	var repo Repository
	path := fmt.Sprintf("/repos/%s/%s", url.PathEscape(owner), url.PathEscape(name))
	err := c.get(ctx, accessToken, path, &repo)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &repo, nil
}

type apiError struct {
	status int
	path   string
}

// Error never includes the access token, only the path and status.
func (e *apiError) Error() string {
	return fmt.Sprintf("github: GET %s returned %d", e.path, e.status)
}

func isNotFound(err error) bool {
	apiErr, ok := err.(*apiError)
	return ok && apiErr.status == http.StatusNotFound
}

func (c *Client) get(ctx context.Context, accessToken, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "DevHub")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("github: GET %s: %w", path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return &apiError{status: resp.StatusCode, path: path}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
