package githuboauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	githubendpoint "golang.org/x/oauth2/github"
)

const defaultAPIBaseURL = "https://api.github.com"

// HTTPClient implements Client against the real GitHub API.
type HTTPClient struct {
	oauth      *oauth2.Config
	apiBaseURL string
}

func NewHTTPClient(clientID, clientSecret, redirectURL string) *HTTPClient {
	return &HTTPClient{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githubendpoint.Endpoint,
		},
		apiBaseURL: defaultAPIBaseURL,
	}
}

func (c *HTTPClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// ExchangeCode trades the authorization code for an access token and
// resolves the account's verified email. GitHub omits the email from
// the profile when it is private, so /user/emails is the fallback.
func (c *HTTPClient) ExchangeCode(ctx context.Context, code string) (User, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return User{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	httpClient := c.oauth.Client(ctx, token)

	user, err := c.fetchUser(ctx, httpClient)
	if err != nil {
		return User{}, err
	}

	if user.Email == "" {
		email, err := c.fetchPrimaryEmail(ctx, httpClient)
		if err != nil {
			return User{}, err
		}
		user.Email = email
	}

	if user.Email == "" {
		return User{}, fmt.Errorf("github account has no verified email")
	}

	return user, nil
}

func (c *HTTPClient) fetchUser(ctx context.Context, httpClient *http.Client) (User, error) {
	var payload struct {
		Login     string `json:"login"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.getJSON(ctx, httpClient, "/user", &payload); err != nil {
		return User{}, err
	}
	return User{Login: payload.Login, Email: payload.Email, AvatarURL: payload.AvatarURL}, nil
}

type emailEntry struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (c *HTTPClient) fetchPrimaryEmail(ctx context.Context, httpClient *http.Client) (string, error) {
	var emails []emailEntry
	if err := c.getJSON(ctx, httpClient, "/user/emails", &emails); err != nil {
		return "", err
	}
	return primaryEmail(emails), nil
}

func (c *HTTPClient) getJSON(ctx context.Context, httpClient *http.Client, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call github %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github %s response: %w", path, err)
	}
	return nil
}

// primaryEmail picks the primary verified address, falling back to any
// verified one. Unverified addresses are never used as owner identity.
func primaryEmail(emails []emailEntry) string {
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email
		}
	}
	return ""
}

var _ Client = (*HTTPClient)(nil)
