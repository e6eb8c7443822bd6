// Package githuboauth wraps the GitHub OAuth identity provider. The API
// trusts the verified email it returns as the task owner identifier and
// never handles credentials itself.
package githuboauth

import "context"

// Client defines the operations the login flow needs from the provider.
type Client interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (User, error)
}

// User is the authenticated GitHub identity.
type User struct {
	Login     string
	Email     string
	AvatarURL string
}
