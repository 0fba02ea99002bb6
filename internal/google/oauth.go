package google

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DefaultAccount is the account name used when none is configured.
const DefaultAccount = "default"

// Scopes required to read Meet spaces and their active conferences.
var oauthScopes = []string{
	"https://www.googleapis.com/auth/meetings.space.readonly",
	"https://www.googleapis.com/auth/meetings.space.created",
}

var accountNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateAccountName rejects account names that could escape the token
// directory or produce surprising file names.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name must not be empty")
	}
	if !accountNamePattern.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, hyphen and underscore are allowed", account)
	}
	return nil
}

// getTokenFilePath returns the token file location for an account.
// Tokens live in the user cache dir, e.g. ~/.cache/meetpresence/google-default.token
func getTokenFilePath(account string) string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return filepath.Join(cacheDir, "meetpresence", fmt.Sprintf("google-%s.token", account))
}

// HasTokenForAccount checks if a stored OAuth token exists for the account.
func HasTokenForAccount(account string) bool {
	if err := validateAccountName(account); err != nil {
		return false
	}
	_, err := os.ReadFile(getTokenFilePath(account))
	return err == nil
}

// getOAuthConfig returns the OAuth2 configuration for the Meet API.
// Client credentials come from the environment so the binary ships none.
func getOAuthConfig() (*oauth2.Config, error) {
	clientID := os.Getenv("MEETPRESENCE_GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("MEETPRESENCE_GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("MEETPRESENCE_GOOGLE_CLIENT_ID and MEETPRESENCE_GOOGLE_CLIENT_SECRET must be set to use the meet-api source")
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       oauthScopes,
	}, nil
}

// GetAuthURLForAccount returns the OAuth URL for user authorization.
func GetAuthURLForAccount(account string) (string, error) {
	if err := validateAccountName(account); err != nil {
		return "", err
	}
	conf, err := getOAuthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state"), nil
}

// SaveTokenForAccount exchanges an authorization code for tokens and saves them.
func SaveTokenForAccount(ctx context.Context, account, authCode string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}

	conf, err := getOAuthConfig()
	if err != nil {
		return err
	}

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	tokenFile := getTokenFilePath(account)
	if err := os.MkdirAll(filepath.Dir(tokenFile), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(tokenFile, []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// GetTokenSourceForAccount returns an OAuth2 token source for the stored token.
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}

	conf, err := getOAuthConfig()
	if err != nil {
		return nil, err
	}

	slurp, err := os.ReadFile(getTokenFilePath(account))
	if err != nil {
		return nil, fmt.Errorf("no Google OAuth token found for account %q: %w", account, err)
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format in %s", getTokenFilePath(account))
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	// Force an immediate refresh so a revoked token fails here, not later.
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("cached token for account %q is invalid: %w", account, err)
	}

	return ts, nil
}

// GetHTTPClientForAccount returns an HTTP client configured with OAuth2
// authentication for the account.
func GetHTTPClientForAccount(ctx context.Context, account string) (*http.Client, error) {
	ts, err := GetTokenSourceForAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}

// GetAuthenticationErrorMessage returns guidance for a missing or invalid
// token, suitable for CLI output.
func GetAuthenticationErrorMessage(account string) string {
	return fmt.Sprintf("no valid Google OAuth token for account %q; run 'meetpresence auth --account %s' to authorize", account, account)
}
