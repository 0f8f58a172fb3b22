package googlecal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// NewOAuthConfig builds the installed-app OAuth config from a Google
// client secrets file, requesting read-only calendar access.
func NewOAuthConfig(credentialsPath string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(data, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	return config, nil
}

// autoSaveTokenSource wraps an oauth2.TokenSource and persists tokens
// whenever the underlying source refreshes them.
type autoSaveTokenSource struct {
	source    oauth2.TokenSource
	store     TokenStore
	lastToken *oauth2.Token
}

func (a *autoSaveTokenSource) Token() (*oauth2.Token, error) {
	token, err := a.source.Token()
	if err != nil {
		return nil, err
	}

	if a.lastToken == nil || a.lastToken.AccessToken != token.AccessToken {
		if err := a.store.SaveToken(token); err != nil {
			return nil, fmt.Errorf("save refreshed token: %w", err)
		}
		a.lastToken = token
	}
	return token, nil
}

// GetAuthenticatedClient returns an authenticated HTTP client. On
// first run it walks the user through the interactive OAuth flow,
// reading the authorization code from stdin; afterwards the stored
// token is reused and refreshed automatically.
func GetAuthenticatedClient(ctx context.Context, oauthConfig *oauth2.Config, store TokenStore) (*http.Client, error) {
	return getAuthenticatedClient(ctx, oauthConfig, store, os.Stdin)
}

func getAuthenticatedClient(ctx context.Context, oauthConfig *oauth2.Config, store TokenStore, codeReader io.Reader) (*http.Client, error) {
	token, err := store.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}

	if token == nil {
		authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

		fmt.Println("Bitte öffne folgende URL und autorisiere die Anwendung:")
		fmt.Println(authURL)
		fmt.Print("Autorisierungscode eingeben: ")

		var code string
		if _, err := fmt.Fscanln(codeReader, &code); err != nil {
			return nil, fmt.Errorf("read authorization code: %w", err)
		}

		token, err = oauthConfig.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("exchange authorization code: %w", err)
		}

		if err := store.SaveToken(token); err != nil {
			return nil, fmt.Errorf("save token: %w", err)
		}
	}

	tokenSource := &autoSaveTokenSource{
		source:    oauth2.ReuseTokenSource(token, oauthConfig.TokenSource(ctx, token)),
		store:     store,
		lastToken: token,
	}

	return oauth2.NewClient(ctx, tokenSource), nil
}
