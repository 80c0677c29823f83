package out

import (
	"context"
	"net/http"

	authout "climblog/internal/modules/auth/port/out"
	"climblog/internal/platform/restclient"
)

type HTTPAuthenticator struct {
	client *restclient.Client
}

func NewHTTPAuthenticator(client *restclient.Client) authout.Authenticator {
	return &HTTPAuthenticator{client: client}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login posts the credentials to /auth/login. A success response without an
// access_token is reported as an APIError with no detail.
func (a *HTTPAuthenticator) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := a.client.Do(ctx, restclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   credentials{Username: username, Password: password},
		Out:    &out,
	})
	if err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", &restclient.APIError{Status: http.StatusOK}
	}
	return out.AccessToken, nil
}

func (a *HTTPAuthenticator) Signup(ctx context.Context, username, password string) error {
	return a.client.Do(ctx, restclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/signup",
		Body:   credentials{Username: username, Password: password},
	})
}
