package apiclient

import (
	"context"
	"net/http"

	"github.com/mathewgeejo/cinemabase/shared/api"
	"github.com/mathewgeejo/cinemabase/shared/domain"
)

// Signup registers an account and returns its first session. An empty role
// means user.
func (c *APIClient) Signup(ctx context.Context, email, password, role string) (domain.Session, error) {
	var resp api.SessionResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/signup", "", api.SignupRequest{Email: email, Password: password, Role: role}, &resp)
	if err != nil {
		return domain.Session{}, err
	}
	return resp.Session(), nil
}

func (c *APIClient) Signin(ctx context.Context, email, password string) (domain.Session, error) {
	var resp api.SessionResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/signin", "", api.SigninRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return domain.Session{}, err
	}
	return resp.Session(), nil
}

// Signout revokes token on the server.
func (c *APIClient) Signout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/signout", token, nil, nil)
}

func (c *APIClient) Me(ctx context.Context, token string) (api.UserResponse, error) {
	var resp api.UserResponse
	err := c.do(ctx, http.MethodGet, "/v1/users/me", token, nil, &resp)
	return resp, err
}
