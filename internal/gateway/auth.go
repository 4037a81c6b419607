package gateway

import (
	"context"
	"net/http"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and user profile. Invalid
// credentials surface as an auth error carrying the server message.
func (c *Client) Login(ctx context.Context, email, password string) (*model.LoginData, error) {
	var data model.LoginData
	err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		loginRequest{Email: email, Password: password}, &data, "auth", "login")
	if err != nil {
		return nil, err
	}
	return &data, nil
}
