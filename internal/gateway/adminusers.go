package gateway

import (
	"context"
	"net/http"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

func (c *Client) ListUsers(ctx context.Context) ([]model.AdminUser, error) {
	var users []model.AdminUser
	err := c.do(ctx, http.MethodGet, "/admin/users", nil, nil, &users, "admin_users", "list")
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.AdminUser, error) {
	var user model.AdminUser
	err := c.do(ctx, http.MethodPost, "/admin/users", nil, req, &user, "admin_users", "create")
	if err != nil {
		return nil, err
	}
	return &user, nil
}
