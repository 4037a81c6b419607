package gateway

import (
	"context"
	"net/http"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

func (c *Client) ListVisits(ctx context.Context) ([]model.Visit, error) {
	var visits []model.Visit
	err := c.do(ctx, http.MethodGet, "/visits", nil, nil, &visits, "visits", "list")
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (c *Client) CreateVisit(ctx context.Context, payload *model.CreateVisitPayload) (*model.Visit, error) {
	var visit model.Visit
	err := c.do(ctx, http.MethodPost, "/visits", nil, payload, &visit, "visits", "create")
	if err != nil {
		return nil, err
	}
	return &visit, nil
}
