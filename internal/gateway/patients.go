package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

// ListPatients fetches one page of patients, optionally narrowed by a
// server-side search term.
func (c *Client) ListPatients(ctx context.Context, page, size int, search string) (*model.Page[model.Patient], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	if search != "" {
		query.Set("search", search)
	}

	var result model.Page[model.Patient]
	err := c.do(ctx, http.MethodGet, "/patients", query, nil, &result, "patients", "list")
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	var patient model.Patient
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/patients/%d", id), nil, nil, &patient, "patients", "get")
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (c *Client) CreatePatient(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	var created model.Patient
	err := c.do(ctx, http.MethodPost, "/patients", nil, patient, &created, "patients", "create")
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdatePatient(ctx context.Context, id int64, patient *model.Patient) (*model.Patient, error) {
	var updated model.Patient
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/patients/%d", id), nil, patient, &updated, "patients", "update")
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeletePatient(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/patients/%d", id), nil, nil, nil, "patients", "delete")
}
