package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

// ListPrescriptions fetches all prescriptions, optionally bounded to an
// issued-at date range. Bounds are dates, not instants, matching the
// upstream from/to query contract.
func (c *Client) ListPrescriptions(ctx context.Context, from, to *time.Time) ([]model.Prescription, error) {
	query := url.Values{}
	if from != nil {
		query.Set("from", from.Format("2006-01-02"))
	}
	if to != nil {
		query.Set("to", to.Format("2006-01-02"))
	}

	var prescriptions []model.Prescription
	err := c.do(ctx, http.MethodGet, "/prescriptions", query, nil, &prescriptions, "prescriptions", "list")
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (c *Client) ListPrescriptionsForPatient(ctx context.Context, patientID int64) ([]model.Prescription, error) {
	var prescriptions []model.Prescription
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/prescriptions/patient/%d", patientID), nil, nil,
		&prescriptions, "prescriptions", "list_for_patient")
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (c *Client) CreatePrescription(ctx context.Context, payload *model.CreatePrescriptionPayload) (*model.Prescription, error) {
	var prescription model.Prescription
	err := c.do(ctx, http.MethodPost, "/prescriptions", nil, payload, &prescription, "prescriptions", "create")
	if err != nil {
		return nil, err
	}
	return &prescription, nil
}

// DownloadPrescription fetches the rendered PDF as raw bytes.
func (c *Client) DownloadPrescription(ctx context.Context, id int64) ([]byte, error) {
	return c.download(ctx, fmt.Sprintf("/prescriptions/%d/download", id), "prescriptions", "download")
}
