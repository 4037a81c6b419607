package model

import "time"

type VisitStatus string

// Visit status is a closed enumeration; the API never returns anything
// else and the portal never invents new states.
const (
	VisitStatusScheduled VisitStatus = "SCHEDULED"
	VisitStatusCompleted VisitStatus = "COMPLETED"
	VisitStatusCancelled VisitStatus = "CANCELLED"
)

type Visit struct {
	ID          int64        `json:"id"`
	ScheduledAt *time.Time   `json:"scheduledAt"`
	Status      VisitStatus  `json:"status"`
	Notes       string       `json:"notes,omitempty"`
	Patient     PatientRef   `json:"patient"`
	Clinician   ClinicianRef `json:"clinician"`
}

type CreateVisitRequest struct {
	PatientID   int64     `json:"patientId" binding:"required"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Status      string    `json:"status" binding:"required,oneof=SCHEDULED COMPLETED CANCELLED"`
	Notes       string    `json:"notes" binding:"max=1000"`
}

// CreateVisitPayload is the upstream wire shape; the clinician is filled
// in from the current session, not from client input.
type CreateVisitPayload struct {
	PatientID   int64     `json:"patientId"`
	ClinicianID int64     `json:"clinicianId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
}
