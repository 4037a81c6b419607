package model

import "time"

type Prescription struct {
	ID           int64        `json:"id"`
	Medication   string       `json:"medication"`
	Dosage       string       `json:"dosage"`
	Instructions string       `json:"instructions"`
	IssuedAt     *time.Time   `json:"issuedAt"`
	Patient      PatientRef   `json:"patient"`
	Clinician    ClinicianRef `json:"clinician"`
}

type CreatePrescriptionRequest struct {
	PatientID    int64  `json:"patientId" binding:"required"`
	Medication   string `json:"medication" binding:"required"`
	Dosage       string `json:"dosage" binding:"required"`
	Instructions string `json:"instructions" binding:"max=2000"`
}

type CreatePrescriptionPayload struct {
	PatientID    int64  `json:"patientId"`
	ClinicianID  int64  `json:"clinicianId"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions,omitempty"`
}
