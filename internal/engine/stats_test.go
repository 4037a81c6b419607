package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

func ts(t time.Time) *time.Time {
	return &t
}

func visitWithStatus(status model.VisitStatus) model.Visit {
	return model.Visit{Status: status}
}

func TestCountVisitStatuses(t *testing.T) {
	visits := []model.Visit{
		visitWithStatus(model.VisitStatusCompleted),
		visitWithStatus(model.VisitStatusCompleted),
		visitWithStatus(model.VisitStatusScheduled),
	}

	counts := CountVisitStatuses(visits)
	assert.Equal(t, 2, counts.Completed)
	assert.Equal(t, 1, counts.Scheduled)
	assert.Equal(t, 0, counts.Cancelled)
}

func TestCountVisitStatusesPartitionSumsToLength(t *testing.T) {
	visits := []model.Visit{
		visitWithStatus(model.VisitStatusScheduled),
		visitWithStatus(model.VisitStatusCancelled),
		visitWithStatus(model.VisitStatusCompleted),
		visitWithStatus(model.VisitStatusScheduled),
		visitWithStatus(model.VisitStatusCompleted),
	}

	counts := CountVisitStatuses(visits)
	assert.Equal(t, len(visits), counts.Total())
}

func TestComputeVisitStatsToday(t *testing.T) {
	now := time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)

	visits := []model.Visit{
		{Status: model.VisitStatusScheduled, ScheduledAt: ts(now.Add(2 * time.Hour))},
		{Status: model.VisitStatusCompleted, ScheduledAt: ts(now.Add(-3 * time.Hour))},
		{Status: model.VisitStatusCompleted, ScheduledAt: ts(now.AddDate(0, 0, -1))},
		{Status: model.VisitStatusCancelled, ScheduledAt: nil},
	}

	stats := ComputeVisitStats(visits, now)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Today)
	assert.Equal(t, 1, stats.Scheduled)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 1, stats.Cancelled)
}

func TestPrescriptionStatsLast24hBoundary(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

	prescriptions := []model.Prescription{
		// Exactly 24 hours old counts.
		{IssuedAt: ts(now.Add(-24 * time.Hour)), Patient: model.PatientRef{ID: 1}},
		// One minute past 24 hours does not.
		{IssuedAt: ts(now.Add(-24*time.Hour - time.Minute)), Patient: model.PatientRef{ID: 2}},
	}

	stats := ComputePrescriptionStats(prescriptions, now)
	assert.Equal(t, 1, stats.Last24h)
	assert.Equal(t, 2, stats.Total)
}

func TestPrescriptionStatsWindows(t *testing.T) {
	now := time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

	prescriptions := []model.Prescription{
		{IssuedAt: ts(now.Add(-1 * time.Hour)), Patient: model.PatientRef{ID: 1}},
		{IssuedAt: ts(now.AddDate(0, 0, -3)), Patient: model.PatientRef{ID: 1}},
		{IssuedAt: ts(now.AddDate(0, 0, -20)), Patient: model.PatientRef{ID: 2}},
		{IssuedAt: ts(now.AddDate(0, -2, 0)), Patient: model.PatientRef{ID: 3}},
		{IssuedAt: nil, Patient: model.PatientRef{ID: 4}},
	}

	stats := ComputePrescriptionStats(prescriptions, now)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 1, stats.Last24h)
	assert.Equal(t, 2, stats.ThisWeek)
	assert.Equal(t, 3, stats.ThisMonth)
	assert.Equal(t, 4, stats.UniquePatients)
}

func TestUniqueClinicians(t *testing.T) {
	visits := []model.Visit{
		{Clinician: model.ClinicianRef{ID: 1}},
		{Clinician: model.ClinicianRef{ID: 2}},
		{Clinician: model.ClinicianRef{ID: 1}},
		{Clinician: model.ClinicianRef{}},
	}
	assert.Equal(t, 2, UniqueClinicians(visits))
}

func TestCountUserRoles(t *testing.T) {
	users := []model.AdminUser{
		{Role: model.RoleAdmin},
		{Role: model.RoleClinician},
		{Role: model.RoleClinician},
		{Role: model.RoleAssistant},
	}

	counts := CountUserRoles(users)
	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, 2, counts.Clinicians)
	assert.Equal(t, 1, counts.Assistants)
	assert.Equal(t, 1, counts.Admins)
}
