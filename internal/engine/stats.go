// Package engine holds the pure view-model transforms behind the
// dashboard, visit, prescription and user screens. Every function takes
// already-fetched lists, allocates fresh outputs and never mutates its
// inputs, so identical inputs always produce identical results.
package engine

import (
	"time"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

// VisitStatusCounts partitions visits by the closed status enumeration.
// Entries carrying an unknown status are not counted.
type VisitStatusCounts struct {
	Completed int `json:"completed"`
	Scheduled int `json:"scheduled"`
	Cancelled int `json:"cancelled"`
}

func (c VisitStatusCounts) Total() int {
	return c.Completed + c.Scheduled + c.Cancelled
}

func CountVisitStatuses(visits []model.Visit) VisitStatusCounts {
	var counts VisitStatusCounts
	for _, v := range visits {
		switch v.Status {
		case model.VisitStatusCompleted:
			counts.Completed++
		case model.VisitStatusScheduled:
			counts.Scheduled++
		case model.VisitStatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}

// VisitStats are the headline numbers on the visits screen.
type VisitStats struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Today     int `json:"today"`
}

func ComputeVisitStats(visits []model.Visit, now time.Time) VisitStats {
	counts := CountVisitStatuses(visits)
	stats := VisitStats{
		Total:     len(visits),
		Scheduled: counts.Scheduled,
		Completed: counts.Completed,
		Cancelled: counts.Cancelled,
	}
	for _, v := range visits {
		if v.ScheduledAt != nil && sameDay(*v.ScheduledAt, now) {
			stats.Today++
		}
	}
	return stats
}

// PrescriptionStats are the headline numbers on the prescriptions screen
// and the dashboard.
type PrescriptionStats struct {
	Total          int `json:"total"`
	Last24h        int `json:"last24h"`
	ThisWeek       int `json:"thisWeek"`
	ThisMonth      int `json:"thisMonth"`
	UniquePatients int `json:"uniquePatients"`
}

func ComputePrescriptionStats(prescriptions []model.Prescription, now time.Time) PrescriptionStats {
	stats := PrescriptionStats{Total: len(prescriptions)}

	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)
	patients := make(map[int64]struct{})

	for _, p := range prescriptions {
		if p.Patient.ID != 0 {
			patients[p.Patient.ID] = struct{}{}
		}
		if p.IssuedAt == nil {
			continue
		}
		issued := *p.IssuedAt
		// Exactly 24 hours old still counts; a minute older does not.
		if now.Sub(issued) <= 24*time.Hour {
			stats.Last24h++
		}
		if !issued.Before(weekAgo) {
			stats.ThisWeek++
		}
		if !issued.Before(monthAgo) {
			stats.ThisMonth++
		}
	}

	stats.UniquePatients = len(patients)
	return stats
}

// UniqueClinicians counts distinct clinicians appearing across visits.
func UniqueClinicians(visits []model.Visit) int {
	ids := make(map[int64]struct{})
	for _, v := range visits {
		if v.Clinician.ID != 0 {
			ids[v.Clinician.ID] = struct{}{}
		}
	}
	return len(ids)
}

// UserRoleCounts partitions staff accounts by role.
type UserRoleCounts struct {
	Total      int `json:"total"`
	Clinicians int `json:"clinicians"`
	Assistants int `json:"assistants"`
	Admins     int `json:"admins"`
}

func CountUserRoles(users []model.AdminUser) UserRoleCounts {
	counts := UserRoleCounts{Total: len(users)}
	for _, u := range users {
		switch u.Role {
		case model.RoleClinician:
			counts.Clinicians++
		case model.RoleAssistant:
			counts.Assistants++
		case model.RoleAdmin:
			counts.Admins++
		}
	}
	return counts
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
