package engine

import (
	"sort"
	"strings"
	"time"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

// Categorical filter wildcard.
const FilterAll = "all"

// Date-range options on the visits screen.
const (
	RangeAll      = "all"
	RangeToday    = "today"
	RangeWeek     = "week"
	RangeMonth    = "month"
	RangeUpcoming = "upcoming"
)

// VisitFilter narrows and orders the visit list. Search matches the
// patient and clinician names, case-insensitively.
type VisitFilter struct {
	Status    string
	DateRange string
	Search    string
}

// FilterVisits returns a fresh list of visits matching the filter,
// sorted newest first. Visits with no scheduled time sort as the oldest
// possible value instead of failing.
func FilterVisits(visits []model.Visit, filter VisitFilter, now time.Time) []model.Visit {
	result := make([]model.Visit, 0, len(visits))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	term := strings.ToLower(filter.Search)

	for _, v := range visits {
		if filter.Status != "" && filter.Status != FilterAll && string(v.Status) != filter.Status {
			continue
		}
		if !visitInRange(v, filter.DateRange, today) {
			continue
		}
		if term != "" {
			patientName := strings.ToLower(v.Patient.FullName())
			clinicianName := strings.ToLower(v.Clinician.FullName)
			if !strings.Contains(patientName, term) && !strings.Contains(clinicianName, term) {
				continue
			}
		}
		result = append(result, v)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return timeOrZero(result[i].ScheduledAt).After(timeOrZero(result[j].ScheduledAt))
	})
	return result
}

func visitInRange(v model.Visit, dateRange string, today time.Time) bool {
	if dateRange == "" || dateRange == RangeAll {
		return true
	}
	if v.ScheduledAt == nil {
		return false
	}
	at := *v.ScheduledAt

	switch dateRange {
	case RangeToday:
		return sameDay(at, today)
	case RangeWeek:
		return !at.Before(today.AddDate(0, 0, -7))
	case RangeMonth:
		return !at.Before(today.AddDate(0, -1, 0))
	case RangeUpcoming:
		return !at.Before(today)
	default:
		return true
	}
}

// Prescription sort keys.
const (
	SortByIssuedAt   = "issuedAt"
	SortByMedication = "medication"
	SortByPatient    = "patient"
)

// PrescriptionFilter narrows and orders the prescription list. Search
// matches patient name, clinician name and medication.
type PrescriptionFilter struct {
	Search string
	SortBy string
	Order  model.SortDirection
}

// FilterPrescriptions returns a fresh filtered, sorted list. The sort is
// stable and total: string keys compare case-insensitively and a missing
// issued-at timestamp orders as the lowest value. Applying the same
// filter to its own output is a fixed point.
func FilterPrescriptions(prescriptions []model.Prescription, filter PrescriptionFilter) []model.Prescription {
	result := make([]model.Prescription, 0, len(prescriptions))
	term := strings.ToLower(filter.Search)

	for _, p := range prescriptions {
		if term != "" {
			patientName := strings.ToLower(p.Patient.FullName())
			clinicianName := strings.ToLower(p.Clinician.FullName)
			medication := strings.ToLower(p.Medication)
			if !strings.Contains(patientName, term) &&
				!strings.Contains(clinicianName, term) &&
				!strings.Contains(medication, term) {
				continue
			}
		}
		result = append(result, p)
	}

	less := prescriptionLess(filter.SortBy)
	asc := filter.Order == model.SortAsc
	sort.SliceStable(result, func(i, j int) bool {
		if asc {
			return less(result[i], result[j])
		}
		return less(result[j], result[i])
	})
	return result
}

func prescriptionLess(sortBy string) func(a, b model.Prescription) bool {
	switch sortBy {
	case SortByMedication:
		return func(a, b model.Prescription) bool {
			return strings.ToLower(a.Medication) < strings.ToLower(b.Medication)
		}
	case SortByPatient:
		return func(a, b model.Prescription) bool {
			return strings.ToLower(a.Patient.FullName()) < strings.ToLower(b.Patient.FullName())
		}
	default:
		return func(a, b model.Prescription) bool {
			return timeOrZero(a.IssuedAt).Before(timeOrZero(b.IssuedAt))
		}
	}
}

// UserFilter narrows the staff account list. Role matches exactly;
// search matches full name and email.
type UserFilter struct {
	Role   string
	Search string
}

func FilterUsers(users []model.AdminUser, filter UserFilter) []model.AdminUser {
	result := make([]model.AdminUser, 0, len(users))
	term := strings.ToLower(filter.Search)

	for _, u := range users {
		if filter.Role != "" && filter.Role != FilterAll && u.Role != filter.Role {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(u.FullName), term) &&
			!strings.Contains(strings.ToLower(u.Email), term) {
			continue
		}
		result = append(result, u)
	}
	return result
}

// Patient sort fields.
const (
	SortByFirstName = "firstName"
	SortByLastName  = "lastName"
	SortByEmail     = "email"
)

// SortPatients returns a fresh list ordered by the given field. Unknown
// fields fall back to last name.
func SortPatients(patients []model.Patient, field string, dir model.SortDirection) []model.Patient {
	result := make([]model.Patient, len(patients))
	copy(result, patients)

	key := func(p model.Patient) string {
		switch field {
		case SortByFirstName:
			return strings.ToLower(p.FirstName)
		case SortByEmail:
			return strings.ToLower(p.Email)
		default:
			return strings.ToLower(p.LastName)
		}
	}

	asc := dir != model.SortDesc
	sort.SliceStable(result, func(i, j int) bool {
		if asc {
			return key(result[i]) < key(result[j])
		}
		return key(result[j]) < key(result[i])
	})
	return result
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
