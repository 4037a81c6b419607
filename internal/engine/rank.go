package engine

import (
	"sort"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

// TopPatient is one row in the most-prescribed-patients ranking.
type TopPatient struct {
	PatientID  int64   `json:"patientId"`
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Avatar     string  `json:"avatar"`
}

// TopPatients groups prescriptions by patient, ranks descending by
// count and returns the first n. Ties keep the order in which patients
// were first encountered in the input. Percentage is relative to the
// highest count.
func TopPatients(prescriptions []model.Prescription, n int) []TopPatient {
	index := make(map[int64]int)
	ranked := make([]TopPatient, 0)

	for _, p := range prescriptions {
		if p.Patient.ID == 0 {
			continue
		}
		if i, ok := index[p.Patient.ID]; ok {
			ranked[i].Count++
			continue
		}
		index[p.Patient.ID] = len(ranked)
		ranked = append(ranked, TopPatient{
			PatientID: p.Patient.ID,
			Name:      p.Patient.FullName(),
			Count:     1,
		})
	}

	maxCount := 1
	for _, r := range ranked {
		if r.Count > maxCount {
			maxCount = r.Count
		}
	}
	for i := range ranked {
		ranked[i].Percentage = float64(ranked[i].Count) / float64(maxCount) * 100
		ranked[i].Avatar = Initials(ranked[i].Name)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// RecentVisits returns the n most recently scheduled visits, newest
// first. Visits without a scheduled time are excluded.
func RecentVisits(visits []model.Visit, n int) []model.Visit {
	result := make([]model.Visit, 0, len(visits))
	for _, v := range visits {
		if v.ScheduledAt != nil {
			result = append(result, v)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ScheduledAt.After(*result[j].ScheduledAt)
	})
	if n >= 0 && len(result) > n {
		result = result[:n]
	}
	return result
}

// RecentPrescriptions returns the n most recently issued prescriptions,
// newest first. Entries without an issued-at time are excluded.
func RecentPrescriptions(prescriptions []model.Prescription, n int) []model.Prescription {
	result := make([]model.Prescription, 0, len(prescriptions))
	for _, p := range prescriptions {
		if p.IssuedAt != nil {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].IssuedAt.After(*result[j].IssuedAt)
	})
	if n >= 0 && len(result) > n {
		result = result[:n]
	}
	return result
}
