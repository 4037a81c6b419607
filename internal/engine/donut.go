package engine

import "github.com/jwalitptl/clinic-portal/internal/model"

// DonutSegment is one slice of the visit-status donut. Offset is the
// cumulative percentage consumed by the segments emitted before it.
type DonutSegment struct {
	Offset float64           `json:"offset"`
	Value  float64           `json:"value"`
	Status model.VisitStatus `json:"status"`
}

// DonutSegments derives the donut slices from status counts. Segment
// order is fixed (completed, scheduled, cancelled) and zero-count
// statuses are omitted rather than emitted with value 0. An empty total
// produces no segments at all.
func DonutSegments(counts VisitStatusCounts) []DonutSegment {
	total := counts.Total()
	if total == 0 {
		return []DonutSegment{}
	}

	ordered := []struct {
		status model.VisitStatus
		count  int
	}{
		{model.VisitStatusCompleted, counts.Completed},
		{model.VisitStatusScheduled, counts.Scheduled},
		{model.VisitStatusCancelled, counts.Cancelled},
	}

	segments := make([]DonutSegment, 0, len(ordered))
	offset := 0.0
	for _, entry := range ordered {
		if entry.count == 0 {
			continue
		}
		value := float64(entry.count) / float64(total) * 100
		segments = append(segments, DonutSegment{
			Offset: offset,
			Value:  value,
			Status: entry.status,
		})
		offset += value
	}
	return segments
}
