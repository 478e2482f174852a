package projection

import (
	"sort"
	"time"

	"chemstock/internal/domain/models"
)

// ProjectAll runs the engine over every record and aggregates the
// results. Input order is preserved in Items and in every filtered
// list; the collection order carries user-assigned display priority
// and is never resorted here.
func ProjectAll(chemicals []models.Chemical, reference time.Time) Portfolio {
	p := Portfolio{
		Items:         make([]Derived, 0, len(chemicals)),
		CriticalItems: []Derived{},
		WarningItems:  []Derived{},
		GapItems:      []Derived{},
	}

	for _, c := range chemicals {
		d := ProjectChemical(c, reference)
		p.Items = append(p.Items, d)

		p.Summary.Total++
		switch d.Status {
		case StatusCritical:
			p.Summary.Critical++
			p.CriticalItems = append(p.CriticalItems, d)
		case StatusWarning:
			p.Summary.Warning++
			p.WarningItems = append(p.WarningItems, d)
		case StatusLow:
			p.Summary.Low++
		default:
			p.Summary.OK++
		}

		if d.GapDays > 0 {
			p.Summary.WithGaps++
			p.GapItems = append(p.GapItems, d)
		}
	}

	return p
}

// SortGapsByUrgency returns a copy of items ordered by immediate days
// remaining, soonest depletion first. This is the procurement view of
// the gap list; the aggregator itself leaves order untouched.
func SortGapsByUrgency(items []Derived) []Derived {
	sorted := make([]Derived, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ImmediateDaysRemaining < sorted[j].ImmediateDaysRemaining
	})
	return sorted
}
