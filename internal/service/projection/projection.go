// Package projection implements the supply-timeline engine: pure
// functions that take a chemical record and a reference date and
// derive depletion metrics, a status classification, and a timeline
// of supply segments. The engine performs no I/O and never mutates
// its input, so it is safe to call concurrently.
package projection

import (
	"math"
	"sort"
	"time"

	"chemstock/internal/domain/models"
)

const daysPerMonth = 30.0

// ProjectChemical derives the full supply view for one migrated
// chemical record. Day offsets are measured from the reference date,
// truncated to its calendar day.
func ProjectChemical(c models.Chemical, reference time.Time) Derived {
	immediate := c.FactoryStock + c.LocalPurchase
	var totalImport float64
	for _, imp := range c.Imports {
		if imp.Quantity > 0 {
			totalImport += imp.Quantity
		}
	}

	d := Derived{
		Chemical:            c,
		ImmediateQuantity:   immediate,
		TotalImportQuantity: totalImport,
		TotalQuantity:       immediate + totalImport,
		Timeline:            []Segment{},
	}

	// No tracked consumption: the stock never depletes, so every day
	// metric is unbounded and there is no timeline to build.
	if c.UsePerDay <= 0 {
		d.ImmediateDaysRemaining = Unbounded()
		d.TotalDaysRemaining = Unbounded()
		d.TotalMonthsRemaining = Unbounded()
		d.Status = StatusOK
		return d
	}

	refDay := models.Midnight(reference)
	immediateDays := immediate / c.UsePerDay

	cursor := 0.0
	if immediate > 0 {
		d.Timeline = append(d.Timeline, Segment{
			Kind:         SegmentImmediateStock,
			StartDay:     0,
			EndDay:       immediateDays,
			DurationDays: immediateDays,
			Quantity:     immediate,
		})
		cursor = immediateDays
	}

	for _, sh := range orderShipments(c.Imports) {
		duration := sh.shipment.Quantity / c.UsePerDay

		seg := Segment{
			Kind:     SegmentImport,
			Quantity: sh.shipment.Quantity,
			Label:    sh.shipment.Label,
		}

		if sh.dated {
			seg.EstimatedArrival = sh.shipment.EstimatedArrival
			arrival := arrivalDayOffset(sh.arrival, refDay)
			if cursor < arrival {
				gapDays := arrival - cursor
				gapQty := gapDays * c.UsePerDay
				d.Timeline = append(d.Timeline, Segment{
					Kind:         SegmentGap,
					StartDay:     cursor,
					EndDay:       arrival,
					DurationDays: gapDays,
					Quantity:     gapQty,
				})
				d.GapDays += gapDays
				d.GapQuantity += gapQty
				cursor = arrival
			}
		}

		seg.StartDay = cursor
		seg.EndDay = cursor + duration
		seg.DurationDays = duration
		d.Timeline = append(d.Timeline, seg)
		cursor += duration
	}

	d.ImmediateDaysRemaining = Span(immediateDays)
	d.TotalDaysRemaining = Span(d.TotalQuantity / c.UsePerDay)
	d.TotalMonthsRemaining = Span(d.TotalQuantity / c.UsePerDay / daysPerMonth)
	d.TimelineEndDay = cursor
	d.Status = classify(immediateDays, d.GapDays)
	return d
}

type orderedShipment struct {
	shipment models.ImportShipment
	arrival  time.Time
	dated    bool
}

// orderShipments derives the processing order: dated shipments sorted
// ascending by arrival (stable, so equal dates keep input order),
// followed by undated shipments in input order. Shipments without a
// positive quantity are dropped outright, and an unparseable arrival
// date counts as undated.
func orderShipments(imports []models.ImportShipment) []orderedShipment {
	dated := make([]orderedShipment, 0, len(imports))
	undated := make([]orderedShipment, 0, len(imports))

	for _, imp := range imports {
		if imp.Quantity <= 0 {
			continue
		}
		if t, ok := models.ParseDate(imp.EstimatedArrival); ok {
			dated = append(dated, orderedShipment{shipment: imp, arrival: models.Midnight(t), dated: true})
		} else {
			undated = append(undated, orderedShipment{shipment: imp})
		}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].arrival.Before(dated[j].arrival)
	})

	return append(dated, undated...)
}

// arrivalDayOffset converts an arrival date into a whole-day offset
// from the reference day. Past-due arrivals clamp to day zero.
func arrivalDayOffset(arrival, reference time.Time) float64 {
	offset := math.Ceil(arrival.Sub(reference).Hours() / 24)
	if offset < 0 {
		return 0
	}
	return offset
}

// classify maps immediate stock coverage onto a status. A record that
// would be ok but has a supply gap ahead is raised to warning; the gap
// rule alone never escalates further.
func classify(immediateDays, gapDays float64) Status {
	switch {
	case immediateDays <= 3:
		return StatusCritical
	case immediateDays <= 10:
		return StatusWarning
	case immediateDays <= 20:
		return StatusLow
	}
	if gapDays > 0 {
		return StatusWarning
	}
	return StatusOK
}
