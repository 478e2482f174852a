package projection

import (
	"reflect"
	"testing"
	"time"

	"chemstock/internal/domain/models"
)

var reference = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func chem(factory, local, usePerDay float64, imports ...models.ImportShipment) models.Chemical {
	if imports == nil {
		imports = []models.ImportShipment{}
	}
	return models.Chemical{
		ID:            "c1",
		Name:          "Soda Ash",
		Unit:          "bags",
		FactoryStock:  factory,
		LocalPurchase: local,
		UsePerDay:     usePerDay,
		Imports:       imports,
	}
}

// eta renders a date offset days after the reference as stored.
func eta(offset int) string {
	return reference.AddDate(0, 0, offset).Format(models.DateLayout)
}

func checkSegment(t *testing.T, seg Segment, kind SegmentKind, start, end float64) {
	t.Helper()
	if seg.Kind != kind {
		t.Errorf("segment kind = %q, want %q", seg.Kind, kind)
	}
	if seg.StartDay != start || seg.EndDay != end {
		t.Errorf("segment span = [%v,%v), want [%v,%v)", seg.StartDay, seg.EndDay, start, end)
	}
	if seg.DurationDays != end-start {
		t.Errorf("segment duration = %v, want %v", seg.DurationDays, end-start)
	}
}

func TestProjectChemicalNoConsumption(t *testing.T) {
	d := ProjectChemical(chem(500, 20, 0, models.ImportShipment{Quantity: 100, EstimatedArrival: eta(5)}), reference)

	for name, span := range map[string]Span{
		"immediateDaysRemaining": d.ImmediateDaysRemaining,
		"totalDaysRemaining":     d.TotalDaysRemaining,
		"totalMonthsRemaining":   d.TotalMonthsRemaining,
	} {
		if !span.IsUnbounded() {
			t.Errorf("%s = %v, want unbounded", name, span)
		}
	}
	if d.Status != StatusOK {
		t.Errorf("status = %q, want ok", d.Status)
	}
	if d.GapDays != 0 || d.GapQuantity != 0 {
		t.Errorf("gap = %v days / %v, want zero", d.GapDays, d.GapQuantity)
	}
	if d.Timeline == nil || len(d.Timeline) != 0 {
		t.Errorf("timeline = %+v, want empty", d.Timeline)
	}
	if d.TotalQuantity != 620 {
		t.Errorf("totalQuantity = %v, want 620", d.TotalQuantity)
	}
}

func TestProjectChemicalImmediateStockOnly(t *testing.T) {
	d := ProjectChemical(chem(30, 0, 10), reference)

	if got, ok := d.ImmediateDaysRemaining.Days(); !ok || got != 3 {
		t.Errorf("immediateDaysRemaining = %v, want 3", d.ImmediateDaysRemaining)
	}
	if d.Status != StatusCritical {
		t.Errorf("status = %q, want critical", d.Status)
	}
	if len(d.Timeline) != 1 {
		t.Fatalf("timeline has %d segments, want 1", len(d.Timeline))
	}
	checkSegment(t, d.Timeline[0], SegmentImmediateStock, 0, 3)
	if d.Timeline[0].Quantity != 30 {
		t.Errorf("segment quantity = %v, want 30", d.Timeline[0].Quantity)
	}
	if got, ok := d.TotalDaysRemaining.Days(); !ok || got != 3 {
		t.Errorf("totalDaysRemaining = %v, want 3", d.TotalDaysRemaining)
	}
	if d.TimelineEndDay != 3 {
		t.Errorf("timelineEndDay = %v, want 3", d.TimelineEndDay)
	}
}

func TestProjectChemicalGapBeforeDatedImport(t *testing.T) {
	d := ProjectChemical(chem(30, 0, 10, models.ImportShipment{Quantity: 100, EstimatedArrival: eta(5)}), reference)

	if len(d.Timeline) != 3 {
		t.Fatalf("timeline has %d segments, want 3: %+v", len(d.Timeline), d.Timeline)
	}
	checkSegment(t, d.Timeline[0], SegmentImmediateStock, 0, 3)
	checkSegment(t, d.Timeline[1], SegmentGap, 3, 5)
	checkSegment(t, d.Timeline[2], SegmentImport, 5, 15)

	if d.Timeline[1].Quantity != 20 {
		t.Errorf("gap segment quantity = %v, want 20", d.Timeline[1].Quantity)
	}
	if d.GapDays != 2 || d.GapQuantity != 20 {
		t.Errorf("gap totals = %v days / %v, want 2 / 20", d.GapDays, d.GapQuantity)
	}
	if d.Timeline[2].EstimatedArrival != eta(5) {
		t.Errorf("import segment arrival = %q, want %q", d.Timeline[2].EstimatedArrival, eta(5))
	}
	if got, ok := d.TotalDaysRemaining.Days(); !ok || got != 13 {
		t.Errorf("totalDaysRemaining = %v, want 13", d.TotalDaysRemaining)
	}
	if d.TimelineEndDay != 15 {
		t.Errorf("timelineEndDay = %v, want 15", d.TimelineEndDay)
	}
}

func TestProjectChemicalUndatedProcessedAfterDated(t *testing.T) {
	// The undated shipment comes first in input order but must be
	// processed after every dated one.
	d := ProjectChemical(chem(0, 0, 10,
		models.ImportShipment{Quantity: 50, Label: "undated"},
		models.ImportShipment{Quantity: 50, EstimatedArrival: eta(10), Label: "dated"},
	), reference)

	if len(d.Timeline) != 3 {
		t.Fatalf("timeline has %d segments, want 3: %+v", len(d.Timeline), d.Timeline)
	}
	checkSegment(t, d.Timeline[0], SegmentGap, 0, 10)
	checkSegment(t, d.Timeline[1], SegmentImport, 10, 15)
	checkSegment(t, d.Timeline[2], SegmentImport, 15, 20)

	if d.Timeline[1].Label != "dated" || d.Timeline[2].Label != "undated" {
		t.Errorf("processing order wrong: %q then %q", d.Timeline[1].Label, d.Timeline[2].Label)
	}
	if d.Timeline[2].EstimatedArrival != "" {
		t.Errorf("undated segment carries arrival %q", d.Timeline[2].EstimatedArrival)
	}
	if d.GapDays != 10 {
		t.Errorf("gapDays = %v, want 10", d.GapDays)
	}
	if d.TimelineEndDay != 20 {
		t.Errorf("timelineEndDay = %v, want 20", d.TimelineEndDay)
	}
}

func TestProjectChemicalPastDueArrivalClampsToToday(t *testing.T) {
	d := ProjectChemical(chem(0, 0, 10, models.ImportShipment{Quantity: 50, EstimatedArrival: eta(-3)}), reference)

	if len(d.Timeline) != 1 {
		t.Fatalf("timeline has %d segments, want 1: %+v", len(d.Timeline), d.Timeline)
	}
	checkSegment(t, d.Timeline[0], SegmentImport, 0, 5)
	if d.GapDays != 0 {
		t.Errorf("gapDays = %v, want 0", d.GapDays)
	}
}

func TestProjectChemicalIgnoresNonPositiveShipments(t *testing.T) {
	d := ProjectChemical(chem(30, 0, 10,
		models.ImportShipment{Quantity: 0, EstimatedArrival: eta(5)},
		models.ImportShipment{Quantity: -10, EstimatedArrival: eta(6)},
	), reference)

	if d.TotalImportQuantity != 0 {
		t.Errorf("totalImportQuantity = %v, want 0", d.TotalImportQuantity)
	}
	if d.TotalQuantity != 30 {
		t.Errorf("totalQuantity = %v, want 30", d.TotalQuantity)
	}
	if len(d.Timeline) != 1 {
		t.Errorf("timeline has %d segments, want only immediate stock", len(d.Timeline))
	}
	if d.GapDays != 0 {
		t.Errorf("gapDays = %v, want 0", d.GapDays)
	}
}

func TestProjectChemicalMalformedArrivalTreatedAsUndated(t *testing.T) {
	d := ProjectChemical(chem(30, 0, 10, models.ImportShipment{Quantity: 50, EstimatedArrival: "next month"}), reference)

	if len(d.Timeline) != 2 {
		t.Fatalf("timeline has %d segments, want 2: %+v", len(d.Timeline), d.Timeline)
	}
	checkSegment(t, d.Timeline[1], SegmentImport, 3, 8)
	if d.Timeline[1].EstimatedArrival != "" {
		t.Errorf("segment echoes malformed arrival %q", d.Timeline[1].EstimatedArrival)
	}
	if d.GapDays != 0 {
		t.Errorf("gapDays = %v, want 0", d.GapDays)
	}
}

func TestProjectChemicalZeroImmediateStockEmitsNoSegment(t *testing.T) {
	d := ProjectChemical(chem(0, 0, 10), reference)

	if len(d.Timeline) != 0 {
		t.Errorf("timeline = %+v, want empty", d.Timeline)
	}
	if got, ok := d.ImmediateDaysRemaining.Days(); !ok || got != 0 {
		t.Errorf("immediateDaysRemaining = %v, want 0", d.ImmediateDaysRemaining)
	}
	if d.Status != StatusCritical {
		t.Errorf("status = %q, want critical", d.Status)
	}
	if d.TimelineEndDay != 0 {
		t.Errorf("timelineEndDay = %v, want 0", d.TimelineEndDay)
	}
}

func TestProjectChemicalEqualArrivalsKeepInputOrder(t *testing.T) {
	d := ProjectChemical(chem(0, 0, 10,
		models.ImportShipment{Quantity: 20, EstimatedArrival: eta(4), Label: "first"},
		models.ImportShipment{Quantity: 20, EstimatedArrival: eta(4), Label: "second"},
	), reference)

	imports := make([]string, 0, 2)
	for _, seg := range d.Timeline {
		if seg.Kind == SegmentImport {
			imports = append(imports, seg.Label)
		}
	}
	if !reflect.DeepEqual(imports, []string{"first", "second"}) {
		t.Errorf("import order = %v, want [first second]", imports)
	}
}

func TestProjectChemicalArrivalTimeOfDayIgnored(t *testing.T) {
	// A timestamped arrival late in the day lands on the same day
	// offset as the plain calendar date.
	late := reference.AddDate(0, 0, 5).Format("2006-01-02") + "T23:59:00Z"
	d := ProjectChemical(chem(30, 0, 10, models.ImportShipment{Quantity: 50, EstimatedArrival: late}), reference)

	var gap *Segment
	for i := range d.Timeline {
		if d.Timeline[i].Kind == SegmentGap {
			gap = &d.Timeline[i]
		}
	}
	if gap == nil {
		t.Fatalf("no gap segment in %+v", d.Timeline)
	}
	checkSegment(t, *gap, SegmentGap, 3, 5)
}

func TestProjectChemicalStatusThresholds(t *testing.T) {
	tests := []struct {
		name    string
		factory float64
		want    Status
	}{
		{"exactly 3 days", 30, StatusCritical},
		{"just past 3 days", 30.1, StatusWarning},
		{"exactly 10 days", 100, StatusWarning},
		{"exactly 20 days", 200, StatusLow},
		{"just past 20 days", 200.1, StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := ProjectChemical(chem(tc.factory, 0, 10), reference)
			if d.Status != tc.want {
				t.Errorf("status = %q, want %q (%.2f days)", d.Status, tc.want, tc.factory/10)
			}
		})
	}
}

func TestProjectChemicalGapUpgradesOKToWarningOnly(t *testing.T) {
	// 25 days of immediate stock would be ok, but a gap ahead raises
	// the record to warning.
	withGap := ProjectChemical(chem(250, 0, 10, models.ImportShipment{Quantity: 10, EstimatedArrival: eta(30)}), reference)
	if withGap.GapDays != 5 {
		t.Fatalf("gapDays = %v, want 5", withGap.GapDays)
	}
	if withGap.Status != StatusWarning {
		t.Errorf("status = %q, want warning", withGap.Status)
	}

	// The gap rule never overrides a harsher classification.
	critical := ProjectChemical(chem(10, 0, 10, models.ImportShipment{Quantity: 10, EstimatedArrival: eta(30)}), reference)
	if critical.Status != StatusCritical {
		t.Errorf("status = %q, want critical", critical.Status)
	}
}

func TestProjectChemicalTimelineContiguous(t *testing.T) {
	d := ProjectChemical(chem(42, 13, 7,
		models.ImportShipment{Quantity: 35, EstimatedArrival: eta(12)},
		models.ImportShipment{Quantity: 14},
		models.ImportShipment{Quantity: 21, EstimatedArrival: eta(9)},
	), reference)

	if len(d.Timeline) == 0 {
		t.Fatal("timeline is empty")
	}
	if d.Timeline[0].StartDay != 0 {
		t.Errorf("first segment starts at %v, want 0", d.Timeline[0].StartDay)
	}
	for i := 1; i < len(d.Timeline); i++ {
		if d.Timeline[i].StartDay != d.Timeline[i-1].EndDay {
			t.Errorf("segment %d starts at %v, previous ends at %v", i, d.Timeline[i].StartDay, d.Timeline[i-1].EndDay)
		}
		if d.Timeline[i].EndDay < d.Timeline[i].StartDay {
			t.Errorf("segment %d ends before it starts: %+v", i, d.Timeline[i])
		}
	}
	if last := d.Timeline[len(d.Timeline)-1]; last.EndDay != d.TimelineEndDay {
		t.Errorf("timelineEndDay = %v, last segment ends at %v", d.TimelineEndDay, last.EndDay)
	}
}

func TestProjectChemicalMonthsUseFixedConvention(t *testing.T) {
	d := ProjectChemical(chem(300, 0, 10), reference)

	if got, ok := d.TotalMonthsRemaining.Days(); !ok || got != 1 {
		t.Errorf("totalMonthsRemaining = %v, want 1 (30-day months)", d.TotalMonthsRemaining)
	}
}

func TestProjectChemicalDoesNotMutateInput(t *testing.T) {
	imports := []models.ImportShipment{
		{Quantity: 20, EstimatedArrival: eta(9), Label: "b"},
		{Quantity: 20, EstimatedArrival: eta(4), Label: "a"},
	}
	c := chem(30, 0, 10, imports...)

	ProjectChemical(c, reference)

	if c.Imports[0].Label != "b" || c.Imports[1].Label != "a" {
		t.Errorf("input imports reordered: %+v", c.Imports)
	}
}
