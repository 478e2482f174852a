package projection

import (
	"math"
	"strconv"

	"chemstock/internal/domain/models"
)

// Status classifies how urgently a chemical needs attention.
type Status string

const (
	StatusCritical Status = "critical"
	StatusWarning  Status = "warning"
	StatusLow      Status = "low"
	StatusOK       Status = "ok"
)

// SegmentKind identifies what supplies consumption during a segment.
type SegmentKind string

const (
	SegmentImmediateStock SegmentKind = "immediate-stock"
	SegmentImport         SegmentKind = "import"
	SegmentGap            SegmentKind = "gap"
)

// Span is a day count that may be unbounded. A chemical with no
// tracked consumption never runs out, so its day metrics carry the
// unbounded sentinel, which serializes as JSON null. Callers must
// check IsUnbounded before doing arithmetic on a Span.
type Span float64

// Unbounded returns the sentinel for "never depletes".
func Unbounded() Span {
	return Span(math.Inf(1))
}

// IsUnbounded reports whether the span carries the sentinel.
func (s Span) IsUnbounded() bool {
	return math.IsInf(float64(s), 1)
}

// Days returns the span as a plain day count; unbounded spans have no
// finite day count and report false.
func (s Span) Days() (float64, bool) {
	if s.IsUnbounded() {
		return 0, false
	}
	return float64(s), true
}

// MarshalJSON encodes unbounded spans as null.
func (s Span) MarshalJSON() ([]byte, error) {
	if s.IsUnbounded() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(s), 'g', -1, 64)), nil
}

// UnmarshalJSON decodes null back into the unbounded sentinel.
func (s *Span) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Unbounded()
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = Span(v)
	return nil
}

// Segment is one contiguous stretch of the supply timeline. Day
// offsets are measured from the reference date and may be fractional.
type Segment struct {
	Kind             SegmentKind `json:"kind"`
	StartDay         float64     `json:"startDay"`
	EndDay           float64     `json:"endDay"`
	DurationDays     float64     `json:"durationDays"`
	Quantity         float64     `json:"quantity"`
	Label            string      `json:"label,omitempty"`
	EstimatedArrival string      `json:"estimatedArrival,omitempty"`
}

// Derived is the engine's output for one chemical: the record itself
// plus every computed supply metric. It is rebuilt on every
// calculation and never persisted.
type Derived struct {
	models.Chemical

	ImmediateQuantity   float64 `json:"immediateQuantity"`
	TotalImportQuantity float64 `json:"totalImportQuantity"`
	TotalQuantity       float64 `json:"totalQuantity"`

	ImmediateDaysRemaining Span `json:"immediateDaysRemaining"`
	TotalDaysRemaining     Span `json:"totalDaysRemaining"`
	TotalMonthsRemaining   Span `json:"totalMonthsRemaining"`

	Status         Status    `json:"status"`
	GapDays        float64   `json:"gapDays"`
	GapQuantity    float64   `json:"gapQuantity"`
	Timeline       []Segment `json:"timeline"`
	TimelineEndDay float64   `json:"timelineEndDay"`
}

// Summary holds portfolio-level status counts.
type Summary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Low      int `json:"low"`
	OK       int `json:"ok"`
	WithGaps int `json:"withGaps"`
}

// Portfolio is the aggregated view over a chemical collection. All
// item lists preserve the input collection order; urgency sorting is
// left to the caller.
type Portfolio struct {
	Items         []Derived `json:"items"`
	Summary       Summary   `json:"summary"`
	CriticalItems []Derived `json:"criticalItems"`
	WarningItems  []Derived `json:"warningItems"`
	GapItems      []Derived `json:"gapItems"`
}
