package scenario

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/rotisserie/eris"
)

// BreakEvenHorizon is the year count at and beyond which break-even is
// reported as the "15+" sentinel.
const BreakEvenHorizon = 15.0

const sentinelText = "15+"

// BreakEven is the ownership duration at which the EV's cumulative cost
// drops to the ICE's. It is either a finite, non-negative year count below
// BreakEvenHorizon, or the sentinel meaning "no crossing within the horizon".
type BreakEven struct {
	years  float64
	beyond bool
}

// NewBreakEven classifies a raw year count. NaN, infinities and values at or
// above the horizon become the sentinel; negative values clamp to 0.
func NewBreakEven(years float64) BreakEven {
	if math.IsNaN(years) || math.IsInf(years, 0) || years >= BreakEvenHorizon {
		return BeyondHorizon()
	}
	return BreakEven{years: math.Max(0, years)}
}

// BeyondHorizon returns the "15+" sentinel.
func BeyondHorizon() BreakEven {
	return BreakEven{beyond: true}
}

// Finite reports whether b is a real year count.
func (b BreakEven) Finite() bool { return !b.beyond }

// Years returns the year count, or BreakEvenHorizon for the sentinel.
func (b BreakEven) Years() float64 {
	if b.beyond {
		return BreakEvenHorizon
	}
	return b.years
}

// String renders one decimal place, or "15+".
func (b BreakEven) String() string {
	if b.beyond {
		return sentinelText
	}
	return strconv.FormatFloat(b.years, 'f', 1, 64)
}

// MarshalJSON encodes b as its display string.
func (b BreakEven) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts the display string or a bare number.
func (b *BreakEven) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return eris.Wrap(err, "scenario: decode break-even")
		}
		*b = NewBreakEven(f)
		return nil
	}
	if s == sentinelText {
		*b = BeyondHorizon()
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return eris.Wrapf(err, "scenario: decode break-even %q", s)
	}
	*b = NewBreakEven(f)
	return nil
}

// MarshalYAML encodes b as its display string.
func (b BreakEven) MarshalYAML() (any, error) {
	return b.String(), nil
}
