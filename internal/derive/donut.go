package derive

import "github.com/shopspring/decimal"

// Palette is cycled through by breakdown index.
var Palette = [...]string{
	"#52ff6a",
	"#36d9ff",
	"#ffd166",
	"#ff5a6a",
	"#9b8cff",
	"#42f5c2",
}

// NeutralColor fills the chart when there are no expenses.
const NeutralColor = "rgba(82, 255, 106, 0.2)"

var (
	fullCircle     = decimal.NewFromInt(360)
	degreesPerUnit = decimal.RequireFromString("3.6")
)

// Slice is an angular segment of the donut chart, in degrees.
type Slice struct {
	Category string
	Start    decimal.Decimal
	End      decimal.Decimal
	Color    string
}

// Span returns the angular width of the slice.
func (s Slice) Span() decimal.Decimal {
	return s.End.Sub(s.Start)
}

// DonutSlices lays the breakdown out contiguously around a circle starting at
// 0°. The last slice always closes the circle at 360°.
func DonutSlices(breakdown []CategoryShare) []Slice {
	if len(breakdown) == 0 {
		return []Slice{{Start: decimal.Zero, End: fullCircle, Color: NeutralColor}}
	}

	slices := make([]Slice, 0, len(breakdown))
	current := decimal.Zero
	for i, share := range breakdown {
		start := current
		end := decimal.Min(start.Add(decimal.NewFromInt(share.Percentage).Mul(degreesPerUnit)), fullCircle)
		if i == len(breakdown)-1 {
			end = fullCircle
		}
		slices = append(slices, Slice{
			Category: share.Category,
			Start:    start,
			End:      end,
			Color:    Palette[i%len(Palette)],
		})
		current = end
	}
	return slices
}
