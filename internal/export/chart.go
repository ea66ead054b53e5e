package export

import (
	"hash/fnv"

	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/lucasb-eyer/go-colorful"
)

// Slice is one labelled share of a chart.
type Slice struct {
	Label   string
	Seconds int64
	Share   float64
	Color   string
}

// ChartSlices turns summary rows into chart slices labelled at the given
// level. Labels found in colors use that colour; others get a stable colour
// derived from the label. colors is only read.
func ChartSlices(rows []domain.SummaryRow, key domain.GroupBy, colors map[string]string) []Slice {
	var total int64
	for _, r := range rows {
		total += seconds(r.Total)
	}

	slices := make([]Slice, 0, len(rows))
	for _, r := range rows {
		label := r.Label(key)
		s := Slice{
			Label:   label,
			Seconds: seconds(r.Total),
			Color:   colors[label],
		}
		if s.Color == "" {
			s.Color = LabelColor(label)
		}
		if total > 0 {
			s.Share = float64(s.Seconds) / float64(total)
		}
		slices = append(slices, s)
	}
	return slices
}

// LabelColor maps a label to a hex colour by hashing it onto the hue wheel at
// fixed saturation and lightness.
func LabelColor(label string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	hue := float64(h.Sum32() % 360)
	return colorful.Hsl(hue, 0.55, 0.6).Hex()
}
