package slip

import "sort"

// Summary is the daily aggregate over a set of slips.
type Summary struct {
	Count    int     `json:"count"`
	Vehicles int     `json:"vehicles"` // distinct plates
	TotalNet float64 `json:"total_net"`
}

func Summarize(slips []Slip) Summary {
	plates := make(map[string]struct{}, len(slips))
	var total float64
	for _, s := range slips {
		plates[s.Plate] = struct{}{}
		total += s.NetWeight()
	}
	return Summary{Count: len(slips), Vehicles: len(plates), TotalNet: total}
}

// Latest returns up to n slips, most recently recorded first. The input is not modified.
func Latest(slips []Slip, n int) []Slip {
	out := make([]Slip, len(slips))
	copy(out, slips)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RecordedAt != out[j].RecordedAt {
			return out[i].RecordedAt > out[j].RecordedAt
		}
		return out[i].ID > out[j].ID
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
