package domain

// RateTable holds the four per-page prices keyed by color/duplex combination.
// Field names follow the shop's configuration surface: bw = monochrome,
// ss = single-sided, ds = double-sided.
type RateTable struct {
	BWSingle    float64 `json:"bw_ss" bson:"bw_ss"`
	BWDouble    float64 `json:"bw_ds" bson:"bw_ds"`
	ColorSingle float64 `json:"color_ss" bson:"color_ss"`
	ColorDouble float64 `json:"color_ds" bson:"color_ds"`
}

// Valid reports whether every rate is non-negative.
func (r RateTable) Valid() bool {
	return r.BWSingle >= 0 && r.BWDouble >= 0 && r.ColorSingle >= 0 && r.ColorDouble >= 0
}

// rate selects the per-page price for the given print options.
func (r RateTable) rate(color, duplex bool) float64 {
	if color {
		if duplex {
			return r.ColorDouble
		}
		return r.ColorSingle
	}
	if duplex {
		return r.BWDouble
	}
	return r.BWSingle
}

// Cost computes the price of a job from its options and page count. It is a
// pure function: the result is never negative and zero pages cost zero.
func (r RateTable) Cost(color, duplex bool, pages int) float64 {
	if pages <= 0 {
		return 0
	}
	cost := r.rate(color, duplex) * float64(pages)
	if cost < 0 {
		return 0
	}
	return cost
}
