package analytics

// Series helpers for frame-aligned []*float64 metric series. All of them
// skip nil entries; the bool result reports whether any value was present.

// SeriesMin returns the smallest non-nil value in the series.
func SeriesMin(s []*float64) (float64, bool) {
	min, ok := 0.0, false
	for _, v := range s {
		if v == nil {
			continue
		}
		if !ok || *v < min {
			min, ok = *v, true
		}
	}
	return min, ok
}

// SeriesMax returns the largest non-nil value in the series.
func SeriesMax(s []*float64) (float64, bool) {
	max, ok := 0.0, false
	for _, v := range s {
		if v == nil {
			continue
		}
		if !ok || *v > max {
			max, ok = *v, true
		}
	}
	return max, ok
}

// SeriesMean returns the mean of the non-nil values in the series.
func SeriesMean(s []*float64) (float64, bool) {
	sum, n := 0.0, 0
	for _, v := range s {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// SeriesRange returns max minus min over the non-nil values in the series.
func SeriesRange(s []*float64) (float64, bool) {
	min, ok := SeriesMin(s)
	if !ok {
		return 0, false
	}
	max, _ := SeriesMax(s)
	return max - min, true
}
