package ranking

// Confidence converts a descending-sorted score list into a single [0,1]
// confidence value. It rewards both a high absolute top score and a wide
// margin over the runner-up: two strong but close scores yield low
// confidence because the classification is ambiguous between them.
func Confidence(sortedDescending []float64) float64 {
	switch len(sortedDescending) {
	case 0:
		return 0.0
	case 1:
		return clamp01(sortedDescending[0])
	}

	top := sortedDescending[0]
	second := sortedDescending[1]

	if top <= 0 {
		return 0.0
	}

	return clamp01(top * (1 - second/top))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
