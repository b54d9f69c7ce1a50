package imaging

// Histogram builds a 256-bin luminance histogram of a luma plane.
func Histogram(luma []byte) [256]int {
	var hist [256]int
	for _, v := range luma {
		hist[v]++
	}
	return hist
}

// OtsuThreshold selects a binarization threshold by maximizing between-class
// variance over a 256-bin histogram (Otsu's method).
//
// For a bimodal histogram with two separated peaks the selected threshold
// falls between the peaks. A flat or empty histogram yields 127.
func OtsuThreshold(hist [256]int) uint8 {
	total := 0
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return 127
	}

	var sum float64
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var sumB, wB float64
	bestThreshold := 127
	bestVariance := 0.0

	for i, c := range hist {
		wB += float64(c)
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}

		sumB += float64(i) * float64(c)
		meanB := sumB / wB
		meanF := (sum - sumB) / wF

		variance := wB * wF * (meanB - meanF) * (meanB - meanF)
		if variance > bestVariance {
			bestVariance = variance
			bestThreshold = i
		}
	}

	return uint8(bestThreshold)
}

// Binarize returns a new plane where pixels above the threshold are 255 and
// the rest are 0. The input plane is not modified.
func Binarize(luma []byte, threshold uint8) []byte {
	out := make([]byte, len(luma))
	for i, v := range luma {
		if v > threshold {
			out[i] = 255
		}
	}
	return out
}
