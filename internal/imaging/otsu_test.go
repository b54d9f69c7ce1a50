package imaging

import "testing"

func TestOtsuThreshold_Bimodal(t *testing.T) {
	// Two separated peaks: background around 40, ink around 200.
	var hist [256]int
	for i := 30; i <= 50; i++ {
		hist[i] = 100
	}
	for i := 190; i <= 210; i++ {
		hist[i] = 80
	}

	threshold := OtsuThreshold(hist)
	if threshold <= 50 || threshold >= 190 {
		t.Errorf("threshold = %d, want between the peaks (50, 190)", threshold)
	}
}

func TestOtsuThreshold_Empty(t *testing.T) {
	var hist [256]int
	if got := OtsuThreshold(hist); got != 127 {
		t.Errorf("empty histogram threshold = %d, want 127", got)
	}
}

func TestOtsuThreshold_Uniform(t *testing.T) {
	// Single-value histogram has no between-class split worth taking.
	var hist [256]int
	hist[100] = 1000

	threshold := OtsuThreshold(hist)
	// Whatever is picked, binarizing must put the single population on one
	// side consistently.
	luma := make([]byte, 10)
	for i := range luma {
		luma[i] = 100
	}
	bin := Binarize(luma, threshold)
	first := bin[0]
	for _, v := range bin {
		if v != first {
			t.Fatal("uniform plane binarized inconsistently")
		}
	}
}

func TestHistogram(t *testing.T) {
	luma := []byte{0, 0, 128, 255, 255, 255}
	hist := Histogram(luma)

	if hist[0] != 2 || hist[128] != 1 || hist[255] != 3 {
		t.Errorf("histogram counts wrong: h[0]=%d h[128]=%d h[255]=%d", hist[0], hist[128], hist[255])
	}
}

func TestBinarize(t *testing.T) {
	luma := []byte{10, 100, 200}
	bin := Binarize(luma, 100)

	want := []byte{0, 0, 255}
	for i := range want {
		if bin[i] != want[i] {
			t.Errorf("bin[%d] = %d, want %d", i, bin[i], want[i])
		}
	}
	if luma[2] != 200 {
		t.Error("Binarize must not modify its input")
	}
}
