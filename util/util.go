package util

// EaseLut samples an easing function into a look-up table of length
// points spanning t=0..1 inclusive, so animation loops can index eased
// progress instead of re-evaluating the curve per frame.
func EaseLut(fn func(float64) float64, length int) []float64 {
	if length < 2 {
		return []float64{fn(1.0)}
	}
	lut := make([]float64, length)
	step := 1.0 / float64(length-1)
	for i := 0; i < length; i++ {
		lut[i] = fn(float64(i) * step)
	}
	return lut
}
