package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// minPower is the magnitude below which a spectrum counts as flat.
const minPower = 1e-9

// PowerSpectrum returns |X_k| for k in [0, n/2) of the series with its mean
// removed, so bin 0 is always near zero.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	bins := fft.FFTReal(centered)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantPeriod returns the period of the strongest oscillation in data,
// in the units of interval (the spacing between samples). It returns 0 when
// the series is too short or flat.
func DominantPeriod(data []float64, interval float64) float64 {
	ps := PowerSpectrum(data)

	best, bestK := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, bestK = ps[k], k
		}
	}
	if bestK == 0 || best < minPower {
		return 0
	}
	return float64(len(data)) * interval / float64(bestK)
}
