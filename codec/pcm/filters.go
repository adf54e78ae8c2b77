/*
NAME
  filters.go

DESCRIPTION
  filters.go contains FIR filtering used to condition PCM audio before
  encoding.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


package pcm

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"github.com/pkg/errors"
)

// LowPass is a windowed-sinc FIR lowpass filter. The encoder's profiles
// discard all bins above their cutoff, so band-limiting the input first
// stops out-of-band energy from raising the per-frame scale and costing
// quantizer resolution.
type LowPass struct {
	coeffs []float64
	cutoff float64
	rate   uint
	taps   int
}

// NewLowPass designs a lowpass filter with the given cutoff in Hz for
// audio at rate Hz, using length+1 Hamming-windowed sinc taps.
func NewLowPass(cutoff float64, rate uint, length int) (*LowPass, error) {
	if cutoff <= 0 || cutoff >= float64(rate)/2 {
		return nil, errors.New("cutoff frequency out of bounds")
	}
	if length <= 0 {
		return nil, errors.New("cannot create filter with length <= 0")
	}

	lp := &LowPass{cutoff: cutoff, rate: rate, taps: length}
	fd := cutoff / float64(rate)
	size := length + 1
	lp.coeffs = make([]float64, size)
	win := window.Hamming(size)
	for n := 0; n < length/2; n++ {
		c := float64(n) - float64(length)/2
		lp.coeffs[n] = math.Sin(2*math.Pi*fd*c) / (math.Pi * c) * win[n]
		lp.coeffs[size-1-n] = lp.coeffs[n]
	}
	lp.coeffs[length/2] = 2 * fd * win[length/2]
	return lp, nil
}

// Apply filters the samples, returning a slice of the same length. The
// filter's group delay of taps/2 samples is trimmed from the front so the
// output stays aligned with the input.
func (lp *LowPass) Apply(samples []float64) ([]float64, error) {
	y, err := fastConvolve(samples, lp.coeffs)
	if err != nil {
		return nil, err
	}
	return y[lp.taps/2 : lp.taps/2+len(samples)], nil
}

// fastConvolve computes the linear convolution of x and h by pointwise
// multiplication in the frequency domain, in O(n log n).
func fastConvolve(x, h []float64) ([]float64, error) {
	if len(x) == 0 || len(h) == 0 {
		return nil, errors.New("convolution requires slice of length > 0")
	}

	convLen := len(x) + len(h) - 1

	// Pad both signals to the next power of 2 at or above convLen.
	padLen := 1
	for padLen < convLen {
		padLen <<= 1
	}
	xPad := make([]float64, padLen)
	copy(xPad, x)
	hPad := make([]float64, padLen)
	copy(hPad, h)

	xFFT, hFFT := fft.FFTReal(xPad), fft.FFTReal(hPad)
	yFFT := make([]complex128, padLen)
	for i := range yFFT {
		yFFT[i] = xFFT[i] * hFFT[i]
	}
	iy := fft.IFFT(yFFT)

	y := make([]float64, convLen)
	for i := range y {
		y[i] = real(iy[i])
	}
	return y, nil
}
