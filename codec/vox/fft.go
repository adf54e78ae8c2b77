/*
NAME
  fft.go

DESCRIPTION
  fft.go contains the in-place radix-2 FFT used by the vox codec in both
  directions.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


package vox

import "math"

// log2 of FFTSize.
const fftBits = 10

// bitRev maps an index to the reversal of its fftBits bits. Built once at
// init and read-only thereafter.
var bitRev [FFTSize]int

func init() {
	for i := 1; i < FFTSize; i++ {
		bitRev[i] = bitRev[i>>1]>>1 | (i&1)<<(fftBits-1)
	}
}

// fft performs an in-place radix-2 decimation-in-time Cooley-Tukey
// transform over the parallel real and imaginary buffers. If invert is
// true the inverse transform is performed and the result is scaled by
// 1/FFTSize. Both buffers must have length FFTSize; any other length is a
// programmer error.
//
// The twiddle factor advances by complex multiplication inside the inner
// loop, so there is no per-butterfly trigonometry.
func fft(re, im []float64, invert bool) {
	if len(re) != FFTSize || len(im) != FFTSize {
		panic("vox: fft buffer length must be FFTSize")
	}

	for i, j := range bitRev {
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}

	for l := 2; l <= FFTSize; l <<= 1 {
		ang := 2 * math.Pi / float64(l)
		if invert {
			ang = -ang
		}
		wRe, wIm := math.Cos(ang), math.Sin(ang)
		for i := 0; i < FFTSize; i += l {
			cRe, cIm := 1.0, 0.0
			for j := i; j < i+l/2; j++ {
				k := j + l/2
				uRe, uIm := re[j], im[j]
				vRe := re[k]*cRe - im[k]*cIm
				vIm := re[k]*cIm + im[k]*cRe
				re[j], im[j] = uRe+vRe, uIm+vIm
				re[k], im[k] = uRe-vRe, uIm-vIm
				cRe, cIm = cRe*wRe-cIm*wIm, cRe*wIm+cIm*wRe
			}
		}
	}

	if invert {
		for i := range re {
			re[i] /= FFTSize
			im[i] /= FFTSize
		}
	}
}
