/*
NAME
  voxspec - spectrum and SNR probe for the vox codec.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


// voxspec round-trips a test signal through each codec profile and reports
// the resulting SNR, rendering original and decoded magnitude spectra to a
// PNG per profile. Useful when tuning the weighting tables.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/cmplx"
	"os"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/vox/codec/vox"
)

func main() {
	var (
		freq   = flag.Float64("freq", 1000, "test tone frequency in Hz")
		amp    = flag.Float64("amp", 0.8, "test tone amplitude")
		outDir = flag.String("out", ".", "directory for output PNGs")
	)
	flag.Parse()

	x := make([]float64, vox.FrameSamples)
	for n := range x {
		t := float64(n)
		x[n] = *amp * (0.7*math.Sin(2*math.Pi**freq*t/vox.SampleRate) +
			0.2*math.Sin(2*math.Pi*3**freq*t/vox.SampleRate) +
			0.1*math.Sin(2*math.Pi*5**freq*t/vox.SampleRate))
	}

	names := make([]string, 0, len(vox.Profiles))
	for name := range vox.Profiles {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return vox.Profiles[names[i]].ID < vox.Profiles[names[j]].ID })

	for _, name := range names {
		out, err := roundTrip(x, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			os.Exit(1)
		}

		size, _ := vox.FrameSizeBytes(name)
		fmt.Printf("%-7s %4d bytes/frame  SNR %6.1f dB\n", name, size, snr(x, out))

		file := fmt.Sprintf("%s/voxspec-%s.png", *outDir, name)
		if err := plotSpectra(x, out, name, file); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			os.Exit(1)
		}
	}
}

// roundTrip encodes and decodes one frame under the named profile.
func roundTrip(x []float64, profile string) ([]float64, error) {
	frame, err := vox.NewEncoder().Encode(x, profile)
	if err != nil {
		return nil, err
	}
	return vox.DecodeFrame(frame)
}

// snr returns the signal to noise ratio of out against reference x in dB.
func snr(x, out []float64) float64 {
	var sigPow, errPow float64
	for i := range x {
		sigPow += x[i] * x[i]
		d := out[i] - x[i]
		errPow += d * d
	}
	if errPow == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(sigPow/errPow)
}

// spectrum returns the magnitude spectrum of x in dB over the non-negative
// frequency half.
func spectrum(x []float64) plotter.XYs {
	coeffs := fourier.NewFFT(len(x)).Coefficients(nil, x)
	pts := make(plotter.XYs, len(coeffs))
	for i, c := range coeffs {
		mag := cmplx.Abs(c)
		if mag < 1e-12 {
			mag = 1e-12
		}
		pts[i].X = float64(i) * vox.SampleRate / float64(len(x))
		pts[i].Y = 20 * math.Log10(mag)
	}
	return pts
}

// plotSpectra renders the original and decoded spectra to file.
func plotSpectra(x, out []float64, profile, file string) error {
	p := plot.New()
	p.Title.Text = "vox " + profile + " profile"
	p.X.Label.Text = "frequency (Hz)"
	p.Y.Label.Text = "magnitude (dB)"

	orig, err := plotter.NewLine(spectrum(x))
	if err != nil {
		return err
	}
	dec, err := plotter.NewLine(spectrum(out))
	if err != nil {
		return err
	}
	dec.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}

	p.Add(orig, dec)
	p.Legend.Add("original", orig)
	p.Legend.Add("decoded", dec)

	return p.Save(8*vg.Inch, 4*vg.Inch, file)
}
