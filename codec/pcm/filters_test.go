/*
NAME
  filters_test.go

DESCRIPTION
  filters_test.go contains tests for the pcm FIR filtering.

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
	"testing"
)

func TestNewLowPassBounds(t *testing.T) {
	tests := []struct {
		name    string
		cutoff  float64
		rate    uint
		length  int
		wantErr bool
	}{
		{name: "valid", cutoff: 7500, rate: 48000, length: 128},
		{name: "zero cutoff", cutoff: 0, rate: 48000, length: 128, wantErr: true},
		{name: "above nyquist", cutoff: 24000, rate: 48000, length: 128, wantErr: true},
		{name: "zero length", cutoff: 7500, rate: 48000, length: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLowPass(tt.cutoff, tt.rate, tt.length)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLowPassSelectivity(t *testing.T) {
	// A 500 Hz tone passes nearly untouched; a 20 kHz tone is heavily
	// attenuated.
	const rate = 48000
	lp, err := NewLowPass(7500, rate, 256)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tone := func(freq float64) []float64 {
		x := make([]float64, 4096)
		for n := range x {
			x[n] = math.Sin(2 * math.Pi * freq * float64(n) / rate)
		}
		return x
	}

	// Measure over the middle of the output to avoid filter edge effects.
	mid := func(x []float64) []float64 { return x[1024:3072] }

	low, err := lp.Apply(tone(500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := RMS(mid(low)); got < 0.9/math.Sqrt2 {
		t.Errorf("passband RMS = %v, want near %v", got, 1/math.Sqrt2)
	}

	high, err := lp.Apply(tone(20000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := RMS(mid(high)); got > 0.05 {
		t.Errorf("stopband RMS = %v, want near zero", got)
	}
}

func TestLowPassPreservesLength(t *testing.T) {
	lp, err := NewLowPass(7500, 48000, 128)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := make([]float64, 1024)
	in[0] = 1
	out, err := lp.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(in) {
		t.Errorf("output length = %d, want %d", len(out), len(in))
	}
}

func TestFastConvolveDelta(t *testing.T) {
	// Convolution with a unit impulse reproduces the signal.
	x := []float64{1, 2, 3, 4, 5}
	y, err := fastConvolve(x, []float64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(y) != len(x) {
		t.Fatalf("length = %d, want %d", len(y), len(x))
	}
	for i := range x {
		if math.Abs(y[i]-x[i]) > 1e-9 {
			t.Errorf("y[%d] = %v, want %v", i, y[i], x[i])
		}
	}
}

func TestFastConvolveEmpty(t *testing.T) {
	if _, err := fastConvolve(nil, []float64{1}); err == nil {
		t.Error("expected error for empty signal")
	}
}
