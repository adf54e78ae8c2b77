/*
NAME
  profile_test.go

DESCRIPTION
  profile_test.go contains tests for the vox bit-allocation profiles.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


package vox

import (
	"testing"

	"github.com/pkg/errors"
)

func TestProfileTable(t *testing.T) {
	tests := []struct {
		name         string
		id           uint8
		binCount     int
		totalBits    int
		payloadBytes int
	}{
		{name: "low", id: 0, binCount: 160, totalBits: 2404, payloadBytes: 301},
		{name: "medium", id: 1, binCount: 256, totalBits: 4452, payloadBytes: 557},
		{name: "high", id: 2, binCount: 384, totalBits: 7568, payloadBytes: 946},
		{name: "full", id: 3, binCount: 512, totalBits: 16384, payloadBytes: 2048},
	}

	if len(Profiles) != len(tests) {
		t.Fatalf("got %d profiles, want %d", len(Profiles), len(tests))
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Profiles[tt.name]
			if !ok {
				t.Fatalf("profile %q missing", tt.name)
			}
			if p.ID != tt.id {
				t.Errorf("ID = %d, want %d", p.ID, tt.id)
			}
			if p.BinCount != tt.binCount {
				t.Errorf("BinCount = %d, want %d", p.BinCount, tt.binCount)
			}
			if len(p.Weights) != tt.binCount {
				t.Errorf("len(Weights) = %d, want %d", len(p.Weights), tt.binCount)
			}
			if p.TotalBits != tt.totalBits {
				t.Errorf("TotalBits = %d, want %d", p.TotalBits, tt.totalBits)
			}
			if p.PayloadBytes != tt.payloadBytes {
				t.Errorf("PayloadBytes = %d, want %d", p.PayloadBytes, tt.payloadBytes)
			}

			// TotalBits and PayloadBytes must be consistent with the weights.
			var sum int
			for _, w := range p.Weights {
				if w < 1 || w > 16 {
					t.Fatalf("weight %d out of range [1,16]", w)
				}
				sum += int(w)
			}
			if p.TotalBits != 2*sum {
				t.Errorf("TotalBits = %d, want 2*sum(Weights) = %d", p.TotalBits, 2*sum)
			}
			if p.PayloadBytes != (p.TotalBits+7)/8 {
				t.Errorf("PayloadBytes = %d, want %d", p.PayloadBytes, (p.TotalBits+7)/8)
			}

			// Both lookup tables must resolve to the same record.
			if ProfilesByID[p.ID] != p {
				t.Errorf("ProfilesByID[%d] does not match Profiles[%q]", p.ID, p.Name)
			}
		})
	}
}

func TestProfileWeights(t *testing.T) {
	// Spot checks of the piecewise weighting at band boundaries. Bin
	// spacing is SampleRate/FFTSize = 46.875 Hz.
	tests := []struct {
		name    string
		profile string
		bin     int
		want    uint8
	}{
		{name: "low DC", profile: "low", bin: 0, want: 5},
		{name: "low 46Hz", profile: "low", bin: 1, want: 5},
		{name: "low 93Hz", profile: "low", bin: 2, want: 12},
		{name: "low 140Hz", profile: "low", bin: 3, want: 11},
		{name: "low 1031Hz", profile: "low", bin: 22, want: 8},
		{name: "low 3kHz edge", profile: "low", bin: 64, want: 7},
		{name: "low top", profile: "low", bin: 159, want: 6},
		{name: "medium 9kHz edge", profile: "medium", bin: 192, want: 7},
		{name: "medium top", profile: "medium", bin: 255, want: 7},
		{name: "high 13kHz edge", profile: "high", bin: 278, want: 8},
		{name: "high top", profile: "high", bin: 383, want: 8},
		{name: "full DC", profile: "full", bin: 0, want: 16},
		{name: "full top", profile: "full", bin: 511, want: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Profiles[tt.profile].Weights[tt.bin]
			if got != tt.want {
				t.Errorf("weight = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFrameSizeBytes(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		want    int
		wantErr error
	}{
		{name: "low", profile: "low", want: 313},
		{name: "medium", profile: "medium", want: 569},
		{name: "high", profile: "high", want: 958},
		{name: "full", profile: "full", want: 2060},
		{name: "unknown", profile: "ultra", wantErr: ErrUnknownProfile},
		{name: "empty", profile: "", wantErr: ErrUnknownProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FrameSizeBytes(tt.profile)
			if errors.Cause(err) != tt.wantErr {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FrameSizeBytes() = %d, want %d", got, tt.want)
			}
		})
	}
}
