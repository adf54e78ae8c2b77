/*
NAME
  profile.go

DESCRIPTION
  profile.go contains the bit-allocation profiles used by the vox codec.

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
	"math"

	"github.com/pkg/errors"
)

// Profile is a bit-allocation schedule: how many low-frequency bins a frame
// encodes and how many bits each bin receives. Profiles are built once at
// init and never mutated, so they are safe to share between goroutines.
type Profile struct {
	Name         string  // One of "low", "medium", "high", "full".
	ID           uint8   // Wire identifier written to header byte 2.
	BinCount     int     // Number of low-frequency bins encoded.
	Weights      []uint8 // Bits per bin, indexed by bin.
	TotalBits    int     // 2 * sum(Weights); real and imaginary both encoded.
	PayloadBytes int     // ceil(TotalBits / 8).
}

// Profiles maps profile name to profile, and ProfilesByID maps the wire
// profile ID to the same records.
var (
	Profiles     map[string]*Profile
	ProfilesByID map[uint8]*Profile
)

// weightBands is the piecewise equal-loudness weighting. Band b applies to
// frequencies below upper[b] Hz and at or above the previous band's bound; w holds
// the bit budget for the low, medium, high and full profiles in that order.
var weightBands = []struct {
	upper float64
	w     [4]uint8
}{
	{50, [4]uint8{5, 7, 9, 16}},
	{125, [4]uint8{12, 14, 16, 16}},
	{250, [4]uint8{11, 13, 15, 16}},
	{500, [4]uint8{10, 12, 14, 16}},
	{1000, [4]uint8{9, 11, 13, 16}},
	{3000, [4]uint8{8, 10, 12, 16}},
	{7000, [4]uint8{7, 9, 11, 16}},
	{9000, [4]uint8{6, 8, 10, 16}},
	{13000, [4]uint8{5, 7, 9, 16}},
	{math.Inf(1), [4]uint8{4, 6, 8, 16}},
}

func init() {
	defs := []struct {
		name string
		id   uint8
		bins int
	}{
		{"low", 0, 160},
		{"medium", 1, 256},
		{"high", 2, 384},
		{"full", 3, 512},
	}

	Profiles = make(map[string]*Profile, len(defs))
	ProfilesByID = make(map[uint8]*Profile, len(defs))
	for _, d := range defs {
		p := &Profile{
			Name:     d.name,
			ID:       d.id,
			BinCount: d.bins,
			Weights:  make([]uint8, d.bins),
		}
		for i := range p.Weights {
			f := float64(i) * SampleRate / FFTSize
			p.Weights[i] = weightFor(f, d.id)
			p.TotalBits += 2 * int(p.Weights[i])
		}
		p.PayloadBytes = (p.TotalBits + 7) / 8
		Profiles[p.Name] = p
		ProfilesByID[p.ID] = p
	}
}

// weightFor returns the bit budget for a bin at frequency f Hz under the
// profile with the given ID.
func weightFor(f float64, id uint8) uint8 {
	for _, b := range weightBands {
		if f < b.upper {
			return b.w[id]
		}
	}
	return weightBands[len(weightBands)-1].w[id]
}

// FrameSizeBytes returns the encoded size of a frame under the named
// profile, header included.
func FrameSizeBytes(profile string) (int, error) {
	p, ok := Profiles[profile]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownProfile, "profile: %q", profile)
	}
	return HeaderSize + p.PayloadBytes, nil
}
