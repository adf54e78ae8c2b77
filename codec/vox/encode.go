/*
NAME
  encode.go

DESCRIPTION
  encode.go contains the vox frame encoder.

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
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Encoder encodes PCM frames. Its only state is the frame sequence
// counter, which is advanced atomically, so a single Encoder may be shared
// between goroutines; the simplest arrangement is still one Encoder per
// producer.
type Encoder struct {
	seq uint32
}

// NewEncoder returns a new Encoder whose first frame will carry sequence
// number 0.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode encodes one frame of PCM under the named profile. samples must
// hold exactly FrameSamples values in [-1, 1]. The returned frame is
// HeaderSize + Profile.PayloadBytes bytes and is owned by the caller.
func (e *Encoder) Encode(samples []float64, profile string) ([]byte, error) {
	p, ok := Profiles[profile]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownProfile, "profile: %q", profile)
	}
	if len(samples) != FrameSamples {
		return nil, errors.Wrapf(ErrBadFrameLength, "got %d samples, want %d", len(samples), FrameSamples)
	}

	re := make([]float64, FFTSize)
	im := make([]float64, FFTSize)
	copy(re, samples)
	fft(re, im, false)

	// Per-frame scale is the peak magnitude over the encoded bins, clamped
	// below by the silence guard.
	var maxAbs float64
	for i := 0; i < p.BinCount; i++ {
		if a := math.Abs(re[i]); a > maxAbs {
			maxAbs = a
		}
		if a := math.Abs(im[i]); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs < minScale {
		maxAbs = minScale
	}

	frame := make([]byte, HeaderSize+p.PayloadBytes)
	frame[0] = Version
	frame[1] = byte(p.BinCount) // Wraps at 256; informational only.
	frame[2] = p.ID
	binary.LittleEndian.PutUint32(frame[4:8], math.Float32bits(float32(maxAbs)))
	binary.LittleEndian.PutUint32(frame[8:12], atomic.AddUint32(&e.seq, 1)-1)

	var bit int
	for i := 0; i < p.BinCount; i++ {
		b := p.Weights[i]
		bit = writeBits(frame, HeaderSize, bit, quantize(re[i], maxAbs, b), int(b))
		bit = writeBits(frame, HeaderSize, bit, quantize(im[i], maxAbs, b), int(b))
	}
	return frame, nil
}
