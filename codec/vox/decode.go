/*
NAME
  decode.go

DESCRIPTION
  decode.go contains the vox frame decoder.

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

	"github.com/pkg/errors"
)

// Decoder decodes vox frames. The zero value is ready to use.
type Decoder struct {
	// UnknownProfile, if non-nil, is called when a frame claims a profile
	// ID this decoder does not know and the low profile is used in its
	// place. The stream keeps playing, possibly garbled, rather than
	// failing mid-call.
	UnknownProfile func(id uint8)
}

// Decode decodes one encoded frame to FrameSamples PCM samples.
//
// The profile is resolved from header byte 2; byte 1 wraps at a bin count
// of 256 and is never consulted. An unknown profile ID falls back to
// profile 0 for forward compatibility. Bins whose payload bits run past the
// end of the frame are left at zero, so a truncated payload decodes with
// silence in place of the missing bins rather than failing.
func (d *Decoder) Decode(frame []byte) ([]float64, error) {
	if len(frame) < HeaderSize {
		return nil, errors.Wrapf(ErrTooSmall, "frame length: %d", len(frame))
	}
	if frame[0] != Version {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version: %d", frame[0])
	}

	p, ok := ProfilesByID[frame[2]]
	if !ok {
		if d.UnknownProfile != nil {
			d.UnknownProfile(frame[2])
		}
		p = ProfilesByID[0]
	}

	scale := float64(math.Float32frombits(binary.LittleEndian.Uint32(frame[4:8])))

	re := make([]float64, FFTSize)
	im := make([]float64, FFTSize)
	var bit int
	for i := 0; i < p.BinCount; i++ {
		b := p.Weights[i]
		if HeaderSize*8+bit+2*int(b) > len(frame)*8 {
			break
		}
		r := dequantize(readBits(frame, HeaderSize, bit, int(b)), scale, b)
		bit += int(b)
		q := dequantize(readBits(frame, HeaderSize, bit, int(b)), scale, b)
		bit += int(b)
		re[i], im[i] = r, q
		// Mirror the conjugate so the inverse transform comes out real.
		// Bins between BinCount and FFTSize-BinCount stay zero; the codec
		// is a brick-wall low-pass under all but the full profile.
		if i != 0 {
			re[FFTSize-i], im[FFTSize-i] = r, -q
		}
	}

	fft(re, im, true)
	return re[:FrameSamples], nil
}

// DecodeFrame decodes one encoded frame with a default Decoder. Unknown
// profile IDs fall back to profile 0 silently.
func DecodeFrame(frame []byte) ([]float64, error) {
	var d Decoder
	return d.Decode(frame)
}
