/*
NAME
  floats.go

DESCRIPTION
  floats.go contains conversions between PCM byte buffers and the float
  frames consumed by the vox codec, along with level helpers.

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
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// ToFloats converts a mono Buffer to samples in [-1, 1].
func ToFloats(b Buffer) ([]float64, error) {
	if b.Format.Channels != 1 {
		return nil, errors.Errorf("audio must be mono, has %v channels", b.Format.Channels)
	}
	sb, err := sampleBytes(b.Format.SFormat)
	if err != nil {
		return nil, err
	}
	if len(b.Data)%sb != 0 {
		return nil, errors.Errorf("buffer of %d bytes is not a whole number of samples", len(b.Data))
	}

	out := make([]float64, len(b.Data)/sb)
	for i := range out {
		switch b.Format.SFormat {
		case S16_LE:
			out[i] = math.Max(-1, float64(int16(binary.LittleEndian.Uint16(b.Data[i*sb:])))/math.MaxInt16)
		case S32_LE:
			out[i] = math.Max(-1, float64(int32(binary.LittleEndian.Uint32(b.Data[i*sb:])))/math.MaxInt32)
		}
	}
	return out, nil
}

// FromFloats converts samples in [-1, 1] to a mono Buffer in format f.
// Out-of-range samples are clipped rather than wrapped.
func FromFloats(samples []float64, f BufferFormat) (Buffer, error) {
	if f.Channels != 1 {
		return Buffer{}, errors.Errorf("audio must be mono, want %v channels", f.Channels)
	}
	sb, err := sampleBytes(f.SFormat)
	if err != nil {
		return Buffer{}, err
	}

	data := make([]byte, len(samples)*sb)
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		switch f.SFormat {
		case S16_LE:
			s := int16(math.Round(v * math.MaxInt16))
			binary.LittleEndian.PutUint16(data[i*sb:], uint16(s))
		case S32_LE:
			s := int32(math.Round(v * math.MaxInt32))
			binary.LittleEndian.PutUint32(data[i*sb:], uint32(s))
		}
	}
	return Buffer{Format: f, Data: data}, nil
}

// Frames converts a mono Buffer to float frames of n samples each. The
// final frame is zero padded to length if the buffer does not divide
// evenly.
func Frames(b Buffer, n int) ([][]float64, error) {
	if n <= 0 {
		return nil, errors.Errorf("invalid frame size: %d", n)
	}
	samples, err := ToFloats(b)
	if err != nil {
		return nil, err
	}

	var frames [][]float64
	for off := 0; off < len(samples); off += n {
		frame := make([]float64, n)
		copy(frame, samples[off:])
		frames = append(frames, frame)
	}
	return frames, nil
}

// RMS returns the root mean square level of the samples, or 0 for an empty
// slice.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Peak returns the peak absolute level of the samples.
func Peak(samples []float64) float64 {
	var p float64
	for _, v := range samples {
		if a := math.Abs(v); a > p {
			p = a
		}
	}
	return p
}

// DBFS converts a level in [0, 1] to decibels relative to full scale.
// Zero level returns -inf.
func DBFS(level float64) float64 {
	return 20 * math.Log10(level)
}
