/*
NAME
  pcm.go

DESCRIPTION
  pcm.go contains types and functions for processing PCM audio on its way
  in and out of the vox codec.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


// Package pcm provides functions for processing and converting PCM audio.
package pcm

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// SampleFormat is the format that a PCM Buffer's samples can be in.
type SampleFormat int

// Used to represent an unknown format.
const (
	Unknown SampleFormat = -1
)

// Sample formats that we use.
const (
	S16_LE SampleFormat = iota
	S32_LE
)

// BufferFormat contains the format for a PCM Buffer.
type BufferFormat struct {
	SFormat  SampleFormat
	Rate     uint
	Channels uint
}

// Buffer contains a buffer of PCM data and the format that it is in.
type Buffer struct {
	Format BufferFormat
	Data   []byte
}

// sampleBytes returns the number of bytes in a single sample of format f.
func sampleBytes(f SampleFormat) (int, error) {
	switch f {
	case S16_LE:
		return 2, nil
	case S32_LE:
		return 4, nil
	default:
		return 0, errors.Errorf("unhandled sample format: %v", f)
	}
}

// DataSize takes audio attributes describing PCM audio data and returns the size of that data.
func DataSize(rate, channels, bitDepth uint, period float64) int {
	return int(float64(channels) * float64(rate) * float64(bitDepth/8) * period)
}

// Resample downsamples Buffer b to rate Hz by averaging, returning a Buffer
// with the resampled data. The source rate must be an integer multiple of
// rate; trailing bytes short of a whole output sample are dropped.
func Resample(b Buffer, rate uint) (Buffer, error) {
	if b.Format.Rate == rate {
		return b, nil
	}
	if rate == 0 || b.Format.Rate%rate != 0 {
		return Buffer{}, errors.Errorf("unhandled rate ratio %v:%v, source must be a multiple of target", b.Format.Rate, rate)
	}
	ratio := int(b.Format.Rate / rate)

	sb, err := sampleBytes(b.Format.SFormat)
	if err != nil {
		return Buffer{}, err
	}
	frameLen := sb * int(b.Format.Channels)

	nOut := len(b.Data) / frameLen / ratio
	resampled := make([]byte, 0, nOut*frameLen)
	scratch := make([]byte, frameLen)

	// Average each run of ratio input samples per channel to make one
	// output sample.
	for i := 0; i < nOut; i++ {
		for c := 0; c < int(b.Format.Channels); c++ {
			var sum int64
			for j := 0; j < ratio; j++ {
				off := (i*ratio+j)*frameLen + c*sb
				switch b.Format.SFormat {
				case S16_LE:
					sum += int64(int16(binary.LittleEndian.Uint16(b.Data[off:])))
				case S32_LE:
					sum += int64(int32(binary.LittleEndian.Uint32(b.Data[off:])))
				}
			}
			avg := sum / int64(ratio)
			switch b.Format.SFormat {
			case S16_LE:
				binary.LittleEndian.PutUint16(scratch[c*sb:], uint16(int16(avg)))
			case S32_LE:
				binary.LittleEndian.PutUint32(scratch[c*sb:], uint32(int32(avg)))
			}
		}
		resampled = append(resampled, scratch...)
	}

	return Buffer{
		Format: BufferFormat{
			Channels: b.Format.Channels,
			SFormat:  b.Format.SFormat,
			Rate:     rate,
		},
		Data: resampled,
	}, nil
}

// StereoToMono mixes a stereo Buffer down to mono by averaging the left and
// right channels. A mono Buffer is returned unchanged.
func StereoToMono(b Buffer) (Buffer, error) {
	if b.Format.Channels == 1 {
		return b, nil
	}
	if b.Format.Channels != 2 {
		return Buffer{}, errors.Errorf("audio is not stereo or mono, it has %v channels", b.Format.Channels)
	}

	sb, err := sampleBytes(b.Format.SFormat)
	if err != nil {
		return Buffer{}, err
	}

	n := len(b.Data) / (2 * sb)
	mono := make([]byte, n*sb)
	for i := 0; i < n; i++ {
		switch b.Format.SFormat {
		case S16_LE:
			l := int32(int16(binary.LittleEndian.Uint16(b.Data[i*2*sb:])))
			r := int32(int16(binary.LittleEndian.Uint16(b.Data[i*2*sb+sb:])))
			binary.LittleEndian.PutUint16(mono[i*sb:], uint16(int16((l+r)/2)))
		case S32_LE:
			l := int64(int32(binary.LittleEndian.Uint32(b.Data[i*2*sb:])))
			r := int64(int32(binary.LittleEndian.Uint32(b.Data[i*2*sb+sb:])))
			binary.LittleEndian.PutUint32(mono[i*sb:], uint32(int32((l+r)/2)))
		}
	}

	return Buffer{
		Format: BufferFormat{
			Channels: 1,
			SFormat:  b.Format.SFormat,
			Rate:     b.Format.Rate,
		},
		Data: mono,
	}, nil
}

// String returns the string representation of a SampleFormat.
func (f SampleFormat) String() string {
	switch f {
	case S16_LE:
		return "S16_LE"
	case S32_LE:
		return "S32_LE"
	default:
		return "Unknown"
	}
}

// SFFromString takes a string representing a sample format and returns the corresponding SampleFormat.
func SFFromString(s string) (SampleFormat, error) {
	switch s {
	case "S16_LE":
		return S16_LE, nil
	case "S32_LE":
		return S32_LE, nil
	default:
		return Unknown, errors.Errorf("unknown sample format (%s)", s)
	}
}
