/*
NAME
  vox.go

DESCRIPTION
  vox.go contains the constants, errors and wire format description for the
  vox voice codec.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


// Package vox implements a perceptually weighted frequency-domain voice
// codec for realtime transport of mono PCM over message-oriented links.
//
// Each frame of FrameSamples PCM samples is transformed by a forward FFT,
// the low-frequency half of the spectrum is quantized bin by bin with a bit
// budget taken from an equal-loudness weighting table, and the packed bits
// are prefixed with a small fixed header. Decoding inverts each step and
// reconstructs the upper half of the spectrum by Hermitian symmetry.
//
// An encoded frame is HeaderSize + Profile.PayloadBytes bytes:
//
//	offset 0  1 byte   version, must equal Version
//	offset 1  1 byte   low byte of the profile's bin count (informational)
//	offset 2  1 byte   profile ID, the authoritative profile selector
//	offset 3  1 byte   reserved, zero
//	offset 4  4 bytes  scale, peak bin magnitude as little-endian float32
//	offset 8  4 bytes  sequence, little-endian uint32 frame counter
//
// The payload is a pure MSB-first bit stream of (real, imaginary) quantized
// pairs, one pair per encoded bin. Multi-byte header fields are
// little-endian; no endianness applies to the payload.
package vox

import "github.com/pkg/errors"

const (
	FrameSamples = 1024  // PCM samples per encoded frame.
	SampleRate   = 48000 // Sample rate in Hz, mono.
	FFTSize      = 1024  // FFT length; equal to FrameSamples.
	HeaderSize   = 12    // Fixed header bytes in every encoded frame.
	Version      = 2     // Wire format version written to byte 0.
)

// minScale is the silence guard. A frame whose peak bin magnitude falls
// below this encodes with scale = minScale so the quantizer's division is
// always defined.
const minScale = 1e-9

// Errors returned by the codec. Returned errors may carry context; test
// with errors.Cause or errors.Is.
var (
	ErrUnknownProfile     = errors.New("unknown profile")
	ErrBadFrameLength     = errors.New("bad frame length")
	ErrTooSmall           = errors.New("frame too small")
	ErrUnsupportedVersion = errors.New("unsupported frame version")
)

// Sequence returns the sequence number from an encoded frame's header.
// The counter is informational; transports use it to detect loss and
// reordering. It is not required for decoding.
func Sequence(frame []byte) (uint32, error) {
	if len(frame) < HeaderSize {
		return 0, errors.Wrapf(ErrTooSmall, "frame length: %d", len(frame))
	}
	return uint32(frame[8]) | uint32(frame[9])<<8 | uint32(frame[10])<<16 | uint32(frame[11])<<24, nil
}
