/*
NAME
  wav.go

DESCRIPTION
  wav.go contains functions for encoding wav audio.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


// Package wav provides functions for converting wav audio.
package wav

import (
	"encoding/binary"
	"fmt"
)

const PCMFormat = 1 // PCMFormat defines the value for pcm audio as defined by the wav std.

// headerSize is the size of the canonical RIFF/WAVE header this package writes.
const headerSize = 44

var (
	errInvalidFormat   = fmt.Errorf("invalid or no format defined")
	errInvalidRate     = fmt.Errorf("invalid or no sample rate defined")
	errInvalidChannels = fmt.Errorf("invalid or no number of channels defined")
	errInvalidBitDepth = fmt.Errorf("invalid or no bit depth defined")
)

// Metadata defines the format of the audio for encoding.
type Metadata struct {
	AudioFormat int
	Channels    int
	SampleRate  int
	BitDepth    int
}

// WAV accumulates encoded wav audio.
type WAV struct {
	Metadata Metadata
	Audio    []byte
}

// Write encodes the given PCM audio bytes with the WAV's metadata,
// replacing any previously encoded audio. The number of bytes the encoded
// file occupies is returned.
func (w *WAV) Write(p []byte) (n int, err error) {
	if w.Metadata.AudioFormat != PCMFormat {
		return 0, errInvalidFormat
	}
	if w.Metadata.Channels <= 0 {
		return 0, errInvalidChannels
	}
	if w.Metadata.SampleRate <= 0 {
		return 0, errInvalidRate
	}
	if w.Metadata.BitDepth <= 0 || w.Metadata.BitDepth%8 != 0 {
		return 0, errInvalidBitDepth
	}

	header := make([]byte, headerSize)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(p)+headerSize-8))
	copy(header[8:12], "WAVE")

	// Format chunk.
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], PCMFormat)
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.Metadata.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.Metadata.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(w.Metadata.SampleRate*w.Metadata.Channels*w.Metadata.BitDepth/8))
	binary.LittleEndian.PutUint16(header[32:34], uint16(w.Metadata.Channels*w.Metadata.BitDepth/8))
	binary.LittleEndian.PutUint16(header[34:36], uint16(w.Metadata.BitDepth))

	// Data chunk.
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(p)))

	w.Audio = append(header, p...)
	return len(w.Audio), nil
}
