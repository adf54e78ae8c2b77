/*
NAME
  flac.go

DESCRIPTION
  flac.go provides functionality for decoding FLAC compressed audio into
  PCM buffers.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


// Package flac provides functionality for the decoding of FLAC compressed
// audio.
package flac

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/go-audio/audio"
	"github.com/mewkiz/flac"
	"github.com/pkg/errors"

	"github.com/ausocean/vox/codec/pcm"
)

// Decode decodes a FLAC byte slice to an S16_LE PCM buffer, preserving the
// stream's rate and channel count. Samples deeper than 16 bits are
// truncated; shallower samples are shifted up.
func Decode(buf []byte) (pcm.Buffer, error) {
	stream, err := flac.Parse(bytes.NewReader(buf))
	if err != nil {
		return pcm.Buffer{}, errors.Wrap(err, "could not parse FLAC")
	}

	bps := int(stream.Info.BitsPerSample)
	intBuf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: int(stream.Info.NChannels),
			SampleRate:  int(stream.Info.SampleRate),
		},
		SourceBitDepth: bps,
	}

	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pcm.Buffer{}, errors.Wrap(err, "could not parse FLAC frame")
		}
		for i := 0; i < frame.Subframes[0].NSamples; i++ {
			for _, subframe := range frame.Subframes {
				intBuf.Data = append(intBuf.Data, int(subframe.Samples[i]))
			}
		}
	}

	data := make([]byte, len(intBuf.Data)*2)
	for i, s := range intBuf.Data {
		switch {
		case bps > 16:
			s >>= uint(bps - 16)
		case bps < 16:
			s <<= uint(16 - bps)
		}
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(s)))
	}

	return pcm.Buffer{
		Format: pcm.BufferFormat{
			SFormat:  pcm.S16_LE,
			Rate:     uint(intBuf.Format.SampleRate),
			Channels: uint(intBuf.Format.NumChannels),
		},
		Data: data,
	}, nil
}
