/*
NAME
  wav_test.go

DESCRIPTION
  wav_test.go contains tests for the wav package.

AUTHOR
  David Sutton <davidsutton@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


package wav

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestWavWriter(t *testing.T) {
	tests := []struct {
		name    string
		md      Metadata
		input   []byte
		wantN   int
		wantErr error
	}{
		{name: "header only", md: Metadata{AudioFormat: PCMFormat, Channels: 1, SampleRate: 48000, BitDepth: 16}, input: nil, wantN: 44, wantErr: nil},
		{name: "4 bytes", md: Metadata{AudioFormat: PCMFormat, Channels: 1, SampleRate: 48000, BitDepth: 16}, input: []byte{0, 0, 0, 0}, wantN: 48, wantErr: nil},
		{name: "no format", md: Metadata{Channels: 1, SampleRate: 48000, BitDepth: 16}, input: []byte{0, 0, 0, 0}, wantN: 0, wantErr: errInvalidFormat},
		{name: "invalid format", md: Metadata{AudioFormat: 2, Channels: 1, SampleRate: 48000, BitDepth: 16}, input: []byte{0, 0, 0, 0}, wantN: 0, wantErr: errInvalidFormat},
		{name: "no channels", md: Metadata{AudioFormat: PCMFormat, SampleRate: 48000, BitDepth: 16}, input: []byte{0, 0, 0, 0}, wantN: 0, wantErr: errInvalidChannels},
		{name: "no sample rate", md: Metadata{AudioFormat: PCMFormat, Channels: 1, BitDepth: 16}, input: []byte{0, 0, 0, 0}, wantN: 0, wantErr: errInvalidRate},
		{name: "no bit depth", md: Metadata{AudioFormat: PCMFormat, Channels: 1, SampleRate: 48000}, input: []byte{0, 0, 0, 0}, wantN: 0, wantErr: errInvalidBitDepth},
		{name: "uneven bit depth", md: Metadata{AudioFormat: PCMFormat, Channels: 1, SampleRate: 48000, BitDepth: 12}, input: []byte{0, 0, 0, 0}, wantN: 0, wantErr: errInvalidBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &WAV{Metadata: tt.md}

			gotN, err := w.Write(tt.input)
			if err != tt.wantErr {
				t.Errorf("WAV.Write() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if gotN != tt.wantN {
				t.Errorf("WAV.Write() = %v, want %v", gotN, tt.wantN)
			}
		})
	}
}

func TestWavHeader(t *testing.T) {
	w := &WAV{Metadata: Metadata{AudioFormat: PCMFormat, Channels: 1, SampleRate: 48000, BitDepth: 16}}
	audio := []byte{1, 2, 3, 4, 5, 6}
	if _, err := w.Write(audio); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := w.Audio
	if string(h[0:4]) != "RIFF" || string(h[8:12]) != "WAVE" || string(h[12:16]) != "fmt " || string(h[36:40]) != "data" {
		t.Fatal("chunk markers missing or misplaced")
	}
	if got := binary.LittleEndian.Uint32(h[4:8]); got != uint32(len(audio)+36) {
		t.Errorf("RIFF size = %d, want %d", got, len(audio)+36)
	}
	if got := binary.LittleEndian.Uint16(h[22:24]); got != 1 {
		t.Errorf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(h[24:28]); got != 48000 {
		t.Errorf("sample rate = %d, want 48000", got)
	}
	if got := binary.LittleEndian.Uint32(h[28:32]); got != 96000 {
		t.Errorf("byte rate = %d, want 96000", got)
	}
	if got := binary.LittleEndian.Uint32(h[40:44]); got != uint32(len(audio)) {
		t.Errorf("data size = %d, want %d", got, len(audio))
	}
	if !bytes.Equal(h[44:], audio) {
		t.Error("audio bytes do not follow the header")
	}
}
