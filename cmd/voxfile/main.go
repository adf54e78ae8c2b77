/*
NAME
  voxfile - file transcoder between PCM audio and vox frame streams.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


// voxfile encodes WAV, FLAC or raw PCM audio files to vox frame streams
// and decodes vox streams back to WAV. Input audio is mixed down to mono
// and downsampled to the codec rate as required; input whose rate is not a
// whole multiple of the codec rate is rejected. An optional FIR lowpass
// conditions the input to the encoding profile's cutoff first.
package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	gowav "github.com/go-audio/wav"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/vox/codec/flac"
	"github.com/ausocean/vox/codec/pcm"
	"github.com/ausocean/vox/codec/vox"
	"github.com/ausocean/vox/codec/wav"
)

// Logging configuration.
const (
	logPath      = "/var/log/vox/voxfile.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logSuppress  = true
)

// Length of the conditioning lowpass filter.
const lowPassTaps = 256

func main() {
	var (
		inPath   = flag.String("in", "", "input file (.wav, .flac, .vox or raw S16_LE PCM)")
		outPath  = flag.String("out", "", "output file")
		profile  = flag.String("profile", "medium", "encoding profile: low, medium, high or full")
		decode   = flag.Bool("decode", false, "decode a vox stream to WAV instead of encoding")
		lowpass  = flag.Bool("lowpass", false, "lowpass the input at the profile's cutoff before encoding")
		logLevel = flag.Int("LogLevel", int(logging.Info), "log level")
	)
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(int8(*logLevel), io.MultiWriter(fileLog, os.Stderr), logSuppress)

	if *inPath == "" || *outPath == "" {
		log.Fatal("both -in and -out must be provided, check usage")
	}

	if *decode {
		decodeFile(*inPath, *outPath, log)
		return
	}
	encodeFile(*inPath, *outPath, *profile, *lowpass, log)
}

// encodeFile reads a PCM audio file, conditions it and writes a vox stream.
func encodeFile(inPath, outPath, profile string, lowpass bool, log logging.Logger) {
	p, ok := vox.Profiles[profile]
	if !ok {
		log.Fatal("unknown profile", "profile", profile)
	}

	buf, err := readAudioFile(inPath, log)
	if err != nil {
		log.Fatal("could not read input audio", "error", err.Error())
	}

	buf, err = pcm.StereoToMono(buf)
	if err != nil {
		log.Fatal("could not mix down to mono", "error", err.Error())
	}
	buf, err = pcm.Resample(buf, vox.SampleRate)
	if err != nil {
		log.Fatal("could not resample", "error", err.Error(), "rate", buf.Format.Rate)
	}

	samples, err := pcm.ToFloats(buf)
	if err != nil {
		log.Fatal("could not convert samples", "error", err.Error())
	}
	log.Info("input audio", "samples", len(samples), "rms", pcm.DBFS(pcm.RMS(samples)), "peak", pcm.DBFS(pcm.Peak(samples)))

	if lowpass {
		cutoff := float64(p.BinCount) * vox.SampleRate / vox.FFTSize
		lp, err := pcm.NewLowPass(cutoff, vox.SampleRate, lowPassTaps)
		if err != nil {
			log.Fatal("could not create lowpass filter", "error", err.Error())
		}
		samples, err = lp.Apply(samples)
		if err != nil {
			log.Fatal("could not apply lowpass filter", "error", err.Error())
		}
		log.Debug("lowpassed input", "cutoff", cutoff)
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatal("could not create output file", "error", err.Error())
	}
	defer out.Close()

	var (
		enc    = vox.NewEncoder()
		w      = vox.NewWriter(out)
		nBytes int
		n      int
	)
	frame := make([]float64, vox.FrameSamples)
	for off := 0; off < len(samples); off += vox.FrameSamples {
		for i := range frame {
			frame[i] = 0
		}
		copy(frame, samples[off:])

		encoded, err := enc.Encode(frame, profile)
		if err != nil {
			log.Fatal("could not encode frame", "error", err.Error())
		}
		if err := w.WriteFrame(encoded); err != nil {
			log.Fatal("could not write frame", "error", err.Error())
		}
		n++
		nBytes += len(encoded)
	}

	log.Info("encoded", "frames", n, "bytes", nBytes, "profile", profile)
}

// decodeFile reads a vox stream and writes the decoded PCM as WAV.
func decodeFile(inPath, outPath string, log logging.Logger) {
	in, err := os.Open(inPath)
	if err != nil {
		log.Fatal("could not open input file", "error", err.Error())
	}
	defer in.Close()

	var (
		r       = vox.NewReader(in)
		dec     = vox.Decoder{UnknownProfile: func(id uint8) { log.Warning("unknown profile ID, using low", "id", id) }}
		samples []float64
		n       int
	)
	for {
		frame, err := r.ReadFrame()
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			log.Warning("stream ends mid frame, decoding partial frame")
		} else if err != nil {
			log.Fatal("could not read frame", "error", err.Error())
		}

		decoded, err := dec.Decode(frame)
		if err != nil {
			log.Warning("dropping bad frame", "error", err.Error())
			continue
		}
		samples = append(samples, decoded...)
		n++
	}
	log.Info("decoded", "frames", n, "rms", pcm.DBFS(pcm.RMS(samples)), "peak", pcm.DBFS(pcm.Peak(samples)))

	buf, err := pcm.FromFloats(samples, pcm.BufferFormat{SFormat: pcm.S16_LE, Rate: vox.SampleRate, Channels: 1})
	if err != nil {
		log.Fatal("could not convert samples", "error", err.Error())
	}

	w := &wav.WAV{Metadata: wav.Metadata{AudioFormat: wav.PCMFormat, Channels: 1, SampleRate: vox.SampleRate, BitDepth: 16}}
	if _, err := w.Write(buf.Data); err != nil {
		log.Fatal("could not encode WAV", "error", err.Error())
	}
	if err := os.WriteFile(outPath, w.Audio, 0o644); err != nil {
		log.Fatal("could not write output file", "error", err.Error())
	}
}

// readAudioFile loads a WAV, FLAC or raw S16_LE file as a PCM buffer. Raw
// input is assumed to be mono at the codec rate.
func readAudioFile(path string, log logging.Logger) (pcm.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pcm.Buffer{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return readWAV(data)
	case ".flac":
		return flac.Decode(data)
	default:
		log.Debug("treating input as raw S16_LE PCM", "file", path)
		return pcm.Buffer{
			Format: pcm.BufferFormat{SFormat: pcm.S16_LE, Rate: vox.SampleRate, Channels: 1},
			Data:   data,
		}, nil
	}
}

// readWAV decodes a WAV file to an S16_LE PCM buffer.
func readWAV(data []byte) (pcm.Buffer, error) {
	d := gowav.NewDecoder(bytes.NewReader(data))
	intBuf, err := d.FullPCMBuffer()
	if err != nil {
		return pcm.Buffer{}, err
	}

	bps := int(d.BitDepth)
	out := make([]byte, len(intBuf.Data)*2)
	for i, s := range intBuf.Data {
		switch {
		case bps > 16:
			s >>= uint(bps - 16)
		case bps < 16:
			s <<= uint(16 - bps)
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(s)))
	}

	return pcm.Buffer{
		Format: pcm.BufferFormat{
			SFormat:  pcm.S16_LE,
			Rate:     uint(d.SampleRate),
			Channels: uint(d.NumChans),
		},
		Data: out,
	}, nil
}
