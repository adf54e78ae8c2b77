/*
NAME
  voxspeaker - plays a vox frame stream through an ALSA device.

AUTHORS
  Trek Hopton <trek@ausocean.org>
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


// voxspeaker decodes a vox frame stream and plays it through the first
// available ALSA playback device. Decoding runs ahead of playback through
// a ring buffer; bad frames are logged and dropped, and sequence gaps are
// reported.
package main

import (
	"errors"
	"flag"
	"io"
	"os"
	"time"

	yalsa "github.com/yobert/alsa"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"
	"github.com/ausocean/utils/pool"
	"github.com/ausocean/vox/codec/pcm"
	"github.com/ausocean/vox/codec/vox"
)

// Logging configuration.
const (
	logPath      = "/var/log/vox/voxspeaker.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logSuppress  = true
)

// Ring buffer tuning. Each element holds one decoded PCM frame, possibly
// duplicated to stereo for devices that will not negotiate mono.
const (
	rbLen         = 256
	rbElemSize    = vox.FrameSamples * 2 * 2
	rbTimeout     = 100 * time.Millisecond
	rbNextTimeout = 100 * time.Millisecond
)

func main() {
	var (
		inPath   = flag.String("in", "", "vox stream to play, or empty for stdin")
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

	in := io.Reader(os.Stdin)
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			log.Fatal("could not open input file", "error", err.Error())
		}
		defer f.Close()
		in = f
	}

	dev, channels, err := openPlayback(log)
	if err != nil {
		log.Fatal("could not open playback device", "error", err.Error())
	}
	defer dev.Close()

	buf := pool.NewBuffer(rbLen, rbElemSize, rbTimeout)
	go decodeStream(in, channels, buf, log)
	play(dev, buf, log)
}

// openPlayback finds and prepares the first ALSA playback device at the
// codec's rate and format, returning the device and its negotiated channel
// count.
func openPlayback(log logging.Logger) (*yalsa.Device, int, error) {
	cards, err := yalsa.OpenCards()
	if err != nil {
		return nil, 0, err
	}
	defer yalsa.CloseCards(cards)

	var dev *yalsa.Device
	for _, card := range cards {
		devices, err := card.Devices()
		if err != nil {
			return nil, 0, err
		}
		for _, d := range devices {
			if d.Type == yalsa.PCM && d.Play {
				dev = d
				break
			}
		}
		if dev != nil {
			break
		}
	}
	if dev == nil {
		return nil, 0, errors.New("no playback device found")
	}
	log.Debug("found playback device", "device", dev.Title)

	if err := dev.Open(); err != nil {
		return nil, 0, err
	}
	channels, err := dev.NegotiateChannels(1, 2)
	if err != nil {
		return nil, 0, err
	}
	if _, err := dev.NegotiateRate(vox.SampleRate); err != nil {
		return nil, 0, err
	}
	if _, err := dev.NegotiateFormat(yalsa.S16_LE); err != nil {
		return nil, 0, err
	}
	// Either 8192 or 16384 bytes is a reasonable ALSA buffer size.
	if _, err := dev.NegotiateBufferSize(8192, 16384); err != nil {
		return nil, 0, err
	}
	if err := dev.Prepare(); err != nil {
		return nil, 0, err
	}
	log.Debug("successfully negotiated ALSA params", "channels", channels)
	return dev, channels, nil
}

// decodeStream reads and decodes frames from in, writing PCM to the ring
// buffer until the stream ends. Mono samples are duplicated when the
// device negotiated stereo.
func decodeStream(in io.Reader, channels int, buf *pool.Buffer, log logging.Logger) {
	var (
		r       = vox.NewReader(in)
		dec     = vox.Decoder{UnknownProfile: func(id uint8) { log.Warning("unknown profile ID, using low", "id", id) }}
		lastSeq uint32
		n       int
	)
	for {
		frame, err := r.ReadFrame()
		if err == io.EOF {
			log.Info("end of stream", "frames", n)
			return
		}
		if err == io.ErrUnexpectedEOF {
			log.Warning("stream ends mid frame, decoding partial frame")
		} else if err != nil {
			log.Error("could not read frame", "error", err.Error())
			return
		}

		if seq, err := vox.Sequence(frame); err == nil {
			if n > 0 && seq != lastSeq+1 {
				log.Warning("sequence gap", "want", lastSeq+1, "got", seq)
			}
			lastSeq = seq
		}

		samples, err := dec.Decode(frame)
		if err != nil {
			log.Warning("dropping bad frame", "error", err.Error())
			continue
		}
		out, err := pcm.FromFloats(samples, pcm.BufferFormat{SFormat: pcm.S16_LE, Rate: vox.SampleRate, Channels: 1})
		if err != nil {
			log.Error("could not convert samples", "error", err.Error())
			return
		}
		data := out.Data
		if channels == 2 {
			data = make([]byte, 2*len(out.Data))
			for i := 0; i < len(out.Data); i += 2 {
				copy(data[2*i:], out.Data[i:i+2])
				copy(data[2*i+2:], out.Data[i:i+2])
			}
		}

		_, err = buf.Write(data)
		switch err {
		case nil:
		case pool.ErrDropped:
			log.Warning("dropped audio frame")
		default:
			log.Error("unexpected ring buffer error", "error", err.Error())
			return
		}
		n++
	}
}

// play reads PCM from the ring buffer and writes it to the device.
func play(dev *yalsa.Device, buf *pool.Buffer, log logging.Logger) {
	bytesPerFrame := 2 * dev.BufferFormat().Channels
	scratch := make([]byte, rbElemSize)
	for {
		chunk, err := buf.Next(rbNextTimeout)
		switch err {
		case nil:
			// Do nothing.
		case pool.ErrTimeout:
			continue
		case io.EOF:
			log.Error("unexpected EOF from pool.Next")
			return
		default:
			log.Error("unexpected error from pool.Next", "error", err.Error())
			return
		}

		n, err := io.ReadFull(buf, scratch[:chunk.Len()])
		if err != nil {
			log.Error("unexpected error from pool.Read", "error", err.Error())
			return
		}

		if err := dev.Write(scratch[:n], n/bytesPerFrame); err != nil {
			log.Error("could not write to device", "error", err.Error())
			return
		}
	}
}
