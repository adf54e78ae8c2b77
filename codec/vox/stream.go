/*
NAME
  stream.go

DESCRIPTION
  stream.go contains readers and writers for streams of concatenated vox
  frames.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/


package vox

import (
	"io"

	"github.com/pkg/errors"
)

// A vox stream is nothing more than encoded frames laid end to end. Frame
// length is not carried on the wire; a reader recovers it by resolving the
// profile named in each header.

// Writer writes encoded frames to an underlying io.Writer.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteFrame writes one encoded frame.
func (w *Writer) WriteFrame(frame []byte) error {
	if len(frame) < HeaderSize {
		return errors.Wrapf(ErrTooSmall, "frame length: %d", len(frame))
	}
	_, err := w.w.Write(frame)
	return err
}

// Reader reads encoded frames from an underlying io.Reader.
type Reader struct {
	r io.Reader
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadFrame reads the next frame from the stream. It returns io.EOF at a
// clean end of stream. A header claiming an unknown profile ID resolves to
// profile 0 for length purposes, mirroring the decoder's fallback. If the
// stream ends mid-frame the bytes read so far are returned along with
// io.ErrUnexpectedEOF; the partial frame is still decodable under the
// missing-bits-read-as-zero rule.
func (r *Reader) ReadFrame() ([]byte, error) {
	head := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r.r, head); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return nil, errors.Wrap(ErrTooSmall, "truncated header")
		}
		return nil, err
	}
	if head[0] != Version {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version: %d", head[0])
	}

	p, ok := ProfilesByID[head[2]]
	if !ok {
		p = ProfilesByID[0]
	}

	frame := make([]byte, HeaderSize+p.PayloadBytes)
	copy(frame, head)
	n, err := io.ReadFull(r.r, frame[HeaderSize:])
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return frame[:HeaderSize+n], io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}
	return frame, nil
}
