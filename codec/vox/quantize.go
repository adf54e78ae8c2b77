/*
NAME
  quantize.go

DESCRIPTION
  quantize.go contains the per-bin symmetric quantizer used by the vox
  codec.

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

import "math"

// quantize maps x onto an unsigned lattice of 2^bits levels spanning
// [-scale, scale]. The value is clipped to [-scale, scale] first; the clip
// is redundant when scale was computed as the frame's peak magnitude, but
// it keeps the silence-floor case well defined. scale must be positive.
func quantize(x, scale float64, bits uint8) uint32 {
	max := float64(uint32(1)<<bits - 1)
	if x > scale {
		x = scale
	} else if x < -scale {
		x = -scale
	}
	q := math.Round((x/scale + 1) / 2 * max)
	if q < 0 {
		return 0
	}
	if q > max {
		return uint32(max)
	}
	return uint32(q)
}

// dequantize is the inverse mapping of quantize.
func dequantize(q uint32, scale float64, bits uint8) float64 {
	max := float64(uint32(1)<<bits - 1)
	return (float64(q)/max*2 - 1) * scale
}
