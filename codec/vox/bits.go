/*
NAME
  bits.go

DESCRIPTION
  bits.go contains the MSB-first bit packing and unpacking used for vox
  frame payloads.

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

// writeBits writes the low n bits of v into buf, most significant bit
// first, starting at bit index bitIdx of byte base. Within a byte, bit 7
// (0x80) is written first and bit 0 last. Bits are placed with bitwise OR,
// so the target bytes must be zero. The bit index following the written
// bits is returned.
func writeBits(buf []byte, base, bitIdx int, v uint32, n int) int {
	for i := n - 1; i >= 0; i-- {
		if v>>uint(i)&1 != 0 {
			abs := base*8 + bitIdx
			buf[abs>>3] |= 0x80 >> uint(abs&7)
		}
		bitIdx++
	}
	return bitIdx
}

// readBits reads n bits from buf starting at bit index bitIdx of byte
// base, most significant bit first, and returns them right-justified.
// Bits past the end of buf read as zero rather than panicking. The caller
// advances its own bit index.
func readBits(buf []byte, base, bitIdx, n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		abs := base*8 + bitIdx + i
		v <<= 1
		if k := abs >> 3; k < len(buf) && buf[k]&(0x80>>uint(abs&7)) != 0 {
			v |= 1
		}
	}
	return v
}
