// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package checksum implements the Internet checksum described in RFC 1071.
package checksum

// Sum returns the 16-bit one's complement of the one's complement sum
// of b, read as a sequence of big-endian 16-bit words.
//
// A trailing odd byte is padded with a zero byte to form the final word.
// The result is meant to be written into the packet in network byte order.
func Sum(b []byte) uint16 {
	return ^fold(sum(b))
}

// Verify reports whether b, which already carries its checksum,
// passes the RFC 1071 verification: the folded sum over the whole
// buffer is all ones.
func Verify(b []byte) bool {
	return fold(sum(b)) == 0xffff
}

func sum(b []byte) uint32 {
	var s uint32
	n := len(b)
	for i := 0; i+1 < n; i += 2 {
		s += uint32(b[i])<<8 | uint32(b[i+1])
	}
	if n%2 == 1 {
		s += uint32(b[n-1]) << 8
	}
	return s
}

// fold folds the carries of the 32-bit accumulator back into 16 bits.
// Two rounds are enough: the first can itself carry at most once.
func fold(s uint32) uint16 {
	s = (s >> 16) + (s & 0xffff)
	s += s >> 16
	return uint16(s)
}
