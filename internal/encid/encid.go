// Package encid implements the 64-symbol positional numeral system used to
// render docIDs compactly on disk. It has no teacher analogue as a standalone
// unit — it plays the role eutils/poster.go's Master.TermOffset/PostOffset
// int32 fields play (a compact positional reference into on-disk data) but
// as a bespoke fixed alphabet rather than raw binary integers, so the
// indexer's postings and titles stay plain text per the spec. No library in
// the example pack implements this alphabet (the closest, encoding/base64
// and x/text's base64x transitively via AleutianFOSS, both use a different,
// non-custom alphabet and padding scheme), so this is hand-rolled arithmetic
// over a fixed byte table.
package encid

import "fmt"

// Alphabet is the 64-symbol table, bit-exact with the spec: "#+" followed by
// the ten digits, the 26 uppercase letters, then the 26 lowercase letters.
// None of these bytes is ':', preserving the encID:encTF posting format.
const Alphabet = "#+0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Base is the radix of the positional system.
const Base = uint64(len(Alphabet))

// Width is the normalized field width used for lexicographic ID comparisons.
const Width = 8

// ZeroSymbol is Alphabet[0], used to left-pad encoded IDs to Width.
var ZeroSymbol = Alphabet[0]

var reverse = buildReverse()

func buildReverse() [256]int8 {
	var r [256]int8
	for i := range r {
		r[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		r[Alphabet[i]] = int8(i)
	}
	return r
}

// Encode renders n in the 64-symbol alphabet, most significant symbol first,
// with at least one symbol (Encode(0) == "#", Encode(1) == "+").
func Encode(n uint64) string {
	if n == 0 {
		return string(ZeroSymbol)
	}

	var buf [16]byte // 64^11 already exceeds math.MaxUint64, 16 is ample
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = Alphabet[n%Base]
		n /= Base
	}
	return string(buf[i:])
}

// Decode parses an encoded ID back into its integer value.
func Decode(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("encid: empty encoded id")
	}

	var n uint64
	for i := 0; i < len(s); i++ {
		v := reverse[s[i]]
		if v < 0 {
			return 0, fmt.Errorf("encid: invalid symbol %q in %q", s[i], s)
		}
		n = n*Base + uint64(v)
	}
	return n, nil
}

// Pad left-pads s with ZeroSymbol to Width so that byte-lexicographic order
// over padded strings matches numeric order over the values they encode.
func Pad(s string) string {
	if len(s) >= Width {
		return s
	}
	var buf [Width]byte
	pad := Width - len(s)
	for i := 0; i < pad; i++ {
		buf[i] = ZeroSymbol
	}
	copy(buf[pad:], s)
	return string(buf[:])
}
