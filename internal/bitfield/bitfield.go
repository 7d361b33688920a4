// Package bitfield packs signed and unsigned ranges into a 32-bit word.
//
// Writes mask the value to the field width; they never saturate. A value
// that does not fit is truncated exactly as two's-complement hardware
// registers do.
package bitfield

import "fmt"

// WordBits is the width of the packed word.
const WordBits = 32

// mask returns a right-aligned mask of size ones.
// Shifts of 32 or more yield 0 in Go, so size 0 gives an empty mask.
func mask(size uint) uint32 {
	if size == 0 {
		return 0
	}
	return ^uint32(0) >> (WordBits - size)
}

// GetRange extracts the unsigned size-bit field at offset.
func GetRange(word uint32, offset, size uint) uint32 {
	return (word >> offset) & mask(size)
}

// SetRange returns word with the size-bit field at offset replaced by value.
// Bits of value above size are discarded.
func SetRange(word uint32, offset, size uint, value uint32) uint32 {
	m := mask(size) << offset
	return (word &^ m) | ((value << offset) & m)
}

// GetSignedRange extracts the size-bit field at offset as two's complement.
func GetSignedRange(word uint32, offset, size uint) int32 {
	if size == 0 {
		return 0
	}
	shift := WordBits - size
	// #nosec G115 -- reinterpretation of the raw bits is intended
	return int32(GetRange(word, offset, size)<<shift) >> shift
}

// SetSignedRange stores value as a size-bit two's-complement field.
func SetSignedRange(word uint32, offset, size uint, value int32) uint32 {
	// #nosec G115 -- truncation to the field width is intended
	return SetRange(word, offset, size, uint32(value))
}

// Field names a bit range once so call sites never repeat shift literals.
type Field struct {
	Offset uint
	Size   uint
}

// MustField returns a Field and panics if it does not fit in a word.
// Fields are package-level values, so the check runs at initialisation.
func MustField(offset, size uint) Field {
	if size == 0 || offset+size > WordBits {
		panic(fmt.Sprintf("bitfield: field offset=%d size=%d exceeds %d-bit word", offset, size, WordBits))
	}
	return Field{Offset: offset, Size: size}
}

// Flag returns a one-bit field at bit.
func Flag(bit uint) Field { return MustField(bit, 1) }

// Mask returns the in-place mask of the field.
func (f Field) Mask() uint32 { return mask(f.Size) << f.Offset }

// Get extracts the field unsigned.
func (f Field) Get(word uint32) uint32 { return GetRange(word, f.Offset, f.Size) }

// Set stores value, masked to the field width.
func (f Field) Set(word, value uint32) uint32 { return SetRange(word, f.Offset, f.Size, value) }

// GetSigned extracts the field as two's complement.
func (f Field) GetSigned(word uint32) int32 { return GetSignedRange(word, f.Offset, f.Size) }

// SetSigned stores value as two's complement, masked to the field width.
func (f Field) SetSigned(word uint32, value int32) uint32 {
	return SetSignedRange(word, f.Offset, f.Size, value)
}

// Min returns the smallest signed value the field holds.
func (f Field) Min() int32 { return -1 << (f.Size - 1) }

// Max returns the largest signed value the field holds.
func (f Field) Max() int32 { return 1<<(f.Size-1) - 1 }
