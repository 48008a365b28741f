// Package item defines the opaque unit of data handled by the reconciliation
// framework. An Item is immutable after construction; its digest is computed
// once and reused by strategies for equality checks and derived encodings.
package item

import (
	"bytes"
	"encoding/hex"
	"errors"

	"github.com/spacemeshos/go-scale"
	"github.com/zeebo/blake3"
	"go.uber.org/zap/zapcore"
)

const (
	// MaxSize is the maximum length of a single item in bytes.
	MaxSize = 1 << 20

	// DigestSize is the size of an item digest in bytes.
	DigestSize = 32
)

// ErrTooLarge is returned when an item exceeds MaxSize.
var ErrTooLarge = errors.New("item exceeds maximum representable size")

// Digest is the blake3 digest of an item's contents.
type Digest [DigestSize]byte

// String implements fmt.Stringer.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ShortString returns a shortened representation of the digest.
func (d Digest) ShortString() string {
	return hex.EncodeToString(d[:5])
}

// Item is an opaque, immutable value held by a peer's store.
// The zero value is an empty item with a zero digest; valid items are created
// via New or FromString.
type Item struct {
	data   []byte
	digest Digest
}

// New creates an Item from the passed bytes. The bytes are copied so that the
// item stays stable even if the caller reuses the buffer.
func New(data []byte) (Item, error) {
	if len(data) > MaxSize {
		return Item{}, ErrTooLarge
	}
	it := Item{data: bytes.Clone(data)}
	it.digest = blake3.Sum256(it.data)
	return it, nil
}

// FromString creates an Item from a string.
// It panics if the string exceeds MaxSize, which makes it convenient for
// literals in examples and tests.
func FromString(s string) Item {
	it, err := New([]byte(s))
	if err != nil {
		panic("item: " + err.Error())
	}
	return it
}

// Bytes returns the item contents. The returned slice must not be modified.
func (it Item) Bytes() []byte {
	return it.data
}

// Size returns the length of the item contents in bytes.
func (it Item) Size() int {
	return len(it.data)
}

// Hash returns the cached blake3 digest of the item contents.
func (it Item) Hash() Digest {
	return it.digest
}

// Equal reports whether two items hold the same contents.
func (it Item) Equal(other Item) bool {
	return it.digest == other.digest
}

// Compare orders items by their contents.
func (it Item) Compare(other Item) int {
	return bytes.Compare(it.data, other.data)
}

// String implements fmt.Stringer.
func (it Item) String() string {
	if len(it.data) <= 8 {
		return hex.EncodeToString(it.data)
	}
	return hex.EncodeToString(it.data[:8]) + "..."
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (it Item) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("digest", it.digest.ShortString())
	enc.AddInt("size", len(it.data))
	return nil
}

// EncodeScale implements scale codec interface.
func (it *Item) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByteSliceWithLimit(enc, it.data, MaxSize)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (it *Item) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeByteSliceWithLimit(dec, MaxSize)
		if err != nil {
			return total, err
		}
		total += n
		it.data = field
	}
	it.digest = blake3.Sum256(it.data)
	return total, nil
}

// List is an ordered sequence of items.
type List []Item

// Contains reports whether the list holds an item equal to it.
func (l List) Contains(it Item) bool {
	for _, other := range l {
		if other.Equal(it) {
			return true
		}
	}
	return false
}

// MarshalLogArray implements zapcore.ArrayMarshaler.
func (l List) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	n := 0
	for _, it := range l {
		if n == 3 {
			enc.AppendString("...")
			break
		}
		enc.AppendString(it.Hash().ShortString())
		n++
	}
	return nil
}
