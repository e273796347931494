package domain

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Key is the structural identity of a calculation: a canonical encoding of its
// kind and parameters together with the xxhash of that encoding.
// Two calculations with equal keys compute the same value on the same input.
type Key struct {
	canonical string
	hash      uint64
}

// Hash returns the 64-bit hash of the canonical encoding.
func (k Key) Hash() uint64 {
	return k.hash
}

// String returns the canonical encoding.
func (k Key) String() string {
	return k.canonical
}

// Equal reports whether both keys encode the same calculation.
func (k Key) Equal(other Key) bool {
	return k.hash == other.hash && k.canonical == other.canonical
}

// IsZero reports whether the key was never built.
func (k Key) IsZero() bool {
	return k.canonical == ""
}

// KeyBuilder accumulates the fields of a Key in order.
type KeyBuilder struct {
	sb     strings.Builder
	digest *xxhash.Digest
}

// NewKey starts a key for the given calculation kind.
func NewKey(kind string) *KeyBuilder {
	b := &KeyBuilder{digest: xxhash.New()}
	b.write(kind)
	return b
}

func (b *KeyBuilder) write(s string) {
	if b.sb.Len() > 0 {
		b.sb.WriteByte('|')
	}
	b.sb.WriteString(s)
	_, _ = b.digest.WriteString(s)
	_, _ = b.digest.Write([]byte{0}) // Separator
}

// String appends a named string field.
func (b *KeyBuilder) String(name, v string) *KeyBuilder {
	b.write(name + "=" + strconv.Quote(v))
	return b
}

// Int appends a named integer field.
func (b *KeyBuilder) Int(name string, v int) *KeyBuilder {
	b.write(name + "=" + strconv.Itoa(v))
	return b
}

// Float appends a named float field using its shortest exact representation.
func (b *KeyBuilder) Float(name string, v float64) *KeyBuilder {
	b.write(name + "=" + strconv.FormatFloat(v, 'g', -1, 64))
	return b
}

// Bool appends a named boolean field.
func (b *KeyBuilder) Bool(name string, v bool) *KeyBuilder {
	b.write(name + "=" + strconv.FormatBool(v))
	return b
}

// Key appends a nested key, e.g. the identity of a part this part depends on.
func (b *KeyBuilder) Key(name string, k Key) *KeyBuilder {
	b.write(name + "={" + k.canonical + "}")
	return b
}

// Build finalizes the key.
func (b *KeyBuilder) Build() Key {
	return Key{canonical: b.sb.String(), hash: b.digest.Sum64()}
}
