package encoding

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// MarshalString encodes the given string as a NUL padded byte array of the given length. The string is
// truncated if it does not fit.
func MarshalString(s string, padToLength int) []byte {
	b := make([]byte, padToLength)
	copy(b, s)
	return b
}

// UnmarshalString decodes an ASCII-Z field: everything up to the first NUL, or the whole field if there is
// no terminator.
func UnmarshalString(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return string(data)
}

// PutString writes s into dst as an ASCII-Z field, zeroing the remainder. The terminating NUL must fit,
// so s may be at most len(dst)-1 bytes long.
func PutString(dst []byte, s string) error {
	if len(s) >= len(dst) {
		return fmt.Errorf("string of %d bytes does not fit a %d byte field", len(s), len(dst))
	}
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("string contains a NUL byte")
	}
	copy(dst, MarshalString(s, len(dst)))
	return nil
}

// UnmarshalUint32LE decodes a little-endian 32-bit integer from the start of data.
func UnmarshalUint32LE(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, io.ErrUnexpectedEOF
	}
	return binary.LittleEndian.Uint32(data), nil
}

// FormatWords renders a vector of 32-bit words (id digests, board ids) as contiguous little-endian hex, the
// way the words are laid out on disk.
func FormatWords(words []uint32) string {
	var sb strings.Builder
	var tmp [4]byte
	for _, w := range words {
		binary.LittleEndian.PutUint32(tmp[:], w)
		fmt.Fprintf(&sb, "%x", tmp[:])
	}
	return sb.String()
}
