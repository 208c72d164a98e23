package header

import "encoding/binary"

// Encoded sizes of every header record. encoding/binary lays structs out without padding, so these are
// both the on-disk sizes and binary.Size of the corresponding Go types.
const (
	BOOT_IMG_HDR_V0_SIZE               = 1632
	BOOT_IMG_HDR_V1_SIZE               = BOOT_IMG_HDR_V0_SIZE + 4 + 8 + 4
	BOOT_IMG_HDR_V2_SIZE               = BOOT_IMG_HDR_V1_SIZE + 4 + 8
	BOOT_IMG_HDR_V3_SIZE               = 2140
	BOOT_IMG_HDR_V4_SIZE               = BOOT_IMG_HDR_V3_SIZE + 4
	VENDOR_BOOT_HDR_V3_SIZE            = 2112
	VENDOR_BOOT_HDR_V4_SIZE            = VENDOR_BOOT_HDR_V3_SIZE + 4*4
	VENDOR_RAMDISK_TABLE_ENTRY_V4_SIZE = 4 + 4 + 4 + 32 + 16*4
)

// Layout is satisfied by a pointer to any fixed-layout record in this package. Size does not dereference
// its receiver, so it may be called on a nil pointer.
type Layout[T any] interface {
	*T
	Size() int
}

func marshalRecord(v any, size int) ([]byte, error) {
	return binary.Append(make([]byte, 0, size), binary.LittleEndian, v)
}

func unmarshalRecord(data []byte, v any, size int) error {
	if len(data) < size {
		return ErrBufferTooSmall
	}
	_, err := binary.Decode(data[:size], binary.LittleEndian, v)
	return err
}
