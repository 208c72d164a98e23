package header

import (
	"fmt"

	"github.com/bgrewell/bootimg-kit/pkg/consts"
	"github.com/bgrewell/bootimg-kit/pkg/encoding"
)

// VendorBootHdrV3 is the vendor boot header paired with v3 boot images.
type VendorBootHdrV3 struct {
	Magic             [consts.VENDOR_BOOT_MAGIC_SIZE]byte
	HeaderVersion     uint32
	PageSize          uint32 // flash page size we assume
	KernelAddr        uint32 // physical load addr
	RamdiskAddr       uint32 // physical load addr
	VendorRamdiskSize uint32 // size in bytes
	Cmdline           [consts.VENDOR_BOOT_ARGS_SIZE]byte
	TagsAddr          uint32 // physical addr for kernel tags
	Name              [consts.VENDOR_BOOT_NAME_SIZE]byte // asciiz product name
	HeaderSize        uint32
	DtbSize           uint32 // size in bytes for DTB image
	DtbAddr           uint64 // physical load address for DTB image
}

func NewVendorBootHdrV3() VendorBootHdrV3 {
	var magic [consts.VENDOR_BOOT_MAGIC_SIZE]byte
	copy(magic[:], consts.VENDOR_BOOT_MAGIC)
	return VendorBootHdrV3{
		Magic:         magic,
		HeaderVersion: 3,
		HeaderSize:    VENDOR_BOOT_HDR_V3_SIZE,
	}
}

func (*VendorBootHdrV3) Size() int { return VENDOR_BOOT_HDR_V3_SIZE }

func (h *VendorBootHdrV3) SetName(name string) error {
	return encoding.PutString(h.Name[:], name)
}

func (h *VendorBootHdrV3) SetCmdline(cmdline string) error {
	return encoding.PutString(h.Cmdline[:], cmdline)
}

func (h VendorBootHdrV3) MarshalBinary() ([]byte, error) {
	return marshalRecord(&h, VENDOR_BOOT_HDR_V3_SIZE)
}

func (h *VendorBootHdrV3) UnmarshalBinary(data []byte) error {
	return unmarshalRecord(data, h, VENDOR_BOOT_HDR_V3_SIZE)
}

// VendorBootHdrV4 is a v3 vendor header followed by the ramdisk table and bootconfig fields.
type VendorBootHdrV4 struct {
	V3                          VendorBootHdrV3
	VendorRamdiskTableSize      uint32 // size in bytes for the vendor ramdisk table
	VendorRamdiskTableEntryNum  uint32 // number of entries in the vendor ramdisk table
	VendorRamdiskTableEntrySize uint32 // size in bytes for a vendor ramdisk table entry
	BootconfigSize              uint32 // size in bytes for the bootconfig section
}

func NewVendorBootHdrV4() VendorBootHdrV4 {
	v3 := NewVendorBootHdrV3()
	v3.HeaderVersion = 4
	v3.HeaderSize = VENDOR_BOOT_HDR_V4_SIZE
	return VendorBootHdrV4{V3: v3}
}

func (*VendorBootHdrV4) Size() int { return VENDOR_BOOT_HDR_V4_SIZE }

func (h VendorBootHdrV4) MarshalBinary() ([]byte, error) {
	return marshalRecord(&h, VENDOR_BOOT_HDR_V4_SIZE)
}

func (h *VendorBootHdrV4) UnmarshalBinary(data []byte) error {
	return unmarshalRecord(data, h, VENDOR_BOOT_HDR_V4_SIZE)
}

// VendorRamdiskType classifies what a vendor ramdisk is for.
type VendorRamdiskType uint32

const (
	VENDOR_RAMDISK_TYPE_NONE VendorRamdiskType = iota
	VENDOR_RAMDISK_TYPE_PLATFORM
	VENDOR_RAMDISK_TYPE_RECOVERY
	VENDOR_RAMDISK_TYPE_DLKM
)

func (t VendorRamdiskType) String() string {
	switch t {
	case VENDOR_RAMDISK_TYPE_NONE:
		return "none"
	case VENDOR_RAMDISK_TYPE_PLATFORM:
		return "platform"
	case VENDOR_RAMDISK_TYPE_RECOVERY:
		return "recovery"
	case VENDOR_RAMDISK_TYPE_DLKM:
		return "dlkm"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(t))
	}
}

// VendorRamdiskTableEntryV4 describes one ramdisk in the vendor ramdisk section of a v4 vendor boot image.
type VendorRamdiskTableEntryV4 struct {
	RamdiskSize   uint32 // size in bytes for the ramdisk image
	RamdiskOffset uint32 // offset to the ramdisk image in vendor ramdisk section
	RamdiskType   VendorRamdiskType
	RamdiskName   [consts.VENDOR_RAMDISK_NAME_SIZE]byte // asciiz ramdisk name
	// Hardware identifiers describing the board, soc or platform which this ramdisk is intended to be
	// loaded on.
	BoardID [consts.VENDOR_RAMDISK_TABLE_ENTRY_BOARD_ID_SIZE]uint32
}

func (*VendorRamdiskTableEntryV4) Size() int { return VENDOR_RAMDISK_TABLE_ENTRY_V4_SIZE }

func (e *VendorRamdiskTableEntryV4) SetRamdiskName(name string) error {
	return encoding.PutString(e.RamdiskName[:], name)
}

func (e VendorRamdiskTableEntryV4) MarshalBinary() ([]byte, error) {
	return marshalRecord(&e, VENDOR_RAMDISK_TABLE_ENTRY_V4_SIZE)
}

func (e *VendorRamdiskTableEntryV4) UnmarshalBinary(data []byte) error {
	return unmarshalRecord(data, e, VENDOR_RAMDISK_TABLE_ENTRY_V4_SIZE)
}
