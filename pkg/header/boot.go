package header

import (
	"github.com/bgrewell/bootimg-kit/pkg/consts"
	"github.com/bgrewell/bootimg-kit/pkg/encoding"
)

// BootImgHdrV0 is the first boot image header layout.
type BootImgHdrV0 struct {
	Magic         [consts.BOOT_MAGIC_SIZE]byte
	KernelSize    uint32 // size in bytes
	KernelAddr    uint32 // physical load addr
	RamdiskSize   uint32 // size in bytes
	RamdiskAddr   uint32 // physical load addr
	SecondSize    uint32 // size in bytes
	SecondAddr    uint32 // physical load addr
	TagsAddr      uint32 // physical addr for kernel tags
	PageSize      uint32 // flash page size we assume
	HeaderVersion uint32
	OSVersion     uint32
	Name          [consts.BOOT_NAME_SIZE]byte // asciiz product name
	Cmdline       [consts.BOOT_ARGS_SIZE]byte
	ID            [consts.BOOT_ID_WORDS]uint32 // timestamp / checksum / sha1 / etc
	ExtraCmdline  [consts.BOOT_EXTRA_ARGS_SIZE]byte
}

// NewBootImgHdrV0 returns a zeroed v0 header carrying the boot magic. The constructors of later versions
// also set header_version and, where the layout has one, header_size to the record's own size.
func NewBootImgHdrV0() BootImgHdrV0 {
	return BootImgHdrV0{Magic: bootMagic()}
}

func (*BootImgHdrV0) Size() int { return BOOT_IMG_HDR_V0_SIZE }

func (h *BootImgHdrV0) SetName(name string) error {
	return encoding.PutString(h.Name[:], name)
}

func (h *BootImgHdrV0) SetCmdline(cmdline string) error {
	return encoding.PutString(h.Cmdline[:], cmdline)
}

func (h *BootImgHdrV0) SetExtraCmdline(cmdline string) error {
	return encoding.PutString(h.ExtraCmdline[:], cmdline)
}

// MarshalBinary returns the 1632-byte on-disk representation.
func (h BootImgHdrV0) MarshalBinary() ([]byte, error) {
	return marshalRecord(&h, BOOT_IMG_HDR_V0_SIZE)
}

// UnmarshalBinary copies the first 1632 bytes of data into h.
func (h *BootImgHdrV0) UnmarshalBinary(data []byte) error {
	return unmarshalRecord(data, h, BOOT_IMG_HDR_V0_SIZE)
}

// BootImgHdrV1 is a v0 header followed by the recovery DTBO fields.
type BootImgHdrV1 struct {
	V0                 BootImgHdrV0
	RecoveryDtboSize   uint32 // size in bytes for recovery DTBO/ACPIO image
	RecoveryDtboOffset uint64 // offset to recovery dtbo/acpio in boot image
	HeaderSize         uint32
}

func NewBootImgHdrV1() BootImgHdrV1 {
	v0 := NewBootImgHdrV0()
	v0.HeaderVersion = 1
	return BootImgHdrV1{V0: v0, HeaderSize: BOOT_IMG_HDR_V1_SIZE}
}

func (*BootImgHdrV1) Size() int { return BOOT_IMG_HDR_V1_SIZE }

func (h BootImgHdrV1) MarshalBinary() ([]byte, error) {
	return marshalRecord(&h, BOOT_IMG_HDR_V1_SIZE)
}

func (h *BootImgHdrV1) UnmarshalBinary(data []byte) error {
	return unmarshalRecord(data, h, BOOT_IMG_HDR_V1_SIZE)
}

// BootImgHdrV2 is a v1 header followed by the DTB fields.
type BootImgHdrV2 struct {
	V1      BootImgHdrV1
	DtbSize uint32 // size in bytes for DTB image
	DtbAddr uint64 // physical load address for DTB image
}

func NewBootImgHdrV2() BootImgHdrV2 {
	v1 := NewBootImgHdrV1()
	v1.V0.HeaderVersion = 2
	v1.HeaderSize = BOOT_IMG_HDR_V2_SIZE
	return BootImgHdrV2{V1: v1}
}

func (*BootImgHdrV2) Size() int { return BOOT_IMG_HDR_V2_SIZE }

func (h BootImgHdrV2) MarshalBinary() ([]byte, error) {
	return marshalRecord(&h, BOOT_IMG_HDR_V2_SIZE)
}

func (h *BootImgHdrV2) UnmarshalBinary(data []byte) error {
	return unmarshalRecord(data, h, BOOT_IMG_HDR_V2_SIZE)
}

// BootImgHdrV3 starts a new layout family. Only Magic and HeaderVersion share offsets with v0-v2.
type BootImgHdrV3 struct {
	Magic             [consts.BOOT_MAGIC_SIZE]byte
	KernelSize        uint32
	RamdiskSize       uint32
	OSVersion         uint32
	HeaderSize        uint32
	Reserved          [4]uint32
	HeaderVersion     uint32
	PageSize          uint32
	KernelAddr        uint32
	RamdiskAddr       uint32
	VendorRamdiskSize uint32
	Cmdline           [consts.VENDOR_BOOT_ARGS_SIZE]byte
	TagsAddr          uint32
	Name              [consts.VENDOR_BOOT_NAME_SIZE]byte
	DtbSize           uint32
	DtbAddr           uint64
}

func NewBootImgHdrV3() BootImgHdrV3 {
	return BootImgHdrV3{
		Magic:         bootMagic(),
		HeaderSize:    BOOT_IMG_HDR_V3_SIZE,
		HeaderVersion: 3,
		PageSize:      consts.BOOT_IMAGE_HEADER_V3_PAGESIZE,
	}
}

func (*BootImgHdrV3) Size() int { return BOOT_IMG_HDR_V3_SIZE }

func (h *BootImgHdrV3) SetName(name string) error {
	return encoding.PutString(h.Name[:], name)
}

func (h *BootImgHdrV3) SetCmdline(cmdline string) error {
	return encoding.PutString(h.Cmdline[:], cmdline)
}

func (h BootImgHdrV3) MarshalBinary() ([]byte, error) {
	return marshalRecord(&h, BOOT_IMG_HDR_V3_SIZE)
}

func (h *BootImgHdrV3) UnmarshalBinary(data []byte) error {
	return unmarshalRecord(data, h, BOOT_IMG_HDR_V3_SIZE)
}

// BootImgHdrV4 is a v3 header followed by the boot signature size.
type BootImgHdrV4 struct {
	V3            BootImgHdrV3
	SignatureSize uint32 // size in bytes
}

func NewBootImgHdrV4() BootImgHdrV4 {
	v3 := NewBootImgHdrV3()
	v3.HeaderVersion = 4
	v3.HeaderSize = BOOT_IMG_HDR_V4_SIZE
	return BootImgHdrV4{V3: v3}
}

func (*BootImgHdrV4) Size() int { return BOOT_IMG_HDR_V4_SIZE }

func (h BootImgHdrV4) MarshalBinary() ([]byte, error) {
	return marshalRecord(&h, BOOT_IMG_HDR_V4_SIZE)
}

func (h *BootImgHdrV4) UnmarshalBinary(data []byte) error {
	return unmarshalRecord(data, h, BOOT_IMG_HDR_V4_SIZE)
}

func bootMagic() (m [consts.BOOT_MAGIC_SIZE]byte) {
	copy(m[:], consts.BOOT_MAGIC)
	return m
}
