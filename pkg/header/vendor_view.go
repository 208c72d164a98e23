package header

import (
	"github.com/bgrewell/bootimg-kit/pkg/consts"
)

// Field offsets within the vendor boot header family.
const (
	vndHeaderVersion     = consts.VENDOR_BOOT_VERSION_OFFSET
	vndPageSize          = 12
	vndKernelAddr        = 16
	vndRamdiskAddr       = 20
	vndVendorRamdiskSize = 24
	vndCmdline           = 28
	vndTagsAddr          = vndCmdline + consts.VENDOR_BOOT_ARGS_SIZE
	vndName              = vndTagsAddr + 4
	vndHeaderSize        = vndName + consts.VENDOR_BOOT_NAME_SIZE
	vndDtbSize           = vndHeaderSize + 4
	vndDtbAddr           = vndDtbSize + 4

	vnd4TableSize      = VENDOR_BOOT_HDR_V3_SIZE
	vnd4TableEntryNum  = vnd4TableSize + 4
	vnd4TableEntrySize = vnd4TableEntryNum + 4
	vnd4BootconfigSize = vnd4TableEntrySize + 4

	entRamdiskSize   = 0
	entRamdiskOffset = 4
	entRamdiskType   = 8
	entRamdiskName   = 12
	entBoardID       = entRamdiskName + consts.VENDOR_RAMDISK_NAME_SIZE
)

// VendorBootHdrV3View exposes the fields of a v3 vendor boot header in place.
type VendorBootHdrV3View struct {
	Ref[VendorBootHdrV3]
}

func (v VendorBootHdrV3View) Magic() []byte             { return v.field(0, consts.VENDOR_BOOT_MAGIC_SIZE) }
func (v VendorBootHdrV3View) HeaderVersion() uint32     { return v.u32(vndHeaderVersion) }
func (v VendorBootHdrV3View) PageSize() uint32          { return v.u32(vndPageSize) }
func (v VendorBootHdrV3View) KernelAddr() uint32        { return v.u32(vndKernelAddr) }
func (v VendorBootHdrV3View) RamdiskAddr() uint32       { return v.u32(vndRamdiskAddr) }
func (v VendorBootHdrV3View) VendorRamdiskSize() uint32 { return v.u32(vndVendorRamdiskSize) }
func (v VendorBootHdrV3View) Cmdline() []byte           { return v.field(vndCmdline, consts.VENDOR_BOOT_ARGS_SIZE) }
func (v VendorBootHdrV3View) TagsAddr() uint32          { return v.u32(vndTagsAddr) }
func (v VendorBootHdrV3View) Name() []byte              { return v.field(vndName, consts.VENDOR_BOOT_NAME_SIZE) }
func (v VendorBootHdrV3View) HeaderSize() uint32        { return v.u32(vndHeaderSize) }
func (v VendorBootHdrV3View) DtbSize() uint32           { return v.u32(vndDtbSize) }
func (v VendorBootHdrV3View) DtbAddr() uint64           { return v.u64(vndDtbAddr) }

// VendorBootHdrV4View exposes the fields of a v4 vendor boot header in place.
type VendorBootHdrV4View struct {
	Ref[VendorBootHdrV4]
}

// V3 returns the v3 vendor header the v4 header extends, over the same bytes.
func (v VendorBootHdrV4View) V3() VendorBootHdrV3View {
	return VendorBootHdrV3View{prefix[VendorBootHdrV3](v.Ref)}
}

func (v VendorBootHdrV4View) VendorRamdiskTableSize() uint32      { return v.u32(vnd4TableSize) }
func (v VendorBootHdrV4View) VendorRamdiskTableEntryNum() uint32  { return v.u32(vnd4TableEntryNum) }
func (v VendorBootHdrV4View) VendorRamdiskTableEntrySize() uint32 { return v.u32(vnd4TableEntrySize) }
func (v VendorBootHdrV4View) BootconfigSize() uint32              { return v.u32(vnd4BootconfigSize) }

// VendorRamdiskTableEntryV4View exposes the fields of one vendor ramdisk table entry in place.
type VendorRamdiskTableEntryV4View struct {
	Ref[VendorRamdiskTableEntryV4]
}

// NewVendorRamdiskTableEntryV4View views the table entry at the start of buf.
func NewVendorRamdiskTableEntryV4View(buf []byte) (VendorRamdiskTableEntryV4View, []byte, error) {
	r, rest, err := NewRef[VendorRamdiskTableEntryV4](buf)
	return VendorRamdiskTableEntryV4View{r}, rest, err
}

func (v VendorRamdiskTableEntryV4View) RamdiskSize() uint32   { return v.u32(entRamdiskSize) }
func (v VendorRamdiskTableEntryV4View) RamdiskOffset() uint32 { return v.u32(entRamdiskOffset) }

func (v VendorRamdiskTableEntryV4View) RamdiskType() VendorRamdiskType {
	return VendorRamdiskType(v.u32(entRamdiskType))
}

func (v VendorRamdiskTableEntryV4View) RamdiskName() []byte {
	return v.field(entRamdiskName, consts.VENDOR_RAMDISK_NAME_SIZE)
}

func (v VendorRamdiskTableEntryV4View) BoardID() (id [consts.VENDOR_RAMDISK_TABLE_ENTRY_BOARD_ID_SIZE]uint32) {
	v.words(id[:], entBoardID)
	return id
}
