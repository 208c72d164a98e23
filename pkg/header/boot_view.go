package header

import "github.com/bgrewell/bootimg-kit/pkg/consts"

// Field offsets within the v0-v2 boot header family.
const (
	v0KernelSize    = 8
	v0KernelAddr    = 12
	v0RamdiskSize   = 16
	v0RamdiskAddr   = 20
	v0SecondSize    = 24
	v0SecondAddr    = 28
	v0TagsAddr      = 32
	v0PageSize      = 36
	v0HeaderVersion = consts.BOOT_VERSION_OFFSET
	v0OSVersion     = 44
	v0Name          = 48
	v0Cmdline       = v0Name + consts.BOOT_NAME_SIZE
	v0ID            = v0Cmdline + consts.BOOT_ARGS_SIZE
	v0ExtraCmdline  = v0ID + 4*consts.BOOT_ID_WORDS

	v1RecoveryDtboSize   = BOOT_IMG_HDR_V0_SIZE
	v1RecoveryDtboOffset = v1RecoveryDtboSize + 4
	v1HeaderSize         = v1RecoveryDtboOffset + 8

	v2DtbSize = BOOT_IMG_HDR_V1_SIZE
	v2DtbAddr = v2DtbSize + 4
)

// Field offsets within the v3-v4 boot header family.
const (
	v3KernelSize        = 8
	v3RamdiskSize       = 12
	v3OSVersion         = 16
	v3HeaderSize        = 20
	v3Reserved          = 24
	v3HeaderVersion     = consts.BOOT_VERSION_OFFSET
	v3PageSize          = 44
	v3KernelAddr        = 48
	v3RamdiskAddr       = 52
	v3VendorRamdiskSize = 56
	v3Cmdline           = 60
	v3TagsAddr          = v3Cmdline + consts.VENDOR_BOOT_ARGS_SIZE
	v3Name              = v3TagsAddr + 4
	v3DtbSize           = v3Name + consts.VENDOR_BOOT_NAME_SIZE
	v3DtbAddr           = v3DtbSize + 4

	v4SignatureSize = BOOT_IMG_HDR_V3_SIZE
)

// BootImgHdrV0View exposes the fields of a v0 boot header in place.
type BootImgHdrV0View struct {
	Ref[BootImgHdrV0]
}

func (v BootImgHdrV0View) Magic() []byte         { return v.field(0, consts.BOOT_MAGIC_SIZE) }
func (v BootImgHdrV0View) KernelSize() uint32    { return v.u32(v0KernelSize) }
func (v BootImgHdrV0View) KernelAddr() uint32    { return v.u32(v0KernelAddr) }
func (v BootImgHdrV0View) RamdiskSize() uint32   { return v.u32(v0RamdiskSize) }
func (v BootImgHdrV0View) RamdiskAddr() uint32   { return v.u32(v0RamdiskAddr) }
func (v BootImgHdrV0View) SecondSize() uint32    { return v.u32(v0SecondSize) }
func (v BootImgHdrV0View) SecondAddr() uint32    { return v.u32(v0SecondAddr) }
func (v BootImgHdrV0View) TagsAddr() uint32      { return v.u32(v0TagsAddr) }
func (v BootImgHdrV0View) PageSize() uint32      { return v.u32(v0PageSize) }
func (v BootImgHdrV0View) HeaderVersion() uint32 { return v.u32(v0HeaderVersion) }
func (v BootImgHdrV0View) OSVersion() uint32     { return v.u32(v0OSVersion) }
func (v BootImgHdrV0View) Name() []byte          { return v.field(v0Name, consts.BOOT_NAME_SIZE) }
func (v BootImgHdrV0View) Cmdline() []byte       { return v.field(v0Cmdline, consts.BOOT_ARGS_SIZE) }

func (v BootImgHdrV0View) ID() (id [consts.BOOT_ID_WORDS]uint32) {
	v.words(id[:], v0ID)
	return id
}

func (v BootImgHdrV0View) ExtraCmdline() []byte {
	return v.field(v0ExtraCmdline, consts.BOOT_EXTRA_ARGS_SIZE)
}

// BootImgHdrV1View exposes the fields of a v1 boot header in place.
type BootImgHdrV1View struct {
	Ref[BootImgHdrV1]
}

// V0 returns the v0 header the v1 header extends, over the same bytes.
func (v BootImgHdrV1View) V0() BootImgHdrV0View {
	return BootImgHdrV0View{prefix[BootImgHdrV0](v.Ref)}
}

func (v BootImgHdrV1View) RecoveryDtboSize() uint32   { return v.u32(v1RecoveryDtboSize) }
func (v BootImgHdrV1View) RecoveryDtboOffset() uint64 { return v.u64(v1RecoveryDtboOffset) }
func (v BootImgHdrV1View) HeaderSize() uint32         { return v.u32(v1HeaderSize) }

// BootImgHdrV2View exposes the fields of a v2 boot header in place.
type BootImgHdrV2View struct {
	Ref[BootImgHdrV2]
}

// V1 returns the v1 header the v2 header extends, over the same bytes.
func (v BootImgHdrV2View) V1() BootImgHdrV1View {
	return BootImgHdrV1View{prefix[BootImgHdrV1](v.Ref)}
}

func (v BootImgHdrV2View) DtbSize() uint32 { return v.u32(v2DtbSize) }
func (v BootImgHdrV2View) DtbAddr() uint64 { return v.u64(v2DtbAddr) }

// BootImgHdrV3View exposes the fields of a v3 boot header in place.
type BootImgHdrV3View struct {
	Ref[BootImgHdrV3]
}

func (v BootImgHdrV3View) Magic() []byte             { return v.field(0, consts.BOOT_MAGIC_SIZE) }
func (v BootImgHdrV3View) KernelSize() uint32        { return v.u32(v3KernelSize) }
func (v BootImgHdrV3View) RamdiskSize() uint32       { return v.u32(v3RamdiskSize) }
func (v BootImgHdrV3View) OSVersion() uint32         { return v.u32(v3OSVersion) }
func (v BootImgHdrV3View) HeaderSize() uint32        { return v.u32(v3HeaderSize) }
func (v BootImgHdrV3View) HeaderVersion() uint32     { return v.u32(v3HeaderVersion) }
func (v BootImgHdrV3View) PageSize() uint32          { return v.u32(v3PageSize) }
func (v BootImgHdrV3View) KernelAddr() uint32        { return v.u32(v3KernelAddr) }
func (v BootImgHdrV3View) RamdiskAddr() uint32       { return v.u32(v3RamdiskAddr) }
func (v BootImgHdrV3View) VendorRamdiskSize() uint32 { return v.u32(v3VendorRamdiskSize) }
func (v BootImgHdrV3View) Cmdline() []byte           { return v.field(v3Cmdline, consts.VENDOR_BOOT_ARGS_SIZE) }
func (v BootImgHdrV3View) TagsAddr() uint32          { return v.u32(v3TagsAddr) }
func (v BootImgHdrV3View) Name() []byte              { return v.field(v3Name, consts.VENDOR_BOOT_NAME_SIZE) }
func (v BootImgHdrV3View) DtbSize() uint32           { return v.u32(v3DtbSize) }
func (v BootImgHdrV3View) DtbAddr() uint64           { return v.u64(v3DtbAddr) }

func (v BootImgHdrV3View) Reserved() (r [4]uint32) {
	v.words(r[:], v3Reserved)
	return r
}

// BootImgHdrV4View exposes the fields of a v4 boot header in place.
type BootImgHdrV4View struct {
	Ref[BootImgHdrV4]
}

// V3 returns the v3 header the v4 header extends, over the same bytes.
func (v BootImgHdrV4View) V3() BootImgHdrV3View {
	return BootImgHdrV3View{prefix[BootImgHdrV3](v.Ref)}
}

func (v BootImgHdrV4View) SignatureSize() uint32 { return v.u32(v4SignatureSize) }
