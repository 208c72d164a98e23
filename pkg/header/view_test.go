package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootImgHdrV2View_Fields(t *testing.T) {
	h := NewBootImgHdrV2()
	v0 := &h.V1.V0
	v0.KernelSize = 0x01
	v0.KernelAddr = 0x10008000
	v0.RamdiskSize = 0x03
	v0.RamdiskAddr = 0x11000000
	v0.SecondSize = 0x05
	v0.SecondAddr = 0x10f00000
	v0.TagsAddr = 0x10000100
	v0.PageSize = 2048
	v0.OSVersion = OSVersion(9, 0, 0, 2019, 5)
	v0.ID = [8]uint32{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, v0.SetName("walleye"))
	require.NoError(t, v0.SetCmdline("console=ttyMSM0,115200n8"))
	require.NoError(t, v0.SetExtraCmdline("androidboot.slot=a"))
	h.V1.RecoveryDtboSize = 0x2000
	h.V1.RecoveryDtboOffset = 0x0123456789abcdef
	h.DtbSize = 0x4000
	h.DtbAddr = 0xfedcba9876543210

	buf, err := h.MarshalBinary()
	require.NoError(t, err)
	img, err := ParseBootImage(buf)
	require.NoError(t, err)
	view, ok := img.V2()
	require.True(t, ok)

	assert.Equal(t, uint32(0x4000), view.DtbSize())
	assert.Equal(t, uint64(0xfedcba9876543210), view.DtbAddr())

	v1 := view.V1()
	assert.Equal(t, uint32(0x2000), v1.RecoveryDtboSize())
	assert.Equal(t, uint64(0x0123456789abcdef), v1.RecoveryDtboOffset())
	assert.Equal(t, uint32(BOOT_IMG_HDR_V2_SIZE), v1.HeaderSize())

	p := v1.V0()
	assert.Equal(t, []byte("ANDROID!"), p.Magic())
	assert.Equal(t, uint32(0x01), p.KernelSize())
	assert.Equal(t, uint32(0x10008000), p.KernelAddr())
	assert.Equal(t, uint32(0x03), p.RamdiskSize())
	assert.Equal(t, uint32(0x11000000), p.RamdiskAddr())
	assert.Equal(t, uint32(0x05), p.SecondSize())
	assert.Equal(t, uint32(0x10f00000), p.SecondAddr())
	assert.Equal(t, uint32(0x10000100), p.TagsAddr())
	assert.Equal(t, uint32(2048), p.PageSize())
	assert.Equal(t, uint32(2), p.HeaderVersion())
	assert.Equal(t, v0.OSVersion, p.OSVersion())
	assert.Equal(t, v0.Name[:], p.Name())
	assert.Equal(t, v0.Cmdline[:], p.Cmdline())
	assert.Equal(t, v0.ID, p.ID())
	assert.Equal(t, v0.ExtraCmdline[:], p.ExtraCmdline())

	assert.Equal(t, h, view.Decode())
	assert.Equal(t, *v0, p.Decode())

	assert.Equal(t, uint32(0x01), img.KernelSize())
	assert.Equal(t, uint32(0x03), img.RamdiskSize())
	assert.Equal(t, uint32(2048), img.PageSize())
	assert.Equal(t, v0.OSVersion, img.OSVersion())
	assert.Equal(t, uint32(BOOT_IMG_HDR_V2_SIZE), img.HeaderSize())
	assert.Equal(t, v0.Name[:], img.Name())
	assert.Equal(t, v0.Cmdline[:], img.Cmdline())
}

func TestBootImgHdrV4View_Fields(t *testing.T) {
	h := NewBootImgHdrV4()
	v3 := &h.V3
	v3.KernelSize = 0xaaaa
	v3.RamdiskSize = 0xbbbb
	v3.OSVersion = OSVersion(13, 0, 0, 2023, 2)
	v3.Reserved = [4]uint32{9, 8, 7, 6}
	v3.KernelAddr = 0x00008000
	v3.RamdiskAddr = 0x01000000
	v3.VendorRamdiskSize = 0xcccc
	v3.TagsAddr = 0x00000100
	v3.DtbSize = 0xdddd
	v3.DtbAddr = 0x0000000001f00000
	require.NoError(t, v3.SetName("cheetah"))
	require.NoError(t, v3.SetCmdline("bootconfig"))
	h.SignatureSize = 0x1000

	buf, err := h.MarshalBinary()
	require.NoError(t, err)
	img, err := ParseBootImage(buf)
	require.NoError(t, err)
	view, ok := img.V4()
	require.True(t, ok)

	assert.Equal(t, uint32(0x1000), view.SignatureSize())
	p := view.V3()
	assert.Equal(t, []byte("ANDROID!"), p.Magic())
	assert.Equal(t, uint32(0xaaaa), p.KernelSize())
	assert.Equal(t, uint32(0xbbbb), p.RamdiskSize())
	assert.Equal(t, v3.OSVersion, p.OSVersion())
	assert.Equal(t, uint32(BOOT_IMG_HDR_V4_SIZE), p.HeaderSize())
	assert.Equal(t, [4]uint32{9, 8, 7, 6}, p.Reserved())
	assert.Equal(t, uint32(4), p.HeaderVersion())
	assert.Equal(t, uint32(4096), p.PageSize())
	assert.Equal(t, uint32(0x00008000), p.KernelAddr())
	assert.Equal(t, uint32(0x01000000), p.RamdiskAddr())
	assert.Equal(t, uint32(0xcccc), p.VendorRamdiskSize())
	assert.Equal(t, v3.Cmdline[:], p.Cmdline())
	assert.Equal(t, uint32(0x00000100), p.TagsAddr())
	assert.Equal(t, v3.Name[:], p.Name())
	assert.Equal(t, uint32(0xdddd), p.DtbSize())
	assert.Equal(t, uint64(0x0000000001f00000), p.DtbAddr())

	assert.Equal(t, h, view.Decode())
	assert.Equal(t, uint32(0xaaaa), img.KernelSize())
	assert.Equal(t, uint32(4096), img.PageSize())
	assert.Equal(t, uint32(BOOT_IMG_HDR_V4_SIZE), img.HeaderSize())

	_, ok = img.Legacy()
	assert.False(t, ok)
}

func TestVendorBootHdrV4View_Fields(t *testing.T) {
	h := NewVendorBootHdrV4()
	v3 := &h.V3
	v3.PageSize = 4096
	v3.KernelAddr = 0x00008000
	v3.RamdiskAddr = 0x01000000
	v3.VendorRamdiskSize = 0x123456
	v3.TagsAddr = 0x00000100
	v3.DtbSize = 0x2222
	v3.DtbAddr = 0x0000000001f00000
	require.NoError(t, v3.SetName("oriole"))
	require.NoError(t, v3.SetCmdline("androidboot.console=ttySAC0"))
	h.VendorRamdiskTableSize = 2 * VENDOR_RAMDISK_TABLE_ENTRY_V4_SIZE
	h.VendorRamdiskTableEntryNum = 2
	h.VendorRamdiskTableEntrySize = VENDOR_RAMDISK_TABLE_ENTRY_V4_SIZE
	h.BootconfigSize = 0x333

	buf, err := h.MarshalBinary()
	require.NoError(t, err)
	img, err := ParseVendorBootImage(buf)
	require.NoError(t, err)
	view, ok := img.V4()
	require.True(t, ok)

	assert.Equal(t, uint32(2*VENDOR_RAMDISK_TABLE_ENTRY_V4_SIZE), view.VendorRamdiskTableSize())
	assert.Equal(t, uint32(2), view.VendorRamdiskTableEntryNum())
	assert.Equal(t, uint32(VENDOR_RAMDISK_TABLE_ENTRY_V4_SIZE), view.VendorRamdiskTableEntrySize())
	assert.Equal(t, uint32(0x333), view.BootconfigSize())

	p := view.V3()
	assert.Equal(t, []byte("VNDRBOOT"), p.Magic())
	assert.Equal(t, uint32(4), p.HeaderVersion())
	assert.Equal(t, uint32(4096), p.PageSize())
	assert.Equal(t, uint32(0x00008000), p.KernelAddr())
	assert.Equal(t, uint32(0x01000000), p.RamdiskAddr())
	assert.Equal(t, uint32(0x123456), p.VendorRamdiskSize())
	assert.Equal(t, v3.Cmdline[:], p.Cmdline())
	assert.Equal(t, uint32(0x00000100), p.TagsAddr())
	assert.Equal(t, v3.Name[:], p.Name())
	assert.Equal(t, uint32(VENDOR_BOOT_HDR_V4_SIZE), p.HeaderSize())
	assert.Equal(t, uint32(0x2222), p.DtbSize())
	assert.Equal(t, uint64(0x0000000001f00000), p.DtbAddr())

	assert.Equal(t, h, view.Decode())

	common, ok := img.Common()
	require.True(t, ok)
	assert.True(t, common.Equal(p.Ref))
}

func TestVendorRamdiskTableEntryV4View_Fields(t *testing.T) {
	e := VendorRamdiskTableEntryV4{
		RamdiskSize:   0x1000,
		RamdiskOffset: 0x2000,
		RamdiskType:   VENDOR_RAMDISK_TYPE_RECOVERY,
		BoardID:       [16]uint32{0: 0xa, 15: 0xf},
	}
	require.NoError(t, e.SetRamdiskName("recovery"))
	buf, err := e.MarshalBinary()
	require.NoError(t, err)

	second := e
	second.RamdiskType = VENDOR_RAMDISK_TYPE_DLKM
	more, err := second.MarshalBinary()
	require.NoError(t, err)

	view, rest, err := NewVendorRamdiskTableEntryV4View(append(buf, more...))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1000), view.RamdiskSize())
	assert.Equal(t, uint32(0x2000), view.RamdiskOffset())
	assert.Equal(t, VENDOR_RAMDISK_TYPE_RECOVERY, view.RamdiskType())
	assert.Equal(t, e.RamdiskName[:], view.RamdiskName())
	assert.Equal(t, e.BoardID, view.BoardID())
	assert.Equal(t, more, rest)

	_, _, err = NewVendorRamdiskTableEntryV4View(buf[:VENDOR_RAMDISK_TABLE_ENTRY_V4_SIZE-1])
	assert.Equal(t, ErrBufferTooSmall, err)
}

func TestRef_AliasesBuffer(t *testing.T) {
	buf, err := NewBootImgHdrV0().MarshalBinary()
	require.NoError(t, err)
	buf = append(buf, 1, 2, 3)

	r, rest, err := NewRef[BootImgHdrV0](buf)
	require.NoError(t, err)
	assert.Len(t, r.Bytes(), BOOT_IMG_HDR_V0_SIZE)
	assert.Equal(t, []byte{1, 2, 3}, rest)

	view := BootImgHdrV0View{r}
	buf[v0KernelSize] = 0x42
	assert.Equal(t, uint32(0x42), view.KernelSize(), "view must observe the caller's buffer")

	// Appending to the view's bytes must not clobber the bytes after the record.
	_ = append(r.Bytes(), 0xff)
	assert.Equal(t, byte(1), buf[BOOT_IMG_HDR_V0_SIZE])
}

func TestRef_TooSmall(t *testing.T) {
	r, rest, err := NewRef[BootImgHdrV3](make([]byte, BOOT_IMG_HDR_V3_SIZE-1))
	assert.Equal(t, ErrBufferTooSmall, err)
	assert.Nil(t, r.Bytes())
	assert.Nil(t, rest)
}

func TestRef_Equal(t *testing.T) {
	a, _, err := NewRef[VendorBootHdrV3](make([]byte, VENDOR_BOOT_HDR_V3_SIZE))
	require.NoError(t, err)
	other := make([]byte, VENDOR_BOOT_HDR_V3_SIZE+10)
	b, _, err := NewRef[VendorBootHdrV3](other)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	other[0] = 'V'
	assert.False(t, a.Equal(b))
}
