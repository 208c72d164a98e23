package header

import (
	"bytes"
	"encoding/binary"

	"github.com/bgrewell/bootimg-kit/pkg/consts"
)

// BootImage is a parsed boot image header: the header_version tag plus a view of exactly one of the five
// boot header records, aliasing the buffer that was parsed.
type BootImage struct {
	version uint32
	b       []byte
}

// ParseBootImage validates the boot header at the start of buf and returns a view of it. Checks run in
// order and the first failure is returned:
//
//   - buf must reach past header_version (44 bytes), else ErrBufferTooSmall
//   - the first 8 bytes must be "ANDROID!", else ErrBadMagic
//   - header_version must be 0 through 4, else ErrUnknownVersion
//   - buf must hold the whole header of that version, else ErrBufferTooSmall
//
// Bytes past the header are ignored. buf is neither copied nor modified.
func ParseBootImage(buf []byte) (BootImage, error) {
	const versionEnd = consts.BOOT_VERSION_OFFSET + consts.VERSION_FIELD_SIZE
	if len(buf) < versionEnd {
		return BootImage{}, ErrBufferTooSmall
	}

	if string(buf[:consts.BOOT_MAGIC_SIZE]) != consts.BOOT_MAGIC {
		return BootImage{}, ErrBadMagic
	}

	version := binary.LittleEndian.Uint32(buf[consts.BOOT_VERSION_OFFSET:versionEnd])
	switch version {
	case 0:
		return bootVariant[BootImgHdrV0](version, buf)
	case 1:
		return bootVariant[BootImgHdrV1](version, buf)
	case 2:
		return bootVariant[BootImgHdrV2](version, buf)
	case 3:
		return bootVariant[BootImgHdrV3](version, buf)
	case 4:
		return bootVariant[BootImgHdrV4](version, buf)
	default:
		return BootImage{}, ErrUnknownVersion
	}
}

func bootVariant[T any, PT Layout[T]](version uint32, buf []byte) (BootImage, error) {
	r, _, err := NewRef[T, PT](buf)
	if err != nil {
		return BootImage{}, err
	}
	return BootImage{version: version, b: r.b}, nil
}

// Version returns the header_version tag.
func (img BootImage) Version() uint32 {
	return img.version
}

// Bytes returns the header bytes the view aliases.
func (img BootImage) Bytes() []byte {
	return img.b
}

// Equal reports whether both images carry the same version tag and the same header bytes.
func (img BootImage) Equal(o BootImage) bool {
	return img.version == o.version && bytes.Equal(img.b, o.b)
}

func (img BootImage) is(version uint32) bool {
	return img.b != nil && img.version == version
}

func (img BootImage) V0() (BootImgHdrV0View, bool) {
	if !img.is(0) {
		return BootImgHdrV0View{}, false
	}
	return BootImgHdrV0View{Ref[BootImgHdrV0]{b: img.b}}, true
}

func (img BootImage) V1() (BootImgHdrV1View, bool) {
	if !img.is(1) {
		return BootImgHdrV1View{}, false
	}
	return BootImgHdrV1View{Ref[BootImgHdrV1]{b: img.b}}, true
}

func (img BootImage) V2() (BootImgHdrV2View, bool) {
	if !img.is(2) {
		return BootImgHdrV2View{}, false
	}
	return BootImgHdrV2View{Ref[BootImgHdrV2]{b: img.b}}, true
}

func (img BootImage) V3() (BootImgHdrV3View, bool) {
	if !img.is(3) {
		return BootImgHdrV3View{}, false
	}
	return BootImgHdrV3View{Ref[BootImgHdrV3]{b: img.b}}, true
}

func (img BootImage) V4() (BootImgHdrV4View, bool) {
	if !img.is(4) {
		return BootImgHdrV4View{}, false
	}
	return BootImgHdrV4View{Ref[BootImgHdrV4]{b: img.b}}, true
}

// Legacy returns the v0 prefix shared by v0, v1 and v2 headers.
func (img BootImage) Legacy() (BootImgHdrV0View, bool) {
	if img.b == nil || img.version > 2 {
		return BootImgHdrV0View{}, false
	}
	return BootImgHdrV0View{Ref[BootImgHdrV0]{b: img.b[:BOOT_IMG_HDR_V0_SIZE:BOOT_IMG_HDR_V0_SIZE]}}, true
}

// Modern returns the v3 prefix shared by v3 and v4 headers.
func (img BootImage) Modern() (BootImgHdrV3View, bool) {
	if img.b == nil || img.version < 3 || img.version > 4 {
		return BootImgHdrV3View{}, false
	}
	return BootImgHdrV3View{Ref[BootImgHdrV3]{b: img.b[:BOOT_IMG_HDR_V3_SIZE:BOOT_IMG_HDR_V3_SIZE]}}, true
}

func (img BootImage) KernelSize() uint32 {
	if v, ok := img.Legacy(); ok {
		return v.KernelSize()
	}
	if v, ok := img.Modern(); ok {
		return v.KernelSize()
	}
	return 0
}

func (img BootImage) RamdiskSize() uint32 {
	if v, ok := img.Legacy(); ok {
		return v.RamdiskSize()
	}
	if v, ok := img.Modern(); ok {
		return v.RamdiskSize()
	}
	return 0
}

func (img BootImage) OSVersion() uint32 {
	if v, ok := img.Legacy(); ok {
		return v.OSVersion()
	}
	if v, ok := img.Modern(); ok {
		return v.OSVersion()
	}
	return 0
}

func (img BootImage) PageSize() uint32 {
	if v, ok := img.Legacy(); ok {
		return v.PageSize()
	}
	if v, ok := img.Modern(); ok {
		return v.PageSize()
	}
	return 0
}

// HeaderSize returns the header_size field. v0 headers have none and report 0.
func (img BootImage) HeaderSize() uint32 {
	switch img.version {
	case 1, 2:
		if img.b != nil {
			return binary.LittleEndian.Uint32(img.b[v1HeaderSize:])
		}
	case 3, 4:
		if v, ok := img.Modern(); ok {
			return v.HeaderSize()
		}
	}
	return 0
}

func (img BootImage) Name() []byte {
	if v, ok := img.Legacy(); ok {
		return v.Name()
	}
	if v, ok := img.Modern(); ok {
		return v.Name()
	}
	return nil
}

func (img BootImage) Cmdline() []byte {
	if v, ok := img.Legacy(); ok {
		return v.Cmdline()
	}
	if v, ok := img.Modern(); ok {
		return v.Cmdline()
	}
	return nil
}

// VendorBootImage is a parsed vendor boot image header: the header_version tag plus a view of exactly one
// of the two vendor boot header records, aliasing the buffer that was parsed.
type VendorBootImage struct {
	version uint32
	b       []byte
}

// ParseVendorBootImage validates the vendor boot header at the start of buf and returns a view of it. It
// follows ParseBootImage with the "VNDRBOOT" magic, header_version at offset 8 (so 12 bytes are needed to
// read it) and versions 3 and 4 only.
func ParseVendorBootImage(buf []byte) (VendorBootImage, error) {
	const versionEnd = consts.VENDOR_BOOT_VERSION_OFFSET + consts.VERSION_FIELD_SIZE
	if len(buf) < versionEnd {
		return VendorBootImage{}, ErrBufferTooSmall
	}

	if string(buf[:consts.VENDOR_BOOT_MAGIC_SIZE]) != consts.VENDOR_BOOT_MAGIC {
		return VendorBootImage{}, ErrBadMagic
	}

	version := binary.LittleEndian.Uint32(buf[consts.VENDOR_BOOT_VERSION_OFFSET:versionEnd])
	switch version {
	case 3:
		return vendorVariant[VendorBootHdrV3](version, buf)
	case 4:
		return vendorVariant[VendorBootHdrV4](version, buf)
	default:
		return VendorBootImage{}, ErrUnknownVersion
	}
}

func vendorVariant[T any, PT Layout[T]](version uint32, buf []byte) (VendorBootImage, error) {
	r, _, err := NewRef[T, PT](buf)
	if err != nil {
		return VendorBootImage{}, err
	}
	return VendorBootImage{version: version, b: r.b}, nil
}

func (img VendorBootImage) Version() uint32 {
	return img.version
}

func (img VendorBootImage) Bytes() []byte {
	return img.b
}

func (img VendorBootImage) Equal(o VendorBootImage) bool {
	return img.version == o.version && bytes.Equal(img.b, o.b)
}

func (img VendorBootImage) V3() (VendorBootHdrV3View, bool) {
	if img.b == nil || img.version != 3 {
		return VendorBootHdrV3View{}, false
	}
	return VendorBootHdrV3View{Ref[VendorBootHdrV3]{b: img.b}}, true
}

func (img VendorBootImage) V4() (VendorBootHdrV4View, bool) {
	if img.b == nil || img.version != 4 {
		return VendorBootHdrV4View{}, false
	}
	return VendorBootHdrV4View{Ref[VendorBootHdrV4]{b: img.b}}, true
}

// Common returns the v3 prefix present in every vendor boot header.
func (img VendorBootImage) Common() (VendorBootHdrV3View, bool) {
	if img.b == nil {
		return VendorBootHdrV3View{}, false
	}
	return VendorBootHdrV3View{Ref[VendorBootHdrV3]{b: img.b[:VENDOR_BOOT_HDR_V3_SIZE:VENDOR_BOOT_HDR_V3_SIZE]}}, true
}
