package info

import (
	"cmp"
	"fmt"
	"math"
	"math/bits"
	"slices"

	"github.com/bgrewell/bootimg-kit/pkg/consts"
	"github.com/bgrewell/bootimg-kit/pkg/header"
)

// Section is one page-aligned region of a boot or vendor boot image.
type Section struct {
	Name   string `json:"name"`
	Offset int64  `json:"offset"`
	Size   int64  `json:"size"`
}

// End returns the offset of the first byte after the section.
func (s *Section) End() int64 {
	return s.Offset + s.Size
}

// Fits reports whether the section lies entirely within an image of the given size.
func (s *Section) Fits(imageSize int64) bool {
	if s.Offset < 0 || s.Size < 0 || s.End() < s.Offset {
		return false
	}
	return s.End() <= imageSize
}

// ImageLayout lists the sections of an image sorted by offset.
type ImageLayout struct {
	PageSize uint32     `json:"page_size"`
	Sections []*Section `json:"sections"`

	err error
}

func pages(size, pageSize uint64) uint64 {
	return (size + pageSize - 1) / pageSize
}

// add records a section. Offsets come straight from the header, so a section ending past math.MaxInt64
// fails the whole layout.
func (l *ImageLayout) add(name string, offset, size uint64) {
	if l.err != nil {
		return
	}
	end, carry := bits.Add64(offset, size, 0)
	if carry != 0 || end > math.MaxInt64 {
		l.err = fmt.Errorf("section %s at offset %d with size %d is outside the addressable range", name, offset, size)
		return
	}
	l.Sections = append(l.Sections, &Section{Name: name, Offset: int64(offset), Size: int64(size)})
}

func (l *ImageLayout) finish() (*ImageLayout, error) {
	if l.err != nil {
		return nil, l.err
	}
	slices.SortStableFunc(l.Sections, func(a, b *Section) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
	return l, nil
}

// BootLayout computes where the payloads of a boot image live. v0-v2 images place each payload on a fresh
// page after a one page header, except the recovery DTBO which records its own offset. v3 and v4 images
// use a fixed 4096 byte page.
func BootLayout(img header.BootImage) (*ImageLayout, error) {
	if legacy, ok := img.Legacy(); ok {
		return legacyLayout(img, legacy)
	}
	if modern, ok := img.Modern(); ok {
		return modernLayout(img, modern)
	}
	return nil, fmt.Errorf("boot image has no header")
}

func legacyLayout(img header.BootImage, v0 header.BootImgHdrV0View) (*ImageLayout, error) {
	ps := uint64(v0.PageSize())
	if ps == 0 {
		return nil, fmt.Errorf("boot header v%d has a page size of 0", img.Version())
	}

	var recoveryDtboSize, recoveryDtboOffset, dtbSize uint64
	if v1, ok := img.V1(); ok {
		recoveryDtboSize, recoveryDtboOffset = uint64(v1.RecoveryDtboSize()), v1.RecoveryDtboOffset()
	}
	if v2, ok := img.V2(); ok {
		v1 := v2.V1()
		recoveryDtboSize, recoveryDtboOffset = uint64(v1.RecoveryDtboSize()), v1.RecoveryDtboOffset()
		dtbSize = uint64(v2.DtbSize())
	}

	kernel, ramdisk, second := uint64(v0.KernelSize()), uint64(v0.RamdiskSize()), uint64(v0.SecondSize())
	l := &ImageLayout{PageSize: uint32(ps)}
	l.add("header", 0, uint64(len(img.Bytes())))
	l.add("kernel", ps, kernel)
	l.add("ramdisk", ps*(1+pages(kernel, ps)), ramdisk)
	if second > 0 {
		l.add("second", ps*(1+pages(kernel, ps)+pages(ramdisk, ps)), second)
	}
	if recoveryDtboSize > 0 {
		l.add("recovery_dtbo", recoveryDtboOffset, recoveryDtboSize)
	}
	if dtbSize > 0 {
		n := 1 + pages(kernel, ps) + pages(ramdisk, ps) + pages(second, ps) + pages(recoveryDtboSize, ps)
		l.add("dtb", ps*n, dtbSize)
	}
	return l.finish()
}

func modernLayout(img header.BootImage, v3 header.BootImgHdrV3View) (*ImageLayout, error) {
	const ps = consts.BOOT_IMAGE_HEADER_V3_PAGESIZE
	kernel, ramdisk := uint64(v3.KernelSize()), uint64(v3.RamdiskSize())

	l := &ImageLayout{PageSize: ps}
	l.add("header", 0, uint64(len(img.Bytes())))
	l.add("kernel", ps, kernel)
	l.add("ramdisk", ps*(1+pages(kernel, ps)), ramdisk)
	if v4, ok := img.V4(); ok && v4.SignatureSize() > 0 {
		l.add("signature", ps*(1+pages(kernel, ps)+pages(ramdisk, ps)), uint64(v4.SignatureSize()))
	}
	return l.finish()
}

// VendorBootLayout computes where the payloads of a vendor boot image live: the header padded to whole
// pages, then the vendor ramdisk section, the DTB and, for v4, the ramdisk table and bootconfig.
func VendorBootLayout(img header.VendorBootImage) (*ImageLayout, error) {
	v3, ok := img.Common()
	if !ok {
		return nil, fmt.Errorf("vendor boot image has no header")
	}
	ps := uint64(v3.PageSize())
	if ps == 0 {
		return nil, fmt.Errorf("vendor boot header v%d has a page size of 0", img.Version())
	}

	hdr := uint64(len(img.Bytes()))
	ramdisk, dtb := uint64(v3.VendorRamdiskSize()), uint64(v3.DtbSize())
	o := pages(hdr, ps)
	p := pages(ramdisk, ps)
	q := pages(dtb, ps)

	l := &ImageLayout{PageSize: uint32(ps)}
	l.add("header", 0, hdr)
	l.add("vendor_ramdisk", ps*o, ramdisk)
	l.add("dtb", ps*(o+p), dtb)
	if v4, ok := img.V4(); ok {
		table, bootconfig := uint64(v4.VendorRamdiskTableSize()), uint64(v4.BootconfigSize())
		r := pages(table, ps)
		if table > 0 {
			l.add("vendor_ramdisk_table", ps*(o+p+q), table)
		}
		if bootconfig > 0 {
			l.add("bootconfig", ps*(o+p+q+r), bootconfig)
		}
	}
	return l.finish()
}

// Overflows returns the sections that do not fit within an image of the given size.
func (l *ImageLayout) Overflows(imageSize int64) []*Section {
	var out []*Section
	for _, s := range l.Sections {
		if !s.Fits(imageSize) {
			out = append(out, s)
		}
	}
	return out
}
