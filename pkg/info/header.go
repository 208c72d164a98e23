package info

import (
	"encoding/json"
	"fmt"

	"github.com/bgrewell/bootimg-kit/pkg/encoding"
	"github.com/bgrewell/bootimg-kit/pkg/header"
)

// Field is a single named header value in the order it appears on disk.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HeaderInfo is a printable description of a parsed boot or vendor boot header.
type HeaderInfo struct {
	Family        string                `json:"family"`
	HeaderVersion uint32                `json:"header_version"`
	OSVersion     *header.OSVersionInfo `json:"os_version,omitempty"`
	Fields        []Field               `json:"fields"`
	Layout        *ImageLayout          `json:"layout,omitempty"`
}

func (i *HeaderInfo) add(name string, format string, args ...any) {
	i.Fields = append(i.Fields, Field{Name: name, Value: fmt.Sprintf(format, args...)})
}

func (i *HeaderInfo) str(name string, raw []byte) {
	i.Fields = append(i.Fields, Field{Name: name, Value: encoding.UnmarshalString(raw)})
}

// Field returns the value of the named field and whether it is present.
func (i *HeaderInfo) Field(name string) (string, bool) {
	for _, f := range i.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Describe collects the fields of a boot image header. A layout is attached when the header's page size
// permits computing one.
func Describe(img header.BootImage) *HeaderInfo {
	i := &HeaderInfo{Family: "boot", HeaderVersion: img.Version()}
	if osv := img.OSVersion(); osv != 0 {
		v := header.DecodeOSVersion(osv)
		i.OSVersion = &v
	}

	if v0, ok := img.Legacy(); ok {
		i.str("magic", v0.Magic())
		i.add("kernel_size", "%d", v0.KernelSize())
		i.add("kernel_addr", "0x%08x", v0.KernelAddr())
		i.add("ramdisk_size", "%d", v0.RamdiskSize())
		i.add("ramdisk_addr", "0x%08x", v0.RamdiskAddr())
		i.add("second_size", "%d", v0.SecondSize())
		i.add("second_addr", "0x%08x", v0.SecondAddr())
		i.add("tags_addr", "0x%08x", v0.TagsAddr())
		i.add("page_size", "%d", v0.PageSize())
		i.add("header_version", "%d", v0.HeaderVersion())
		i.add("os_version", "0x%08x", v0.OSVersion())
		i.str("name", v0.Name())
		i.str("cmdline", v0.Cmdline())
		id := v0.ID()
		i.add("id", "%s", encoding.FormatWords(id[:]))
		i.str("extra_cmdline", v0.ExtraCmdline())
	}
	if v1, ok := img.V1(); ok {
		describeV1(i, v1)
	}
	if v2, ok := img.V2(); ok {
		describeV1(i, v2.V1())
		i.add("dtb_size", "%d", v2.DtbSize())
		i.add("dtb_addr", "0x%016x", v2.DtbAddr())
	}
	if v3, ok := img.Modern(); ok {
		i.str("magic", v3.Magic())
		i.add("kernel_size", "%d", v3.KernelSize())
		i.add("ramdisk_size", "%d", v3.RamdiskSize())
		i.add("os_version", "0x%08x", v3.OSVersion())
		i.add("header_size", "%d", v3.HeaderSize())
		i.add("header_version", "%d", v3.HeaderVersion())
		i.add("page_size", "%d", v3.PageSize())
		i.add("kernel_addr", "0x%08x", v3.KernelAddr())
		i.add("ramdisk_addr", "0x%08x", v3.RamdiskAddr())
		i.add("vendor_ramdisk_size", "%d", v3.VendorRamdiskSize())
		i.str("cmdline", v3.Cmdline())
		i.add("tags_addr", "0x%08x", v3.TagsAddr())
		i.str("name", v3.Name())
		i.add("dtb_size", "%d", v3.DtbSize())
		i.add("dtb_addr", "0x%016x", v3.DtbAddr())
	}
	if v4, ok := img.V4(); ok {
		i.add("signature_size", "%d", v4.SignatureSize())
	}

	if l, err := BootLayout(img); err == nil {
		i.Layout = l
	}
	return i
}

func describeV1(i *HeaderInfo, v1 header.BootImgHdrV1View) {
	i.add("recovery_dtbo_size", "%d", v1.RecoveryDtboSize())
	i.add("recovery_dtbo_offset", "%d", v1.RecoveryDtboOffset())
	i.add("header_size", "%d", v1.HeaderSize())
}

// DescribeVendor collects the fields of a vendor boot image header.
func DescribeVendor(img header.VendorBootImage) *HeaderInfo {
	i := &HeaderInfo{Family: "vendor_boot", HeaderVersion: img.Version()}

	if v3, ok := img.Common(); ok {
		i.str("magic", v3.Magic())
		i.add("header_version", "%d", v3.HeaderVersion())
		i.add("page_size", "%d", v3.PageSize())
		i.add("kernel_addr", "0x%08x", v3.KernelAddr())
		i.add("ramdisk_addr", "0x%08x", v3.RamdiskAddr())
		i.add("vendor_ramdisk_size", "%d", v3.VendorRamdiskSize())
		i.str("cmdline", v3.Cmdline())
		i.add("tags_addr", "0x%08x", v3.TagsAddr())
		i.str("name", v3.Name())
		i.add("header_size", "%d", v3.HeaderSize())
		i.add("dtb_size", "%d", v3.DtbSize())
		i.add("dtb_addr", "0x%016x", v3.DtbAddr())
	}
	if v4, ok := img.V4(); ok {
		i.add("vendor_ramdisk_table_size", "%d", v4.VendorRamdiskTableSize())
		i.add("vendor_ramdisk_table_entry_num", "%d", v4.VendorRamdiskTableEntryNum())
		i.add("vendor_ramdisk_table_entry_size", "%d", v4.VendorRamdiskTableEntrySize())
		i.add("bootconfig_size", "%d", v4.BootconfigSize())
	}

	if l, err := VendorBootLayout(img); err == nil {
		i.Layout = l
	}
	return i
}

// PrettyJSON returns an indented JSON representation of the header.
func (i *HeaderInfo) PrettyJSON() string {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error generating JSON: %v", err)
	}
	return string(data)
}
