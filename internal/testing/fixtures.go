package testing

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bgrewell/bootimg-kit/pkg/consts"
	"github.com/bgrewell/bootimg-kit/pkg/header"
)

// MustMarshal returns the on-disk bytes of a header record.
func MustMarshal(m encoding.BinaryMarshaler) []byte {
	b, err := m.MarshalBinary()
	if err != nil {
		panic(err)
	}
	return b
}

// BootHeader returns the default header record of the given boot header version.
func BootHeader(version uint32) encoding.BinaryMarshaler {
	switch version {
	case 0:
		return header.NewBootImgHdrV0()
	case 1:
		return header.NewBootImgHdrV1()
	case 2:
		return header.NewBootImgHdrV2()
	case 3:
		return header.NewBootImgHdrV3()
	case 4:
		return header.NewBootImgHdrV4()
	}
	panic(fmt.Sprintf("no boot header version %d", version))
}

// VendorBootHeader returns the default header record of the given vendor boot header version.
func VendorBootHeader(version uint32) encoding.BinaryMarshaler {
	switch version {
	case 3:
		return header.NewVendorBootHdrV3()
	case 4:
		return header.NewVendorBootHdrV4()
	}
	panic(fmt.Sprintf("no vendor boot header version %d", version))
}

// BootImage returns the bytes of a minimal valid boot header of the given version.
func BootImage(version uint32) []byte {
	return MustMarshal(BootHeader(version))
}

// VendorBootImage returns the bytes of a minimal valid vendor boot header of the given version.
func VendorBootImage(version uint32) []byte {
	return MustMarshal(VendorBootHeader(version))
}

// SetBootVersion overwrites header_version of a boot header in place.
func SetBootVersion(buf []byte, version uint32) []byte {
	binary.LittleEndian.PutUint32(buf[consts.BOOT_VERSION_OFFSET:], version)
	return buf
}

// SetVendorBootVersion overwrites header_version of a vendor boot header in place.
func SetVendorBootVersion(buf []byte, version uint32) []byte {
	binary.LittleEndian.PutUint32(buf[consts.VENDOR_BOOT_VERSION_OFFSET:], version)
	return buf
}

// WriteImage writes hdr followed by zero padding up to size bytes into dir and returns the file path.
func WriteImage(dir, name string, hdr []byte, size int) (string, error) {
	if size < len(hdr) {
		size = len(hdr)
	}
	data := make([]byte, size)
	copy(data, hdr)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// VersionName names a subtest after a header version.
func VersionName(version uint32) string {
	return fmt.Sprintf("v%d", version)
}
