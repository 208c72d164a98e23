package header

import "fmt"

// OSVersion packs an OS version and security patch date into the header os_version word.
//
//	bits 31..25 major, 24..18 minor, 17..11 patch, 10..4 year-2000, 3..0 month
//
// Every component is masked to its width. year is expected to be 2000 or later; smaller values wrap.
func OSVersion(major, minor, patch uint8, year uint16, month uint8) uint32 {
	return (uint32(major)&0x7F)<<25 |
		(uint32(minor)&0x7F)<<18 |
		(uint32(patch)&0x7F)<<11 |
		((uint32(year)-2000)&0x7F)<<4 |
		uint32(month)&0xF
}

// OSVersionInfo is an unpacked os_version word.
type OSVersionInfo struct {
	Major uint8  `json:"major"`
	Minor uint8  `json:"minor"`
	Patch uint8  `json:"patch"`
	Year  uint16 `json:"year"`
	Month uint8  `json:"month"`
}

// DecodeOSVersion is the inverse of OSVersion.
func DecodeOSVersion(v uint32) OSVersionInfo {
	return OSVersionInfo{
		Major: uint8(v >> 25 & 0x7F),
		Minor: uint8(v >> 18 & 0x7F),
		Patch: uint8(v >> 11 & 0x7F),
		Year:  uint16(v>>4&0x7F) + 2000,
		Month: uint8(v & 0xF),
	}
}

// Version returns the version as "major.minor.patch".
func (o OSVersionInfo) Version() string {
	return fmt.Sprintf("%d.%d.%d", o.Major, o.Minor, o.Patch)
}

// PatchLevel returns the security patch level as "YYYY-MM".
func (o OSVersionInfo) PatchLevel() string {
	return fmt.Sprintf("%04d-%02d", o.Year, o.Month)
}

func (o OSVersionInfo) String() string {
	return fmt.Sprintf("%s (%s)", o.Version(), o.PatchLevel())
}
