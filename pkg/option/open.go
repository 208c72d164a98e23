package option

import (
	"github.com/bgrewell/bootimg-kit/pkg/logging"
)

// Family selects which header family an image is parsed as.
type Family int

const (
	// FamilyAuto picks the family from the magic string.
	FamilyAuto Family = iota
	FamilyBoot
	FamilyVendorBoot
)

func (f Family) String() string {
	switch f {
	case FamilyAuto:
		return "auto"
	case FamilyBoot:
		return "boot"
	case FamilyVendorBoot:
		return "vendor_boot"
	default:
		return "unknown"
	}
}

type ExtractionProgressCallback func(
	currentSection string,
	bytesTransferred int64,
	totalBytes int64,
	currentSectionNumber int,
	totalSectionCount int,
)

type OpenOptions struct {
	Family                     Family
	UseMmap                    bool
	StrictHeaderSize           bool
	ExtractionProgressCallback ExtractionProgressCallback
	Logger                     *logging.Logger
}

type OpenOption func(*OpenOptions)

// DefaultOpenOptions returns the options Open and Parse start from.
func DefaultOpenOptions() *OpenOptions {
	return &OpenOptions{
		Family:  FamilyAuto,
		UseMmap: true,
		Logger:  logging.DefaultLogger(),
	}
}

func WithLogger(logger *logging.Logger) OpenOption {
	return func(o *OpenOptions) {
		o.Logger = logger
	}
}

// WithFamily forces the header family instead of detecting it from the magic string.
func WithFamily(family Family) OpenOption {
	return func(o *OpenOptions) {
		o.Family = family
	}
}

// WithMmap sets whether image files are memory mapped (the default) or read into memory.
func WithMmap(useMmap bool) OpenOption {
	return func(o *OpenOptions) {
		o.UseMmap = useMmap
	}
}

// WithStrictHeaderSize rejects images whose header_size field does not match the size of the header
// version they declare. v0 boot headers have no header_size and always pass.
func WithStrictHeaderSize(strict bool) OpenOption {
	return func(o *OpenOptions) {
		o.StrictHeaderSize = strict
	}
}

// WithExtractionProgress sets a callback that Extract invokes after each section is written.
// Parameters:
// - currentSection: The name of the section just written.
// - bytesTransferred: The number of bytes written so far across all sections.
// - totalBytes: The total number of bytes that will be written.
// - currentSectionNumber: The 1-based index of the section just written.
// - totalSectionCount: The number of sections being extracted.
func WithExtractionProgress(callback ExtractionProgressCallback) OpenOption {
	return func(o *OpenOptions) {
		o.ExtractionProgressCallback = callback
	}
}
