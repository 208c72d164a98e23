package bootimg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bgrewell/bootimg-kit/pkg/consts"
	"github.com/bgrewell/bootimg-kit/pkg/encoding"
	"github.com/bgrewell/bootimg-kit/pkg/header"
	"github.com/bgrewell/bootimg-kit/pkg/info"
	"github.com/bgrewell/bootimg-kit/pkg/logging"
	"github.com/bgrewell/bootimg-kit/pkg/option"
	"github.com/bgrewell/bootimg-kit/pkg/validation"
	"github.com/edsrzf/mmap-go"
)

// ErrHeaderSizeMismatch is returned under WithStrictHeaderSize when header_size disagrees with the size of
// the header version the image declares.
var ErrHeaderSizeMismatch = errors.New("header_size does not match header version")

// Open opens a boot or vendor boot image file and parses its header. The file is memory mapped read-only
// unless WithMmap(false) is given. The returned Image owns the mapping and must be closed.
func Open(location string, opts ...option.OpenOption) (*Image, error) {
	options := applyOptions(opts)
	log := options.Logger.WithName("bootimg").WithValues("path", location)

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	img := &Image{file: f, options: options, log: log}
	if options.UseMmap {
		err = img.mapFile()
	} else {
		img.data, err = io.ReadAll(f)
	}
	if err != nil {
		img.Close()
		return nil, fmt.Errorf("failed to read image %s: %w", location, err)
	}
	if !options.UseMmap {
		log.Debug("read image into memory", "size", len(img.data))
	}

	if err = img.parse(); err != nil {
		img.Close()
		return nil, fmt.Errorf("failed to parse image %s: %w", location, err)
	}

	layout, err := img.Layout()
	if err != nil {
		log.Info("image layout is invalid", "error", err)
		return img, nil
	}
	for _, s := range layout.Overflows(int64(len(img.data))) {
		log.Info("section extends past end of image", "section", s.Name, "offset", s.Offset, "size", s.Size, "image_size", len(img.data))
	}
	return img, nil
}

// Parse parses a header from a caller owned buffer. The Image aliases buf; Close is a no-op.
func Parse(buf []byte, opts ...option.OpenOption) (*Image, error) {
	options := applyOptions(opts)
	img := &Image{data: buf, options: options, log: options.Logger.WithName("bootimg")}
	if err := img.parse(); err != nil {
		return nil, err
	}
	return img, nil
}

// DetectFamily identifies the header family from the magic string at the start of buf.
func DetectFamily(buf []byte) (option.Family, bool) {
	switch {
	case bytes.HasPrefix(buf, []byte(consts.BOOT_MAGIC)):
		return option.FamilyBoot, true
	case bytes.HasPrefix(buf, []byte(consts.VENDOR_BOOT_MAGIC)):
		return option.FamilyVendorBoot, true
	}
	return option.FamilyAuto, false
}

func applyOptions(opts []option.OpenOption) *option.OpenOptions {
	options := option.DefaultOpenOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Logger == nil {
		options.Logger = logging.DefaultLogger()
	}
	return options
}

// Image is a parsed boot or vendor boot image.
type Image struct {
	family option.Family
	boot   header.BootImage
	vendor header.VendorBootImage
	data   []byte
	mapped mmap.MMap
	file   *os.File

	options *option.OpenOptions
	log     *logging.Logger
}

func (i *Image) mapFile() error {
	st, err := i.file.Stat()
	if err != nil {
		return err
	}
	// Zero length mappings are rejected by the OS; an empty image parses as too small.
	if st.Size() == 0 {
		i.data = []byte{}
		return nil
	}
	i.mapped, err = mmap.Map(i.file, mmap.RDONLY, 0)
	if err != nil {
		return err
	}
	i.data = i.mapped
	i.log.Debug("mapped image", "size", len(i.data))
	return nil
}

func (i *Image) parse() (err error) {
	family := i.options.Family
	if family == option.FamilyAuto {
		var ok bool
		if family, ok = DetectFamily(i.data); !ok {
			i.log.Debug("magic not recognised, parsing as boot image")
			family = option.FamilyBoot
		}
	}
	i.family = family

	switch family {
	case option.FamilyBoot:
		if i.boot, err = header.ParseBootImage(i.data); err != nil {
			return i.parseError(err, consts.BOOT_VERSION_OFFSET)
		}
	case option.FamilyVendorBoot:
		if i.vendor, err = header.ParseVendorBootImage(i.data); err != nil {
			return i.parseError(err, consts.VENDOR_BOOT_VERSION_OFFSET)
		}
	default:
		return fmt.Errorf("unsupported image family: %d", family)
	}

	if i.options.StrictHeaderSize {
		if err = i.checkHeaderSize(); err != nil {
			return err
		}
	}

	i.log.Info("parsed image header", "family", i.family, "header_version", i.Version())
	return nil
}

func (i *Image) parseError(err error, versionOffset int) error {
	if errors.Is(err, header.ErrUnknownVersion) {
		if v, verr := encoding.UnmarshalUint32LE(i.data[versionOffset:]); verr == nil {
			i.log.Debug("rejected header version", "family", i.family, "header_version", v)
			return fmt.Errorf("%s image header v%d: %w", i.family, v, err)
		}
	}
	return fmt.Errorf("%s image: %w", i.family, err)
}

func (i *Image) checkHeaderSize() error {
	var got uint32
	want := uint32(len(i.Header()))
	switch i.family {
	case option.FamilyBoot:
		if i.boot.Version() == 0 {
			return nil
		}
		got = i.boot.HeaderSize()
	case option.FamilyVendorBoot:
		v3, _ := i.vendor.Common()
		got = v3.HeaderSize()
	}
	if got != want {
		return fmt.Errorf("%w: %s v%d declares %d, expected %d", ErrHeaderSizeMismatch, i.family, i.Version(), got, want)
	}
	return nil
}

// Family returns the header family the image was parsed as.
func (i *Image) Family() option.Family {
	return i.family
}

// Boot returns the boot image header when the image is a boot image.
func (i *Image) Boot() (header.BootImage, bool) {
	return i.boot, i.family == option.FamilyBoot
}

// Vendor returns the vendor boot image header when the image is a vendor boot image.
func (i *Image) Vendor() (header.VendorBootImage, bool) {
	return i.vendor, i.family == option.FamilyVendorBoot
}

// Version returns the header version.
func (i *Image) Version() uint32 {
	if i.family == option.FamilyVendorBoot {
		return i.vendor.Version()
	}
	return i.boot.Version()
}

// Header returns the bytes of the header record, aliasing the image.
func (i *Image) Header() []byte {
	if i.family == option.FamilyVendorBoot {
		return i.vendor.Bytes()
	}
	return i.boot.Bytes()
}

// Bytes returns the whole image, aliasing the mapping or the caller's buffer.
func (i *Image) Bytes() []byte {
	return i.data
}

// Info describes the header fields and layout.
func (i *Image) Info() *info.HeaderInfo {
	if i.family == option.FamilyVendorBoot {
		return info.DescribeVendor(i.vendor)
	}
	return info.Describe(i.boot)
}

// Layout computes the page-aligned section layout of the image.
func (i *Image) Layout() (*info.ImageLayout, error) {
	if i.family == option.FamilyVendorBoot {
		return info.VendorBootLayout(i.vendor)
	}
	return info.BootLayout(i.boot)
}

// Section returns the bytes of the named section. Sections that extend past the end of the image are
// an error.
func (i *Image) Section(name string) ([]byte, error) {
	layout, err := i.Layout()
	if err != nil {
		return nil, err
	}
	for _, s := range layout.Sections {
		if s.Name != name {
			continue
		}
		if !s.Fits(int64(len(i.data))) {
			return nil, fmt.Errorf("section %s at offset %d with size %d does not fit in the image (%d bytes)", name, s.Offset, s.Size, len(i.data))
		}
		return i.data[s.Offset:s.End():s.End()], nil
	}
	return nil, fmt.Errorf("image has no %s section", name)
}

// Validate checks that the string fields of the header are NUL terminated printable ASCII. On v0-v2 boot
// images the command line may spill from cmdline into extra_cmdline, so only extra_cmdline must be
// terminated there.
func (i *Image) Validate() error {
	type stringField struct {
		name  string
		value []byte
		split bool
	}

	var fields []stringField
	switch i.family {
	case option.FamilyBoot:
		if v0, ok := i.boot.Legacy(); ok {
			fields = append(fields,
				stringField{"name", v0.Name(), false},
				stringField{"cmdline", v0.Cmdline(), true},
				stringField{"extra_cmdline", v0.ExtraCmdline(), false},
			)
		} else if v3, ok := i.boot.Modern(); ok {
			fields = append(fields,
				stringField{"name", v3.Name(), false},
				stringField{"cmdline", v3.Cmdline(), false},
			)
		}
	case option.FamilyVendorBoot:
		if v3, ok := i.vendor.Common(); ok {
			fields = append(fields,
				stringField{"name", v3.Name(), false},
				stringField{"cmdline", v3.Cmdline(), false},
			)
		}
	}

	var errs []error
	for _, f := range fields {
		if f.split && !validation.Terminated(f.value) {
			continue
		}
		if !validation.ValidStringField(f.value) {
			errs = append(errs, fmt.Errorf("%s is not a NUL terminated printable string", f.name))
		}
	}
	return errors.Join(errs...)
}

// Extract writes every non-empty payload section to its own file under outputLocation, named after the
// section. The header itself is not written.
func (i *Image) Extract(outputLocation string) error {
	layout, err := i.Layout()
	if err != nil {
		return fmt.Errorf("failed to compute image layout: %w", err)
	}

	var sections []*info.Section
	var total int64
	for _, s := range layout.Sections {
		if s.Name == "header" || s.Size == 0 {
			continue
		}
		sections = append(sections, s)
		total += s.Size
	}

	if err = os.MkdirAll(outputLocation, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var written int64
	for idx, s := range sections {
		data, err := i.Section(s.Name)
		if err != nil {
			return err
		}
		target := filepath.Join(outputLocation, s.Name)
		if err = os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write section %s: %w", s.Name, err)
		}
		written += s.Size
		i.log.Debug("extracted section", "section", s.Name, "size", s.Size, "target", target)

		if i.options.ExtractionProgressCallback != nil {
			i.options.ExtractionProgressCallback(s.Name, written, total, idx+1, len(sections))
		}
	}
	return nil
}

// Close releases the mapping and the file. Views obtained from the image must not be used afterwards.
func (i *Image) Close() error {
	var errs []error
	if i.mapped != nil {
		errs = append(errs, i.mapped.Unmap())
		i.mapped = nil
	}
	if i.file != nil {
		errs = append(errs, i.file.Close())
		i.file = nil
	}
	i.data = nil
	return errors.Join(errs...)
}

func (i *Image) String() string {
	return fmt.Sprintf("%s image (header v%d, %d bytes)", i.family, i.Version(), len(i.data))
}
