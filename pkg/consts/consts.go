package consts

const (
	// Size of the magic string at the start of every boot and vendor boot header.
	BOOT_MAGIC_SIZE = 8

	// Android boot image magic.
	BOOT_MAGIC = "ANDROID!"

	// Maximum product name size.
	BOOT_NAME_SIZE = 16

	// Maximum size of the kernel command line in a v0-v2 boot header.
	BOOT_ARGS_SIZE = 512

	// Maximum size of the supplemental command line in a v0-v2 boot header.
	BOOT_EXTRA_ARGS_SIZE = 1024

	// Number of 32-bit words in the v0-v2 id (digest) field.
	BOOT_ID_WORDS = 8

	// Byte offset of header_version in every boot header version.
	BOOT_VERSION_OFFSET = 40

	// Page size is fixed for v3 and v4 boot images.
	BOOT_IMAGE_HEADER_V3_PAGESIZE = 4096

	// Size of the magic string at the start of a vendor boot header.
	VENDOR_BOOT_MAGIC_SIZE = 8

	// Android vendor boot image magic.
	VENDOR_BOOT_MAGIC = "VNDRBOOT"

	// Maximum size of the vendor command line.
	VENDOR_BOOT_ARGS_SIZE = 2048

	// Maximum size of the vendor boot name.
	VENDOR_BOOT_NAME_SIZE = 16

	// Byte offset of header_version in every vendor boot header version.
	VENDOR_BOOT_VERSION_OFFSET = VENDOR_BOOT_MAGIC_SIZE

	// Maximum size of a vendor ramdisk name.
	VENDOR_RAMDISK_NAME_SIZE = 32

	// Number of 32-bit words describing the board, soc or platform a vendor ramdisk is intended for.
	VENDOR_RAMDISK_TABLE_ENTRY_BOARD_ID_SIZE = 16

	// Width of the header_version field.
	VERSION_FIELD_SIZE = 4
)
