package header

// BootError is the reason a boot or vendor boot header was rejected. The set of values is closed; parse
// functions return them unwrapped so callers can compare with == or errors.Is.
type BootError uint8

const (
	// The buffer was too small to hold the version field or the header the version field claims.
	ErrBufferTooSmall BootError = iota + 1
	// The first 8 bytes are not the magic string of the image family being parsed.
	ErrBadMagic
	// The header_version field names a version this package does not know.
	ErrUnknownVersion
	// Reserved. No parse path returns it.
	ErrUnknown
)

func (e BootError) Error() string {
	switch e {
	case ErrBufferTooSmall:
		return "buffer too small"
	case ErrBadMagic:
		return "bad magic"
	case ErrUnknownVersion:
		return "unknown header version"
	default:
		return "unknown error"
	}
}
