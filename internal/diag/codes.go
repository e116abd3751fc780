package diag

import (
	"fmt"
)

// Code is a compact stable identifier for a diagnostic kind.
type Code uint16

const (
	// Неизвестная находка — на первое время
	UnknownCode Code = 0

	// Source hygiene findings reported by the scan driver. The stream
	// repairs all of these silently; scan is the surface that names them.
	SrcInfo               Code = 1000
	SrcCRLF               Code = 1001
	SrcLoneCR             Code = 1002
	SrcNoFinalNewline     Code = 1003
	SrcLineSplice         Code = 1004
	SrcByteOrderMark      Code = 1005
	SrcReadFailed         Code = 1006
	SrcIncludeDepth       Code = 1007
	SrcLineTooLong        Code = 1008
)

func (c Code) String() string {
	switch c {
	case SrcInfo:
		return "SRC1000"
	case SrcCRLF:
		return "SRC1001"
	case SrcLoneCR:
		return "SRC1002"
	case SrcNoFinalNewline:
		return "SRC1003"
	case SrcLineSplice:
		return "SRC1004"
	case SrcByteOrderMark:
		return "SRC1005"
	case SrcReadFailed:
		return "SRC1006"
	case SrcIncludeDepth:
		return "SRC1007"
	case SrcLineTooLong:
		return "SRC1008"
	default:
		return fmt.Sprintf("SRC%04d", uint16(c))
	}
}
