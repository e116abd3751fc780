package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational findings.
	SevInfo Severity = iota
	// SevWarning is for findings the stream repairs silently.
	SevWarning
	// SevError is for findings that make the input unusable.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
