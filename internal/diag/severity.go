package diag

// Severity orders diagnostics; only SevError fails a parse.
type Severity uint8

const (
	SevNote Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]struct{ upper, lower string }{
	SevNote:    {"NOTE", "note"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

// String is the upper-case form of JSON output and pretty headers.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s].upper
	}
	return "UNKNOWN"
}

// SeverityLabel is the lower-case form of plain and short output.
func SeverityLabel(sev Severity) string {
	if int(sev) < len(severityNames) {
		return severityNames[sev].lower
	}
	return "note"
}
