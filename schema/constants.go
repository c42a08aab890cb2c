package schema

// Custom string types for type safety.
type (
	// ChangeType represents the kind of change recorded for a path.
	ChangeType string

	// OutputMode represents the format of the output.
	OutputMode string

	// ViewFormat represents which view is rendered.
	ViewFormat string
)

// All change types derived from the first status character of a raw diff line.
const (
	AddedChange    ChangeType = "added"
	DeletedChange  ChangeType = "deleted"
	ModifiedChange ChangeType = "modified"
	RenamedChange  ChangeType = "renamed"
	CopiedChange   ChangeType = "copied"
	OtherChange    ChangeType = "other"
	NoneChange     ChangeType = "none" // blank or header line, never aggregated
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All view formats supported.
const (
	DefaultFormat ViewFormat = "default" // ranking, or contributor lines when a contributor is given
	RawFormat     ViewFormat = "raw"     // contributor lines
	RecordsFormat ViewFormat = "records" // every change record as JSON
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidViewFormats lists all valid view formats.
var ValidViewFormats = map[ViewFormat]struct{}{
	DefaultFormat: {},
	RawFormat:     {},
	RecordsFormat: {},
}

// ChangeTypeFromStatus maps a raw diff status code to its change type.
// Only the first character is significant, so "R087" is a rename.
func ChangeTypeFromStatus(status string) ChangeType {
	if status == "" {
		return OtherChange
	}
	switch status[0] {
	case 'A':
		return AddedChange
	case 'D':
		return DeletedChange
	case 'M':
		return ModifiedChange
	case 'R':
		return RenamedChange
	case 'C':
		return CopiedChange
	default:
		return OtherChange
	}
}
