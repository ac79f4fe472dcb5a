package format

// Wire format constants for the textual ZON document.
const (
	// Version is the wire format version emitted in the document marker line.
	Version = "1.1"

	// VersionMarker is the first line of every encoded document.
	VersionMarker = "#Z:" + Version

	// TableMarker introduces a table declaration after the optional name prefix.
	TableMarker = '@'

	// AnchorMarker introduces the per-table anchor interval directive.
	AnchorMarker = '!'

	// MetaSeparator separates keys from values in scalar lines and table headers.
	MetaSeparator = ':'

	// FieldSeparator delimits cells within a data row.
	FieldSeparator = ','

	// GasToken marks a non-anchor cell whose value is fully implied by the
	// column rule and the row index.
	GasToken = "_"

	// DittoToken marks a non-anchor Liquid cell repeating the previous row value.
	DittoToken = "^"

	// DictMarker introduces the per-table string dictionary line, and prefixes
	// dictionary references inside cells.
	DictMarker = '%'

	// RunSuffix terminates an RLE run line ("12x" stands for 12 implied rows).
	RunSuffix = 'x'

	// NullLiteral is the canonical null token.
	NullLiteral = "null"

	// TrueLiteral and FalseLiteral are the canonical boolean tokens.
	TrueLiteral  = "T"
	FalseLiteral = "F"

	// EmptyMappingDoc and EmptySequenceDoc are complete documents on their own.
	EmptyMappingDoc  = "{}"
	EmptySequenceDoc = "[]"
)

// DefaultAnchorInterval is the row interval at which the encoder forces a
// fully explicit anchor row.
const DefaultAnchorInterval = 50

// Dictionary construction thresholds.
const (
	// DictMinStringLen is the minimum length for a dictionary candidate.
	DictMinStringLen = 3

	// DictMaxEntries caps the per-table dictionary size so references stay
	// at most two digits.
	DictMaxEntries = 64
)

// MaxEnumDomain is the largest distinct-value count for which the Enum
// strategy is a candidate.
const MaxEnumDomain = 16
