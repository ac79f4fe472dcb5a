package format

type (
	StrategyKind    uint8
	CompressionType uint8
	DecodeMode      uint8
)

const (
	StrategySolid      StrategyKind = 0x1 // StrategySolid stores an explicit literal per row.
	StrategyEnum       StrategyKind = 0x2 // StrategyEnum stores a domain index per row.
	StrategyDelta      StrategyKind = 0x3 // StrategyDelta stores the difference from the previous row.
	StrategyRange      StrategyKind = 0x4 // StrategyRange derives values from (start, step) and the row index.
	StrategyPattern    StrategyKind = 0x5 // StrategyPattern derives values from a textual template and the row index.
	StrategyMultiplier StrategyKind = 0x6 // StrategyMultiplier stores fixed-point scaled integers per row.
	StrategyLiquid     StrategyKind = 0x7 // StrategyLiquid collapses repeats of the previous row value.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	ModeStrict  DecodeMode = 0x1 // ModeStrict aborts on declared-vs-actual mismatches.
	ModeLenient DecodeMode = 0x2 // ModeLenient truncates or null-fills on mismatches.
)

func (s StrategyKind) String() string {
	switch s {
	case StrategySolid:
		return "Solid"
	case StrategyEnum:
		return "Enum"
	case StrategyDelta:
		return "Delta"
	case StrategyRange:
		return "Range"
	case StrategyPattern:
		return "Pattern"
	case StrategyMultiplier:
		return "Multiplier"
	case StrategyLiquid:
		return "Liquid"
	default:
		return "Unknown"
	}
}

// Tag returns the single-character rule tag used in table headers.
func (s StrategyKind) Tag() byte {
	switch s {
	case StrategySolid:
		return 'S'
	case StrategyEnum:
		return 'E'
	case StrategyDelta:
		return 'D'
	case StrategyRange:
		return 'R'
	case StrategyPattern:
		return 'P'
	case StrategyMultiplier:
		return 'M'
	case StrategyLiquid:
		return 'L'
	default:
		return '?'
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (m DecodeMode) String() string {
	switch m {
	case ModeStrict:
		return "Strict"
	case ModeLenient:
		return "Lenient"
	default:
		return "Unknown"
	}
}
