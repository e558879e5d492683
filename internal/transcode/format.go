package transcode

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roach88/jsondoc/internal/jv"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
	FormatCUE  Format = "cue"
)

// DecodeFormats lists the formats Decode accepts.
var DecodeFormats = []Format{FormatJSON, FormatYAML, FormatCBOR, FormatCUE}

// EncodeFormats lists the formats Encode produces.
var EncodeFormats = []Format{FormatJSON, FormatYAML, FormatCBOR}

// ParseFormat resolves a user-supplied format name. "yml" is accepted as an
// alias for YAML.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatYAML, FormatCBOR, FormatCUE:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: json, yaml, cbor, cue)", name)
	}
}

// FormatForPath guesses the format from a file extension, defaulting to
// JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".cbor":
		return FormatCBOR
	case ".cue":
		return FormatCUE
	default:
		return FormatJSON
	}
}

// Decode parses data in the given format.
func Decode(format Format, data []byte) (jv.Value, error) {
	switch format {
	case FormatJSON:
		return jv.ParseBytes(data)
	case FormatYAML:
		return FromYAML(data)
	case FormatCBOR:
		return FromCBOR(data)
	case FormatCUE:
		return FromCUE(data, "")
	default:
		return jv.Value{}, fmt.Errorf("decode: unsupported format %q", format)
	}
}

// Encode renders v in the given format. JSON output is the canonical jv
// serialization.
func Encode(format Format, v jv.Value) ([]byte, error) {
	switch format {
	case FormatJSON:
		return v.Append(nil)
	case FormatYAML:
		return ToYAML(v)
	case FormatCBOR:
		return ToCBOR(v)
	default:
		return nil, fmt.Errorf("encode: unsupported format %q", format)
	}
}
