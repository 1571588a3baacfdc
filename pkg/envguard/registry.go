package envguard

import "strings"

// MaxNames caps the protected-name set. Configured names past the cap are
// ignored.
const MaxNames = 100

// NameSource reports where the protected-name set came from.
type NameSource string

const (
	// SourceCustom means the names came from configuration.
	SourceCustom NameSource = "custom"
	// SourceDefault means no names were configured.
	SourceDefault NameSource = "default"
	// SourceFallback means names were configured but none survived parsing,
	// so the defaults are used instead.
	SourceFallback NameSource = "fallback"
)

const defaultNameKey = 0x5A

// encodedDefaults holds the built-in names XOR-encoded with defaultNameKey so
// they do not show up in a strings(1) dump of the binary.
var encodedDefaults = [][]byte{
	{0x19, 0x15, 0x0a, 0x13, 0x16, 0x15, 0x0e, 0x05, 0x1d, 0x13, 0x0e, 0x12, 0x0f, 0x18, 0x05, 0x0e, 0x15, 0x11, 0x1f, 0x14},
	{0x1d, 0x13, 0x0e, 0x12, 0x0f, 0x18, 0x05, 0x0e, 0x15, 0x11, 0x1f, 0x14},
	{0x1d, 0x12, 0x05, 0x0e, 0x15, 0x11, 0x1f, 0x14},
	{0x1d, 0x13, 0x0e, 0x12, 0x0f, 0x18, 0x05, 0x1b, 0x0a, 0x13, 0x05, 0x0e, 0x15, 0x11, 0x1f, 0x14},
	{0x1d, 0x13, 0x0e, 0x12, 0x0f, 0x18, 0x05, 0x0a, 0x1b, 0x0e},
	{0x1d, 0x12, 0x05, 0x1b, 0x19, 0x19, 0x1f, 0x09, 0x09, 0x05, 0x0e, 0x15, 0x11, 0x1f, 0x14},
	{0x15, 0x0a, 0x1f, 0x14, 0x1b, 0x13, 0x05, 0x1b, 0x0a, 0x13, 0x05, 0x11, 0x1f, 0x03},
	{0x15, 0x0a, 0x1f, 0x14, 0x1b, 0x13, 0x05, 0x11, 0x1f, 0x03},
	{0x1b, 0x14, 0x0e, 0x12, 0x08, 0x15, 0x0a, 0x13, 0x19, 0x05, 0x1b, 0x0a, 0x13, 0x05, 0x11, 0x1f, 0x03},
	{0x19, 0x16, 0x1b, 0x0f, 0x1e, 0x1f, 0x05, 0x1b, 0x0a, 0x13, 0x05, 0x11, 0x1f, 0x03},
	{0x19, 0x15, 0x1e, 0x1f, 0x02, 0x05, 0x1b, 0x0a, 0x13, 0x05, 0x11, 0x1f, 0x03},
}

// DefaultNames returns the built-in protected names, decoded fresh on every
// call.
func DefaultNames() []string {
	names := make([]string, 0, len(encodedDefaults))
	for _, enc := range encodedDefaults {
		buf := make([]byte, len(enc))
		for i, b := range enc {
			buf[i] = b ^ defaultNameKey
		}
		names = append(names, string(buf))
	}
	return names
}

// ResolveNames turns a comma-separated configuration value into the
// protected-name set. Items are trimmed and empty items dropped; duplicates
// are kept. A value that yields no names falls back to the defaults so that a
// malformed list never disables protection.
func ResolveNames(config string) ([]string, NameSource) {
	if strings.TrimSpace(config) == "" {
		return DefaultNames(), SourceDefault
	}

	var names []string
	for _, item := range strings.Split(config, ",") {
		if len(names) == MaxNames {
			break
		}
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		names = append(names, item)
	}

	if len(names) == 0 {
		return DefaultNames(), SourceFallback
	}
	return names, SourceCustom
}
