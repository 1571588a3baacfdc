package logging

// previewRunes is how many leading characters of a secret a preview may show.
const previewRunes = 4

// elision marks a truncated value.
const elision = "..."

// Preview renders a secret value for logging: at most the first four
// characters followed by "...". Values of four characters or fewer lose at
// least their last character, so a preview never contains a whole value.
// The empty value renders as "(empty)".
func Preview(value string) string {
	if value == "" {
		return "(empty)"
	}

	runes := []rune(value)
	n := len(runes) - 1
	if n > previewRunes {
		n = previewRunes
	}
	return string(runes[:n]) + elision
}
