package gift

import (
	"sort"
	"strings"
)

// Preferences is the character-preference catalog: raw gift taste records
// keyed by character name or universal tier key.
type Preferences interface {
	GiftTastes(key string) (string, bool)
}

// PreferenceTable is a map-backed Preferences.
type PreferenceTable map[string]string

func (p PreferenceTable) GiftTastes(key string) (string, bool) {
	raw, ok := p[key]
	return raw, ok
}

// Characters returns the non-universal keys, sorted.
func (p PreferenceTable) Characters() []string {
	out := make([]string, 0, len(p))
	for key := range p {
		if !IsUniversalTier(key) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// splitRecord splits a character record into its slash-delimited fields.
func splitRecord(raw string) []string {
	return strings.Split(raw, "/")
}

// fieldTokens returns the tokens of fields[index], or nil when the field is
// absent or empty.
func fieldTokens(fields []string, index int) []string {
	if index < 0 || index >= len(fields) || fields[index] == "" {
		return nil
	}
	return splitTokens(fields[index])
}

func splitTokens(list string) []string {
	tokens := strings.Fields(list)
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// tokensForTier parses a raw record for one tier. Universal records are a
// single whitespace list; character records are slash-delimited.
func tokensForTier(key, raw string, t Taste) []string {
	if IsUniversalTier(key) {
		return splitTokens(raw)
	}
	index, ok := FieldIndex(t)
	if !ok {
		return nil
	}
	return fieldTokens(splitRecord(raw), index)
}

func contains(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}
