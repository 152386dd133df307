// Package tone holds the fixed whitelist of reply tones.
package tone

import "strings"

type Tone string

const (
	Blunt      Tone = "Blunt"
	Empathetic Tone = "Empathetic"
	Balanced   Tone = "Balanced"
)

// Default is used whenever no learned or caller-supplied tone applies.
const Default = Balanced

// All lists the known tones in their canonical order.
var All = []Tone{Blunt, Empathetic, Balanced}

// Parse matches s case-insensitively against the whitelist.
func Parse(s string) (Tone, bool) {
	s = strings.TrimSpace(s)
	for _, t := range All {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

func (t Tone) Valid() bool {
	return t == Blunt || t == Empathetic || t == Balanced
}
