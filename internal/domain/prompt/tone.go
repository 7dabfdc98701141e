// Package prompt holds optimization history and the deterministic prompt template.
package prompt

import "strings"

// Tone steers how the optimized prompt asks for a response.
type Tone string

const (
	ToneCasual   Tone = "casual"
	ToneFormal   Tone = "formal"
	ToneDetailed Tone = "detailed"
)

// MaxRawLength bounds the accepted prompt size in characters.
const MaxRawLength = 4000

// ParseTone defaults an empty tone to casual.
func ParseTone(s string) (Tone, bool) {
	switch Tone(strings.ToLower(strings.TrimSpace(s))) {
	case "", ToneCasual:
		return ToneCasual, true
	case ToneFormal:
		return ToneFormal, true
	case ToneDetailed:
		return ToneDetailed, true
	default:
		return "", false
	}
}

func (t Tone) String() string {
	return string(t)
}
