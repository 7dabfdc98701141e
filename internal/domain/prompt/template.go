package prompt

import "strings"

var toneEnhancers = map[Tone]string{
	ToneCasual:   "Use a friendly, conversational tone. Keep it light and engaging.",
	ToneFormal:   "Maintain a professional and authoritative tone. Be precise and structured.",
	ToneDetailed: "Provide comprehensive and thorough information. Include specific examples and explanations.",
}

var structureLines = []string{
	"Be clear and specific about your request.",
	"Include relevant context and background information.",
	"Specify the desired format or structure of the response.",
	"Mention any specific requirements or constraints.",
}

// ApplyTemplate builds the optimized prompt without any external provider.
// The output depends only on raw and tone.
func ApplyTemplate(raw string, tone Tone) string {
	enhancer, ok := toneEnhancers[tone]
	if !ok {
		enhancer = toneEnhancers[ToneCasual]
	}

	var b strings.Builder
	b.WriteString(enhancer)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(structureLines, "\n"))
	b.WriteString("\n\nOriginal request: ")
	b.WriteString(strings.TrimSpace(raw))
	b.WriteString("\n\nPlease provide a well-structured response that addresses all aspects of the request while maintaining the specified tone.")
	return b.String()
}
