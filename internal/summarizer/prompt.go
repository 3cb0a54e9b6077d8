package summarizer

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a helpful assistant that summarizes educational videos."

const summaryPrompt = `You are an assistant summarizing educational videos. Focus on extracting key topics and notable quotes from the spoken audio.
The audio transcript is the primary source. Visual captions are for light context only and must never override what is said in the audio.

Audio transcript (primary evidence):
---
%s
---

Visual captions (light context only):
---
%s
---

Generate a concise, informative summary of the video's content. Include key topics and any notable statements or quotes that were spoken.%s`

const noTranscript = "(no speech was detected)"

// SystemPrompt returns the system message for the given language name.
func SystemPrompt(language string) string {
	if language == "" {
		return systemPrompt
	}
	return fmt.Sprintf("%s Always respond in %s.", systemPrompt, language)
}

// BuildPrompt assembles the user prompt. The output depends only on its
// arguments.
func BuildPrompt(transcript string, captions []string, language string) string {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		transcript = noTranscript
	}

	var langLine string
	if language != "" {
		langLine = fmt.Sprintf("\nWrite the summary in %s.", language)
	}

	return fmt.Sprintf(summaryPrompt, transcript, strings.Join(captions, "\n"), langLine)
}
