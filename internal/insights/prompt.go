package insights

import "fmt"

// Prompt templates sent to the completion service. Keep updates centralized
// here so they are easy to tweak without hunting through call sites. Each
// embeds the raw transcript text; trimming only affects the cache key.

const summaryPromptTemplate = `You are an assistant that summarizes audio transcripts.

Write a concise summary of the transcript below in one or two paragraphs.
Respond with the summary text only, no preamble and no headings.

Transcript:
%s`

const actionsPromptTemplate = `You are an assistant that extracts action items from audio transcripts.

From the transcript below, identify at most 5 concrete action items.
Respond ONLY with a JSON array of objects shaped like
{"title": "...", "description": "..."} where the title is at most 7 words
and the description is at most 16 words. Respond with [] if there are none.

Transcript:
%s`

const topicsPromptTemplate = `You are an assistant that tags audio transcripts with key topics.

From the transcript below, extract between 6 and 10 short topic tags of one
to three words each. Respond ONLY with a JSON array of strings.

Transcript:
%s`

func summaryPrompt(text string) string { return fmt.Sprintf(summaryPromptTemplate, text) }

func actionsPrompt(text string) string { return fmt.Sprintf(actionsPromptTemplate, text) }

func topicsPrompt(text string) string { return fmt.Sprintf(topicsPromptTemplate, text) }
