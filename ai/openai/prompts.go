package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/pinpoint/ai"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "candidates": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "label": {
            "type": "string"
          },
          "value": {
            "type": "string"
          },
          "start": {
            "type": "integer",
            "minimum": -1
          },
          "end": {
            "type": "integer",
            "minimum": -1
          }
        },
        "required": ["label", "value"],
        "additionalProperties": false
      }
    }
  },
  "required": ["candidates"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `You locate requested values inside a document and return them as JSON.

The user message contains a QUERY describing what to find and the DOCUMENT to search. Return the values from
the document that answer the query, as literal substrings copied character-for-character from the document,
including diacritics and spacing. Never paraphrase, reformat, or translate a value.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Label is a short lowercase description of the value kind, preferably one of: %s.
- Value must be copied verbatim from the document.
- Start and end are byte offsets of the value in the document if you can determine them; use -1 when unsure.
- Return at most %d candidates, the most relevant first.
- If nothing in the document answers the query, return "candidates": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input:
QUERY: rodné číslo
DOCUMENT: Jan Novák, nar. 15.1.1994, RČ 940115/1234.
Output:
{
  "candidates": [
    {"label":"birthNumber","value":"940115/1234","start":31,"end":42}
  ]
}

Example (nothing found):
Input:
QUERY: IBAN
DOCUMENT: Smlouva o dílo uzavřená mezi stranami.
Output:
{
  "candidates": []
}`

// buildSystemPrompt creates the system prompt with the label vocabulary and
// candidate cap embedded.
func buildSystemPrompt(maxCandidates int) string {
	return fmt.Sprintf(extractionPromptTemplate,
		extractionResponseSchema,
		strings.Join(ai.ValueKinds, ", "),
		maxCandidates)
}

// buildUserPrompt pairs the query with the document.
func buildUserPrompt(query, document string) string {
	return fmt.Sprintf("QUERY: %s\nDOCUMENT: %s", query, document)
}
