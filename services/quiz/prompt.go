package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"snapquiz/models"
	"snapquiz/services"

	"github.com/invopop/jsonschema"
)

// maxPromptTextLength bounds how much source text is embedded in the prompt,
// keeping model input within context limits.
const maxPromptTextLength = 10000

const generationInstructions = `You are a quiz generator. Analyze the provided text and pick exactly 6 distinct categories that fit it. The chosen categories must not overlap with each other.

IMPORTANT: build quiz questions only from content directly stated in the provided text. The category descriptions are a classification reference, not quiz material. If the text does not contain enough material, return fewer categories and questions instead of inventing unrelated ones.

Number of category topics: 6 distinct ones (no duplicate categories)
Questions per topic: 2
  - 1 "ox" (true/false) question per topic
  - 1 "multiple" (multiple choice) question per topic
=> 12 questions in total.`

var payloadSchema = mustPayloadSchema()

// BuildPrompt assembles the generation instructions from the normalized
// source text, the category taxonomy and a timestamp seed. Pure string
// assembly; the constraints stated here are enforced downstream by the
// parser and deriver.
func BuildPrompt(text string, taxonomy *services.Taxonomy, seed time.Time) string {
	if runes := []rune(text); len(runes) > maxPromptTextLength {
		text = string(runes[:maxPromptTextLength])
	}

	var prompt strings.Builder
	prompt.WriteString(generationInstructions)
	prompt.WriteString("\n\nCategory classification reference:\n")
	for _, desc := range taxonomy.Descriptions {
		prompt.WriteString(fmt.Sprintf("- %s\n", desc))
	}
	prompt.WriteString("\nThe chosen topics must stay within this reference.\n")

	prompt.WriteString("\nText:\n")
	prompt.WriteString(text)
	prompt.WriteString("\n\n")

	prompt.WriteString(fmt.Sprintf(`Respond with a JSON object holding a "topics" array, matching this schema:

%s

Build every id from English letters and digits. Start from the timestamp %s and add one second per generated item.
- topic_id format: "<category>-YYMMDD-HHMMSS"
- multiple choice quiz_id format: "<category>-mc-YYMMDD-HHMMSS"
- ox quiz_id format: "<category>-ox-YYMMDD-HHMMSS"
The <category> token must come from this list: %s

For type "multiple": provide exactly 4 options and set correct_answer to the 0-3 index of the right one.
For type "ox": options must be exactly ["O", "X"] and correct_answer is the 0-1 index, where index 0 means "O" (true).

Respond with the JSON document only.`,
		payloadSchema,
		seed.Format("060102-150405"),
		strings.Join(taxonomy.Prefixes, ", "),
	))

	return prompt.String()
}

func mustPayloadSchema() string {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&models.GenerationPayload{})
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("Failed to render payload schema: %v", err))
	}
	return string(data)
}
