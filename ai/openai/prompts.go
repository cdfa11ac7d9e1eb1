package openai

const scoringResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "answers": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "key": {
            "type": "string"
          },
          "question": {
            "type": "string"
          },
          "score": {
            "type": "integer",
            "minimum": 0,
            "maximum": 10
          },
          "rationale": {
            "type": "string"
          },
          "quotes": {
            "type": "array",
            "items": {
              "type": "string"
            }
          }
        },
        "required": ["key", "question", "score", "rationale", "quotes"],
        "additionalProperties": false
      }
    }
  },
  "required": ["answers"],
  "additionalProperties": false
}`

const scoringPromptTemplate = `Below is a JSON representation of a set of questions which I want you to answer about the document which follows.

It is crucial that you respect the structure of the JSON schema given below. Output ONLY valid JSON which
complies with the schema. Do not include any preamble, explanation, greeting, or acknowledgment, and do not
include code block markers (` + "```" + `). Start your response directly with the opening brace { and end with the
closing brace }.

Your output must exactly follow this schema:

%s

Rules:
- Answer every question in the question set, one answer object per question, carrying over each question's "key" and question text unchanged.
- Score each answer as an integer from 0 to 10. If a document looks like it should include something a question requires, but it is not there, set the score to 0 and provide a rationale.
- For the quotes, ensure that enough context is provided to understand the quote and to use ctrl+f to find it in the document.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Question set:

%s

Document to evaluate:

%s`
