package chat

import "fmt"

// Apology is returned in place of a model answer when any pipeline stage
// fails. It is persisted like a normal assistant message so every question
// keeps a paired answer in the history.
const Apology = "Sorry, I could not generate an answer right now."

const chatPrompt = `Act as a virtual course tutor. Use the information from the course documents and keep the answer brief and direct.
Previous conversation:
%s
Question:
%s
Answer:
`

func buildPrompt(transcript, question string) string {
	return fmt.Sprintf(chatPrompt, transcript, question)
}
