package usecase

import (
	"fmt"
	"strings"

	"code-assistant/internal/domain"
)

// Inputs are interpolated verbatim. Empty values yield degenerate prompts,
// which is the upstream model's problem rather than ours.

func buildExplainPrompt(code string) string {
	return "You are an expert programmer explaining code. " +
		"Explain the following code snippet in a clear, concise, and accessible way. " +
		"Please format your explanation using markdown.\n\n" + code
}

func buildRefactorPrompt(code, command string) string {
	return fmt.Sprintf(
		"You are an expert programmer. A user has given the following voice command: '%s'. "+
			"Apply this command to the following code: %s. Only return the refactored code.",
		command, code,
	)
}

func buildGeneratePrompt(command string) string {
	return fmt.Sprintf(
		"You are an expert programmer. A user has given the following voice command: '%s'. "+
			"Generate the code for this command. Only return the generated code.",
		command,
	)
}

func buildThemePrompt(topic string) string {
	return strings.Join([]string{
		fmt.Sprintf("You are an expert UI/UX designer. A user has asked for a theme for the following topic: '%s'.", topic),
		"Please provide a color palette and font suggestions that are accessible for color-blind and visually impaired users.",
		"ONLY return a valid JSON object, no extra explanation, no markdown, no text outside JSON.",
		"The structure must be exactly: " + themeContract + ".",
		"make sure the colors should be suggested for color-bliand and visually impared users.",
	}, " ")
}

const themeContract = `{ "palette": { "primary": "#...", "secondary": "#...", "accent": "#...", "background": "#...", "text": "#..." }, "fonts": { "heading": "...", "body": "..." }}`

// userMessages wraps a single prompt; no history is ever sent.
func userMessages(prompt string) []domain.ChatMessage {
	return []domain.ChatMessage{{Role: domain.RoleUser, Content: prompt}}
}
