// Package markdown escapes text for Telegram MarkdownV2 messages.
package markdown

import "strings"

// specialChars lists all characters that must be escaped in Telegram MarkdownV2.
var specialChars = strings.NewReplacer(
	`_`, `\_`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`(`, `\(`,
	`)`, `\)`,
	`~`, `\~`,
	"`", "\\`",
	`>`, `\>`,
	`#`, `\#`,
	`+`, `\+`,
	`-`, `\-`,
	`=`, `\=`,
	`|`, `\|`,
	`{`, `\{`,
	`}`, `\}`,
	`.`, `\.`,
	`!`, `\!`,
)

// Escape escapes all special characters for Telegram MarkdownV2 format.
// Special chars: _ * [ ] ( ) ~ ` > # + - = | { } . !
// Everything else, including multi-byte runes, passes through unchanged.
func Escape(text string) string {
	return specialChars.Replace(text)
}
