package telegram

import (
	"context"
	"unicode/utf8"
)

// MaxMessageLength is the Bot API limit for a text message, in characters.
const MaxMessageLength = 4096

// SplitText cuts text into chunks of at most limit runes. A cut prefers the
// last newline inside the window and never leaves a trailing escape
// backslash, so MarkdownV2 escapes stay intact. Concatenating the chunks
// gives back text.
func SplitText(text string, limit int) []string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		if nl := lastIndexRune(runes[:limit], '\n'); nl > 0 {
			cut = nl + 1
		}
		if trailingBackslashes(runes[:cut])%2 == 1 && cut > 1 {
			cut--
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

// SendLongText delivers m through sender, split to fit MaxMessageLength.
// The reply markup rides on the last chunk.
func SendLongText(ctx context.Context, sender Sender, m Message) error {
	chunks := SplitText(m.Text, MaxMessageLength)
	for i, chunk := range chunks {
		part := m
		part.Text = chunk
		if i < len(chunks)-1 {
			part.ReplyMarkup = nil
		}
		if err := sender.SendText(ctx, part); err != nil {
			return err
		}
	}
	return nil
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

func trailingBackslashes(runes []rune) int {
	n := 0
	for i := len(runes) - 1; i >= 0 && runes[i] == '\\'; i-- {
		n++
	}
	return n
}
