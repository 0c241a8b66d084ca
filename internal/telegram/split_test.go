package telegram

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		limit  int
		chunks []string
	}{
		{"short", "hello", 10, []string{"hello"}},
		{"exact", "abcde", 5, []string{"abcde"}},
		{"hard cut", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"newline preferred", "ab\ncdef", 5, []string{"ab\n", "cdef"}},
		{"escape kept whole", `ab\.cd`, 3, []string{"ab", `\.c`, "d"}},
		{"runes not bytes", "ééééé", 2, []string{"éé", "éé", "é"}},
	}

	for _, tt := range tests {
		got := SplitText(tt.text, tt.limit)
		if strings.Join(got, "|") != strings.Join(tt.chunks, "|") {
			t.Errorf("%s: SplitText(%q, %d) = %q, want %q", tt.name, tt.text, tt.limit, got, tt.chunks)
		}
	}
}

func TestSplitText_RoundTripsLongPayload(t *testing.T) {
	text := "Code texte: " + strings.Repeat("2@abc,", 2000)

	chunks := SplitText(text, MaxMessageLength)

	if len(chunks) < 3 {
		t.Fatalf("chunks = %d, want at least 3", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > MaxMessageLength {
			t.Errorf("chunk %d has %d runes", i, n)
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("chunks do not reassemble the original text")
	}
}

type recordingSender struct {
	texts []Message
}

func (r *recordingSender) SendText(_ context.Context, m Message) error {
	r.texts = append(r.texts, m)
	return nil
}

func (r *recordingSender) SendPhoto(context.Context, Photo) error       { return nil }
func (r *recordingSender) SendDocument(context.Context, Document) error { return nil }

func TestSendLongText_MarkupOnLastChunk(t *testing.T) {
	sender := &recordingSender{}
	markup := struct{}{}

	err := SendLongText(context.Background(), sender, Message{
		ChatID:      7,
		Text:        strings.Repeat("x", MaxMessageLength+10),
		ReplyMarkup: markup,
	})
	if err != nil {
		t.Fatalf("SendLongText failed: %v", err)
	}

	if len(sender.texts) != 2 {
		t.Fatalf("sent %d messages, want 2", len(sender.texts))
	}
	if sender.texts[0].ReplyMarkup != nil || sender.texts[1].ReplyMarkup == nil {
		t.Errorf("markup = %v, %v; want only on the last chunk", sender.texts[0].ReplyMarkup, sender.texts[1].ReplyMarkup)
	}
	if sender.texts[0].ChatID != 7 || sender.texts[1].ChatID != 7 {
		t.Error("chat id not carried to every chunk")
	}
}
