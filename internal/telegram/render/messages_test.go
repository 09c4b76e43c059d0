package render

import (
	"strings"
	"testing"

	"github.com/futig/product-search/internal/entity"
)

func TestRenderNotices(t *testing.T) {
	got := RenderNotices(
		entity.Notice{Level: entity.NoticeSuccess, Text: "Successfully uploaded 1 file(s)"},
		entity.Notice{Level: entity.NoticeError, Text: "Error uploading b.pdf: boom"},
	)
	want := "✅ Successfully uploaded 1 file(s)\n❌ Error uploading b.pdf: boom"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderSearchView(t *testing.T) {
	view := &entity.SearchView{
		Message: "Found 1 matching products:",
		Cards:   []entity.ResultCard{{Title: "Modern Chairs", Subtitle: "0.87", Detail: "a.jpg"}},
	}
	got := RenderSearchView(view, entity.Notice{Level: entity.NoticeSuccess, Text: view.Message})
	if !strings.Contains(got, "1. Modern Chairs\nScore: 0.87\nFile: a.jpg") {
		t.Fatalf("rendered = %q", got)
	}
}

func TestRenderIndexReply(t *testing.T) {
	got := RenderIndexReply(entity.Notice{Level: entity.NoticeSuccess, Text: "done"}, []byte(`{"a":1}`))
	if got != "✅ done\n\n{\n  \"a\": 1\n}" {
		t.Fatalf("rendered = %q", got)
	}

	got = RenderIndexReply(entity.Notice{Level: entity.NoticeSuccess, Text: "done"}, []byte(`not json`))
	if !strings.HasSuffix(got, "not json") {
		t.Fatalf("rendered = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", maxMessageLength+10)
	if got := []rune(truncate(long)); len(got) != maxMessageLength+2 {
		t.Fatalf("truncated length = %d", len(got))
	}
}
