package md2card

import (
	"context"
	"strings"
	"testing"
)

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantBody string
		wantTags []string
	}{
		{
			name:     "trailing tags",
			content:  "hello world #foo #bar",
			wantBody: "hello world",
			wantTags: []string{"foo", "bar"},
		},
		{
			name:     "no tags",
			content:  "hello world",
			wantBody: "hello world",
			wantTags: nil,
		},
		{
			name:     "wide-script tags",
			content:  "正文内容\n\n#效率 #工具分享",
			wantBody: "正文内容",
			wantTags: []string{"效率", "工具分享"},
		},
		{
			name:     "hash mid-content stays",
			content:  "issue #42 was fixed today",
			wantBody: "issue #42 was fixed today",
			wantTags: nil,
		},
		{
			name:     "tags only",
			content:  "#solo",
			wantBody: "",
			wantTags: []string{"solo"},
		},
		{
			name:     "tags across final lines",
			content:  "text\n#a #b\n#c",
			wantBody: "text",
			wantTags: []string{"a", "b", "c"},
		},
		{
			name:     "accented kana and hangul tags",
			content:  "text\n\n#café #カフェ #한국어",
			wantBody: "text",
			wantTags: []string{"café", "カフェ", "한국어"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, tags := extractTags(tt.content)
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if len(tags) != len(tt.wantTags) {
				t.Fatalf("tags = %v, want %v", tags, tt.wantTags)
			}
			for i := range tags {
				if tags[i] != tt.wantTags[i] {
					t.Errorf("tags[%d] = %q, want %q", i, tags[i], tt.wantTags[i])
				}
			}
		})
	}
}

func TestGoldmarkConverter(t *testing.T) {
	conv := newGoldmarkConverter()
	ctx := context.Background()

	t.Run("headings and emphasis", func(t *testing.T) {
		html, err := conv.ToHTML(ctx, "# Title\n\nSome **bold** text")
		if err != nil {
			t.Fatalf("ToHTML() error = %v", err)
		}
		if !strings.Contains(html, "<h1>Title</h1>") {
			t.Errorf("output missing heading: %q", html)
		}
		if !strings.Contains(html, "<strong>bold</strong>") {
			t.Errorf("output missing emphasis: %q", html)
		}
	})

	t.Run("hard wraps become line breaks", func(t *testing.T) {
		html, err := conv.ToHTML(ctx, "line one\nline two")
		if err != nil {
			t.Fatalf("ToHTML() error = %v", err)
		}
		if !strings.Contains(html, "<br") {
			t.Errorf("output missing <br> for hard wrap: %q", html)
		}
	})

	t.Run("fenced code is highlighted with classes", func(t *testing.T) {
		html, err := conv.ToHTML(ctx, "```go\nfmt.Println(1)\n```")
		if err != nil {
			t.Fatalf("ToHTML() error = %v", err)
		}
		if !strings.Contains(html, "<pre") {
			t.Errorf("output missing code block: %q", html)
		}
	})

	t.Run("canceled context returns error", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := conv.ToHTML(canceled, "# Title"); err == nil {
			t.Error("ToHTML() with canceled context, want error")
		}
	})
}
