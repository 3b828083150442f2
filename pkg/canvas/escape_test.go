package canvas

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		html  string
		attr  string
	}{
		{"empty", "", "", ""},
		{"plain", "Hello, World!", "Hello, World!", "Hello, World!"},
		{"markup", `<a href="x">Tom & 'Jerry'</a>`,
			"&lt;a href=&quot;x&quot;&gt;Tom &amp; &#39;Jerry&#39;&lt;/a&gt;",
			"&lt;a href=&quot;x&quot;&gt;Tom &amp; &#39;Jerry&#39;&lt;/a&gt;"},
		{"whitespace", "a\nb\tc", "a\nb\tc", "a&#10;b&#9;c"},
		{"unicode", "héllo 世界", "héllo 世界", "héllo 世界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeHTML(tt.input); got != tt.html {
				t.Errorf("escapeHTML(%q) = %q, want %q", tt.input, got, tt.html)
			}
			if got := escapeAttr(tt.input); got != tt.attr {
				t.Errorf("escapeAttr(%q) = %q, want %q", tt.input, got, tt.attr)
			}
		})
	}
}
