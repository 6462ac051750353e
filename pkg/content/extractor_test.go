package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	longBody := strings.Repeat("word ", 200) // ~1000 chars of article body

	tests := []struct {
		name     string
		html     string
		contains string
		excludes []string
	}{
		{
			name:     "strips script style and noscript",
			html:     `<html><body><script>var x=1;</script><style>p{color:red}</style><noscript>enable js</noscript><p>` + longBody + `</p></body></html>`,
			contains: "word word",
			excludes: []string{"var x=1", "color:red", "enable js"},
		},
		{
			name:     "scopes to article element",
			html:     `<html><body><nav>site navigation</nav><article><p>` + longBody + `</p></article><footer>footer junk</footer></body></html>`,
			contains: "word word",
			excludes: []string{"site navigation", "footer junk"},
		},
		{
			name:     "case-insensitive multiline script removal",
			html:     "<html><body><SCRIPT>\nsecret();\n</SCRIPT><p>" + longBody + "</p></body></html>",
			contains: "word",
			excludes: []string{"secret()"},
		},
		{
			name:     "decodes entities",
			html:     `<html><body><article><p>fish &amp; chips ` + longBody + `</p></article></body></html>`,
			contains: "fish & chips",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractText(tt.html)
			assert.Contains(t, got, tt.contains)
			for _, ex := range tt.excludes {
				assert.NotContains(t, got, ex)
			}
		})
	}
}

func TestExtractText_TeaserFallback(t *testing.T) {
	// article wraps only a short teaser, the real text sits outside it
	teaser := "Read the first paragraph of this story."
	rest := strings.Repeat("full body text ", 100)
	html := `<html><body><article><p>` + teaser + `</p></article><div><p>` + rest + `</p></div></body></html>`

	got := ExtractText(html)
	assert.Contains(t, got, "full body text", "short article scope must fall back to the full document")
	assert.Contains(t, got, teaser)
}

func TestExtractText_ArticleKeptWhenLongEnough(t *testing.T) {
	body := strings.Repeat("article body ", 100) // well over the fallback floor
	html := `<html><body><article><p>` + body + `</p></article><div>unrelated sidebar content</div></body></html>`

	got := ExtractText(html)
	assert.Contains(t, got, "article body")
	assert.NotContains(t, got, "unrelated sidebar")
}

func TestExtractText_CollapsesWhitespace(t *testing.T) {
	html := "<html><body><p>one\n\n\ttwo   three</p></body></html>"
	got := ExtractText(html)
	assert.Equal(t, "one two three", got)
}

func TestExtractText_CapsLength(t *testing.T) {
	huge := strings.Repeat("x", MaxTextLen+5000)
	html := "<html><body><p>" + huge + "</p></body></html>"
	got := ExtractText(html)
	assert.Equal(t, MaxTextLen, utf8.RuneCountInString(got))
}

func TestExtractText_Malformed(t *testing.T) {
	assert.Equal(t, "", ExtractText(""))
	// unclosed tags still yield text, the parser is lenient
	got := ExtractText("<p>hello <b>world")
	assert.Contains(t, got, "hello")
	assert.Contains(t, got, "world")
}

func TestIsPaywalled(t *testing.T) {
	cleanText := strings.Repeat("readable text ", 80) // ~1000 chars, no signal phrase

	tests := []struct {
		name   string
		text   string
		status int
		want   bool
	}{
		{name: "403 always paywalled", text: cleanText, status: http.StatusForbidden, want: true},
		{name: "401 always paywalled", text: cleanText, status: http.StatusUnauthorized, want: true},
		{name: "402 always paywalled", text: cleanText, status: http.StatusPaymentRequired, want: true},
		{name: "signal phrase", text: cleanText + " Subscribe To Continue reading this story.", status: http.StatusOK, want: true},
		{name: "already a subscriber phrase", text: cleanText + " Already a subscriber? Sign in.", status: http.StatusOK, want: true},
		{name: "tiny text is inaccessible", text: "just a stub", status: http.StatusOK, want: true},
		{name: "clean long text passes", text: cleanText, status: http.StatusOK, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPaywalled(tt.text, tt.status))
		})
	}
}

func TestExtractor_FetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("forbidden"))
			return
		}
		_, _ = w.Write([]byte("<html><body>ok page</body></html>"))
	}))
	defer srv.Close()

	e := NewExtractor(5*time.Second, "calmfeed-test/1.0")

	body, status, err := e.FetchPage(context.Background(), srv.URL+"/article")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "ok page")

	// non-2xx is not an error, the status feeds the paywall check
	body, status, err = e.FetchPage(context.Background(), srv.URL+"/gone")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body, "forbidden")

	_, _, err = e.FetchPage(context.Background(), "http://127.0.0.1:0/unreachable")
	require.Error(t, err)
}
