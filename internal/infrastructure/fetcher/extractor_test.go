package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchTextExtractsParagraphs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`
		<html><body>
		  <nav>menu</nav>
		  <article>
		    <p>First paragraph of the story.</p>
		    <p>  Second paragraph.  </p>
		    <p></p>
		  </article>
		</body></html>`))
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client())
	text, err := extractor.FetchText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchText error: %v", err)
	}

	want := "First paragraph of the story.\n\nSecond paragraph."
	if text != want {
		t.Fatalf("unexpected text: %q", text)
	}
	if strings.Contains(text, "menu") {
		t.Fatalf("navigation text leaked into extraction: %q", text)
	}
}

func TestFetchTextSurfacesHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client())
	if _, err := extractor.FetchText(context.Background(), server.URL); err == nil {
		t.Fatalf("expected error on 404 response")
	}
}

func TestFetchTextBoundsOutput(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>" + strings.Repeat("a", 2*maxExtractedChars) + "</p></body></html>"))
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client())
	text, err := extractor.FetchText(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("FetchText error: %v", err)
	}
	if len(text) > maxExtractedChars {
		t.Fatalf("extracted text exceeds cap: %d", len(text))
	}
}
