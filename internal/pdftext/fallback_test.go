package pdftext

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/resume"
)

type stubExtractor struct {
	parsed *resume.Parsed
	err    error
}

func (s stubExtractor) Extract(context.Context, ai.Document) (*resume.Parsed, error) {
	if s.parsed == nil {
		return nil, s.err
	}
	cp := *s.parsed
	return &cp, s.err
}

type stubSource struct {
	text  string
	err   error
	calls int
}

func (s *stubSource) Text([]byte) (string, error) {
	s.calls++
	return s.text, s.err
}

var pdfDoc = ai.Document{Name: "cv.pdf", MIMEType: "application/pdf", Data: []byte("%PDF")}

func TestGitHubFallbackKeepsExtractedURL(t *testing.T) {
	src := &stubSource{text: "https://github.com/other"}
	f := WithGitHubFallback(stubExtractor{parsed: &resume.Parsed{GitHubURL: "https://github.com/ada"}}, src, nil)

	parsed, err := f.Extract(context.Background(), pdfDoc)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/ada", parsed.GitHubURL)
	assert.Zero(t, src.calls)
}

func TestGitHubFallbackSearchesParsedText(t *testing.T) {
	src := &stubSource{}
	parsed := &resume.Parsed{Summary: "Code at github.com/ada-l and more"}
	f := WithGitHubFallback(stubExtractor{parsed: parsed}, src, nil)

	got, err := f.Extract(context.Background(), pdfDoc)
	require.NoError(t, err)
	assert.Equal(t, "github.com/ada-l", got.GitHubURL)
	assert.Zero(t, src.calls)
}

func TestGitHubFallbackReadsPDFText(t *testing.T) {
	src := &stubSource{text: "Contact\nhttps://www.github.com/ada\n"}
	f := WithGitHubFallback(stubExtractor{parsed: &resume.Parsed{Name: "Ada"}}, src, nil)

	got, err := f.Extract(context.Background(), pdfDoc)
	require.NoError(t, err)
	assert.Equal(t, "https://www.github.com/ada", got.GitHubURL)
	assert.Equal(t, 1, src.calls)
}

func TestGitHubFallbackIgnoresTextErrors(t *testing.T) {
	src := &stubSource{err: errors.New("encrypted")}
	f := WithGitHubFallback(stubExtractor{parsed: &resume.Parsed{Name: "Ada"}}, src, nil)

	got, err := f.Extract(context.Background(), pdfDoc)
	require.NoError(t, err)
	assert.Empty(t, got.GitHubURL)
}

func TestGitHubFallbackSkipsNonPDF(t *testing.T) {
	src := &stubSource{text: "https://github.com/ada"}
	f := WithGitHubFallback(stubExtractor{parsed: &resume.Parsed{}}, src, nil)

	got, err := f.Extract(context.Background(), ai.Document{Name: "cv.docx", Data: []byte("x")})
	require.NoError(t, err)
	assert.Empty(t, got.GitHubURL)
	assert.Zero(t, src.calls)
}

func TestGitHubFallbackPassesErrorsThrough(t *testing.T) {
	want := &ai.ExtractionError{Document: "cv.pdf", Err: errors.New("bad")}
	f := WithGitHubFallback(stubExtractor{err: want}, &stubSource{}, nil)

	got, err := f.Extract(context.Background(), pdfDoc)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, want)
}

func TestReaderRejectsGarbage(t *testing.T) {
	r, err := NewReader("", 0, nil)
	require.NoError(t, err)

	_, err = r.Text(nil)
	assert.Error(t, err)

	_, err = r.Text([]byte("definitely not a pdf"))
	assert.Error(t, err)
}
