package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-insights/internal/logger"
	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/services"
)

type fakeGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string

	started chan struct{}
	release chan struct{}
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.reply, f.err
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type spyExtractor struct {
	text  string
	err   error
	calls int
}

func (s *spyExtractor) Extract(ctx context.Context, doc *models.UploadedDocument) (string, error) {
	s.calls++
	return s.text, s.err
}

func newDeps(gen services.Generator, ex services.Extractor) Dependencies {
	return Dependencies{
		Extractor: ex,
		Prompts:   services.NewPromptBuilder(),
		Generator: gen,
	}
}

func pdfDoc() *models.UploadedDocument {
	return &models.UploadedDocument{Filename: "resume.pdf", MediaType: models.MediaTypePDF, Data: []byte("%PDF")}
}

func TestAnalyzeWithoutResumeMakesNoCall(t *testing.T) {
	gen := &fakeGenerator{reply: "ATS Score: 80"}
	c := NewResumeController(newDeps(gen, &spyExtractor{}))

	_, err := c.Analyze(context.Background())
	assert.ErrorIs(t, err, models.ErrEmptyInput)

	state := c.Snapshot()
	assert.Equal(t, models.StatusIdle, state.Status)
	assert.Equal(t, "Upload your resume first.", state.Message)
	assert.Nil(t, state.Result)
	assert.Zero(t, gen.calls())
}

func TestBlankExtractedTextBlocksRequest(t *testing.T) {
	gen := &fakeGenerator{}
	c := NewATSController(newDeps(gen, &spyExtractor{text: " \n\t"}))

	resp, err := c.Upload(context.Background(), pdfDoc())
	require.NoError(t, err)
	assert.False(t, resp.HasContent)

	_, err = c.Score(context.Background())
	assert.ErrorIs(t, err, models.ErrEmptyInput)
	assert.Equal(t, "Upload resume first.", c.Snapshot().Message)
	assert.Zero(t, gen.calls())
}

func TestUploadRejectsUnsupportedWithoutExtracting(t *testing.T) {
	ex := &spyExtractor{text: "never"}
	c := NewMatchController(newDeps(&fakeGenerator{}, ex))

	_, err := c.Upload(context.Background(), &models.UploadedDocument{Filename: "a.png", MediaType: models.MediaTypeUnsupported})
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
	assert.Zero(t, ex.calls)

	state := c.Snapshot()
	assert.False(t, state.HasDocument)
	assert.Equal(t, "Upload PDF or DOCX only.", state.Message)
}

func TestUploadExtractionFailureKeepsPreviousDocument(t *testing.T) {
	ex := &spyExtractor{text: "Jane Doe"}
	c := NewResumeController(newDeps(&fakeGenerator{}, ex))

	_, err := c.Upload(context.Background(), pdfDoc())
	require.NoError(t, err)

	ex.err = models.ErrExtractionFailed
	_, err = c.Upload(context.Background(), &models.UploadedDocument{Filename: "broken.docx", MediaType: models.MediaTypeDOCX})
	assert.ErrorIs(t, err, models.ErrExtractionFailed)

	state := c.Snapshot()
	assert.Equal(t, "resume.pdf", state.Filename)
	assert.Equal(t, len("Jane Doe"), state.TextLength)
	assert.NotEmpty(t, state.Message)
}

func TestAnalyzeSucceeds(t *testing.T) {
	gen := &fakeGenerator{reply: "ATS Score: 78\n- Add metrics\nSolid profile"}
	c := NewResumeController(newDeps(gen, &spyExtractor{text: "Name: Jane Doe"}))

	resp, err := c.Upload(context.Background(), pdfDoc())
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", resp.Filename)
	assert.True(t, resp.HasContent)

	result, err := c.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Line{
		{Kind: models.LineHeading, Text: "ATS Score: 78"},
		{Kind: models.LineBullet, Text: "Add metrics"},
		{Kind: models.LineProse, Text: "Solid profile"},
	}, result.Sections)

	state := c.Snapshot()
	assert.Equal(t, models.StatusSucceeded, state.Status)
	assert.Equal(t, result, state.Result)
	require.Equal(t, 1, gen.calls())
	assert.Contains(t, gen.prompts[0], "Name: Jane Doe")
}

func TestFailureClearsPreviousResult(t *testing.T) {
	gen := &fakeGenerator{reply: `{"score": 72, "missing_keywords": ["Kubernetes"]}`}
	c := NewATSController(newDeps(gen, &spyExtractor{text: "resume"}))
	_, err := c.Upload(context.Background(), pdfDoc())
	require.NoError(t, err)

	first, err := c.Score(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 72, first.Score)

	gen.reply = "I cannot score this."
	_, err = c.Score(context.Background())
	assert.ErrorIs(t, err, models.ErrMalformedResponse)

	state := c.Snapshot()
	assert.Equal(t, models.StatusFailed, state.Status)
	assert.Nil(t, state.Result)
	assert.Equal(t, "Error calculating ATS score.", state.Message)

	// Failed behaves as idle for the next attempt.
	gen.reply = `{"score": 90}`
	again, err := c.Score(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 90, again.Score)
	assert.Empty(t, c.Snapshot().Message)
}

func TestGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.Join(models.ErrGenerationFailed, errors.New("quota"))}
	c := NewSkillPathController(newDeps(gen, nil))

	_, err := c.Generate(context.Background(), "Go, SQL", "Platform Engineer")
	assert.ErrorIs(t, err, models.ErrGenerationFailed)

	state := c.Snapshot()
	assert.Equal(t, models.StatusFailed, state.Status)
	assert.Equal(t, "Something went wrong. Try again.", state.Message)
	assert.False(t, state.HasDocument)
}

func TestSkillPathValidation(t *testing.T) {
	gen := &fakeGenerator{}
	c := NewSkillPathController(newDeps(gen, nil))

	_, err := c.Generate(context.Background(), "Go", "  ")
	assert.ErrorIs(t, err, models.ErrEmptyInput)
	assert.Equal(t, "Please enter skills and target role.", c.Snapshot().Message)
	assert.Zero(t, gen.calls())
}

func TestMatchUsesJobText(t *testing.T) {
	gen := &fakeGenerator{reply: "65\nMissing: Docker\nMatched: Python"}
	c := NewMatchController(newDeps(gen, &spyExtractor{text: "Python developer"}))
	_, err := c.Upload(context.Background(), pdfDoc())
	require.NoError(t, err)

	_, err = c.Match(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrEmptyInput)
	assert.Equal(t, "Please upload resume + job description.", c.Snapshot().Message)

	result, err := c.Match(context.Background(), "Needs Docker and Python")
	require.NoError(t, err)
	assert.Equal(t, 65, result.Score)
	assert.Len(t, result.Narrative, 2)
	require.Equal(t, 1, gen.calls())
	assert.Contains(t, gen.prompts[0], "Needs Docker and Python")
	assert.Contains(t, gen.prompts[0], "Python developer")
}

func TestClearDocumentBlocksNextRequest(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	c := NewResumeController(newDeps(gen, &spyExtractor{text: "resume"}))
	_, err := c.Upload(context.Background(), pdfDoc())
	require.NoError(t, err)

	c.ClearDocument()
	assert.False(t, c.Snapshot().HasDocument)

	_, err = c.Analyze(context.Background())
	assert.ErrorIs(t, err, models.ErrEmptyInput)
	assert.Zero(t, gen.calls())
}

func TestSecondRequestWhileInFlightIsBusy(t *testing.T) {
	gen := &fakeGenerator{
		reply:   `{"score": 50}`,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := NewATSController(newDeps(gen, &spyExtractor{text: "resume"}))
	_, err := c.Upload(context.Background(), pdfDoc())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := c.Score(context.Background())
		done <- err
	}()
	<-gen.started

	assert.Equal(t, models.StatusInFlight, c.Snapshot().Status)
	assert.Nil(t, c.Snapshot().Result)

	_, err = c.Score(context.Background())
	assert.ErrorIs(t, err, models.ErrBusy)

	close(gen.release)
	require.NoError(t, <-done)
	assert.Equal(t, models.StatusSucceeded, c.Snapshot().Status)
	assert.Equal(t, 1, gen.calls())
}

type panickingGenerator struct{}

func (panickingGenerator) Generate(context.Context, string) (string, error) {
	panic("boom")
}

func TestPanicDoesNotLeaveSessionInFlight(t *testing.T) {
	c := NewSkillPathController(newDeps(panickingGenerator{}, nil))

	_, err := c.Generate(context.Background(), "Go", "SRE")
	assert.ErrorIs(t, err, models.ErrGenerationFailed)
	assert.Equal(t, models.StatusFailed, c.Snapshot().Status)
}

func TestControllersAreIsolated(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	deps := newDeps(gen, &spyExtractor{text: "resume"})
	resume := NewResumeController(deps)
	ats := NewATSController(deps)

	_, err := resume.Upload(context.Background(), pdfDoc())
	require.NoError(t, err)

	assert.True(t, resume.Snapshot().HasDocument)
	assert.False(t, ats.Snapshot().HasDocument)
	assert.Equal(t, models.TaskAtsScore, ats.Snapshot().Kind)
}

type loggingGenerator struct{}

func (loggingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	logger.Ctx(ctx).Info().Msg("generating")
	return "Go\n- Kubernetes", nil
}

func TestAttemptIDReachesGenerator(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(logger.Config{Level: "info"}, &buf)
	t.Cleanup(func() { logger.InitWithWriter(logger.Config{}, io.Discard) })

	c := NewSkillPathController(newDeps(loggingGenerator{}, nil))
	_, err := c.Generate(context.Background(), "Go", "SRE")
	require.NoError(t, err)

	ids := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if id, ok := entry["attempt_id"].(string); ok {
			ids[entry["message"].(string)] = id
		}
	}

	require.Contains(t, ids, "generating")
	require.Contains(t, ids, "request succeeded")
	assert.NotEmpty(t, ids["generating"])
	assert.Equal(t, ids["request succeeded"], ids["generating"])
}
