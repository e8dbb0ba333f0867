package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"alfredoptarigan/resume-insights/internal/logger"
	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/services"
)

const (
	unsupportedFormatMessage = "Upload PDF or DOCX only."
	extractionFailedMessage  = "Could not read this document. Try another file."
)

// Dependencies are shared by every controller. The generator is one
// long-lived client; controllers never build their own.
type Dependencies struct {
	Extractor services.Extractor
	Prompts   *services.PromptBuilder
	Generator services.Generator
}

// session is the state machine behind a single task. All fields below mu
// are guarded by it; the generation call itself runs unlocked.
type session struct {
	kind           models.TaskKind
	deps           Dependencies
	failureMessage string
	log            zerolog.Logger

	mu       sync.Mutex
	status   models.RequestStatus
	message  string
	result   models.TaskResult
	document *models.UploadedDocument
	text     string
}

func newSession(kind models.TaskKind, deps Dependencies, failureMessage string) *session {
	if deps.Prompts == nil {
		deps.Prompts = services.NewPromptBuilder()
	}
	return &session{
		kind:           kind,
		deps:           deps,
		failureMessage: failureMessage,
		log:            logger.With("controller").With().Str("task", string(kind)).Logger(),
		status:         models.StatusIdle,
	}
}

func (s *session) upload(ctx context.Context, doc *models.UploadedDocument) (*models.UploadResponse, error) {
	if doc == nil || !doc.MediaType.Supported() {
		s.setMessage(unsupportedFormatMessage)
		return nil, models.ErrUnsupportedFormat
	}

	text, err := s.deps.Extractor.Extract(ctx, doc)
	if err != nil {
		s.log.Warn().Err(err).Str("filename", doc.Filename).Msg("document extraction failed")
		if errors.Is(err, models.ErrUnsupportedFormat) {
			s.setMessage(unsupportedFormatMessage)
		} else {
			s.setMessage(extractionFailedMessage)
		}
		return nil, err
	}

	s.mu.Lock()
	s.document = doc
	s.text = text
	s.message = ""
	s.mu.Unlock()

	s.log.Info().
		Str("filename", doc.Filename).
		Str("media_type", string(doc.MediaType)).
		Int("characters", len(text)).
		Msg("document uploaded")

	return &models.UploadResponse{
		Filename:   doc.Filename,
		MediaType:  doc.MediaType,
		TextLength: len(text),
		HasContent: strings.TrimSpace(text) != "",
	}, nil
}

func (s *session) clearDocument() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.document = nil
	s.text = ""
	s.message = ""
}

func (s *session) setMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// run drives one attempt. newRequest is called under the lock so the
// request sees a consistent copy of the extracted text.
func (s *session) run(ctx context.Context, newRequest func(text string) models.TaskRequest) (models.TaskResult, error) {
	s.mu.Lock()
	if s.status == models.StatusInFlight {
		s.mu.Unlock()
		return nil, models.ErrBusy
	}
	req := newRequest(s.text)
	if err := req.Validate(); err != nil {
		s.message = err.Error()
		s.mu.Unlock()
		return nil, err
	}
	s.status = models.StatusInFlight
	s.result = nil
	s.message = ""
	s.mu.Unlock()

	attemptLog := s.log.With().Str("attempt_id", uuid.NewString()).Logger()
	ctx = logger.WithContext(ctx, attemptLog)
	start := time.Now()
	attemptLog.Debug().Msg("request started")

	result, err := s.execute(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.status = models.StatusFailed
		s.message = s.failureMessage
		attemptLog.Error().
			Err(err).
			Dur("took", time.Since(start)).
			Msg("request failed")
		return nil, err
	}

	s.status = models.StatusSucceeded
	s.result = result
	attemptLog.Info().
		Dur("took", time.Since(start)).
		Msg("request succeeded")

	return result, nil
}

func (s *session) execute(ctx context.Context, req models.TaskRequest) (result models.TaskResult, err error) {
	// A panic here would otherwise leave the session in flight forever.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%w: panic: %v", models.ErrGenerationFailed, r)
		}
	}()

	prompt, err := s.deps.Prompts.Build(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	raw, err := s.deps.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return services.Normalize(req.Kind(), raw)
}

func (s *session) snapshot() models.TaskState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := models.TaskState{
		Kind:        s.kind,
		Status:      s.status,
		HasDocument: s.document != nil,
		TextLength:  len(s.text),
		Message:     s.message,
		Result:      s.result,
	}
	if s.document != nil {
		state.Filename = s.document.Filename
	}
	return state
}
