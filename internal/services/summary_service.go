package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skillbridge/skillbridge-backend/internal/cache"
	"github.com/skillbridge/skillbridge-backend/internal/models"
	pgrepo "github.com/skillbridge/skillbridge-backend/internal/repositories/postgres"
	"github.com/skillbridge/skillbridge-backend/internal/summary"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

// MinTranscriptChars gates server-side summarization: shorter transcripts
// are rejected before the generator is ever invoked.
const MinTranscriptChars = 50

type SummaryRequest struct {
	Transcript string
	SessionID  *uint
	Language   string
	// ClientSummary bypasses generation entirely when the caller already
	// computed a summary in the browser.
	ClientSummary string
}

type SummaryResult struct {
	Summary   string
	IsMock    bool
	Persisted bool
}

type SummaryService interface {
	Generate(ctx context.Context, req SummaryRequest) (*SummaryResult, error)
}

type summaryService struct {
	generator *summary.Generator
	sessions  pgrepo.SessionRepository
	locks     cache.Locker
	log       *logrus.Logger
}

func NewSummaryService(generator *summary.Generator, sessions pgrepo.SessionRepository, locks cache.Locker, log *logrus.Logger) SummaryService {
	if log == nil {
		log = logrus.New()
	}
	return &summaryService{generator: generator, sessions: sessions, locks: locks, log: log}
}

func (s *summaryService) Generate(ctx context.Context, req SummaryRequest) (*SummaryResult, error) {
	const op = "SummaryService.Generate"

	if strings.TrimSpace(req.Transcript) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "transcript is required", nil)
	}

	language := summary.NormalizeLanguage(req.Language)

	var (
		text   string
		isMock bool
	)
	if req.ClientSummary != "" {
		text = req.ClientSummary
		isMock = false
	} else {
		if len(strings.TrimSpace(req.Transcript)) < MinTranscriptChars {
			return nil, utils.E(utils.CodeInvalidArgument, op, "transcript too short for meaningful summary", nil)
		}
		text, isMock = s.generator.Generate(ctx, req.Transcript, language)
	}

	res := &SummaryResult{Summary: text, IsMock: isMock}

	if req.SessionID == nil {
		return res, nil
	}

	if s.locks != nil {
		release, err := s.locks.Acquire(ctx, fmt.Sprintf("lock:session:%d", *req.SessionID), 30*time.Second)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to acquire session lock", err)
		}
		defer release()
	}

	err := s.sessions.UpsertSummary(ctx, &models.SessionSummary{
		SessionID:  *req.SessionID,
		Transcript: req.Transcript,
		Summary:    text,
		Language:   language,
		IsMock:     isMock,
	})
	switch {
	case errors.Is(err, utils.ErrSessionNotFound):
		// non-fatal: the caller still gets the computed summary
		s.log.WithField("session_id", *req.SessionID).Warn("session not found, summary not persisted")
	case err != nil:
		return nil, utils.E(utils.CodeInternal, op, "failed to persist summary", err)
	default:
		res.Persisted = true
	}

	return res, nil
}
