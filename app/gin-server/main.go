package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/skillbridge/skillbridge-backend/config"
	"github.com/skillbridge/skillbridge-backend/internal/api/handlers"
	"github.com/skillbridge/skillbridge-backend/internal/api/middleware"
	"github.com/skillbridge/skillbridge-backend/internal/api/routes"
	"github.com/skillbridge/skillbridge-backend/internal/cache"
	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/media"
	"github.com/skillbridge/skillbridge-backend/internal/providers/llm"
	"github.com/skillbridge/skillbridge-backend/internal/providers/stt"
	"github.com/skillbridge/skillbridge-backend/internal/providers/videoroom"
	pgrepo "github.com/skillbridge/skillbridge-backend/internal/repositories/postgres"
	"github.com/skillbridge/skillbridge-backend/internal/services"
	"github.com/skillbridge/skillbridge-backend/internal/storage"
	"github.com/skillbridge/skillbridge-backend/internal/summary"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	lg := logger.New()
	ctx := context.Background()

	db, err := config.OpenPostgres(cfg.Postgres)
	if err != nil {
		lg.WithError(err).Fatal("postgres init error")
	}
	lg.Info("postgres connected")

	// Redis is optional: without it sessions are uncached and per-session
	// locking falls back to the store's unique constraints alone.
	var (
		jsonCache cache.Cache
		locker    cache.Locker
	)
	if cfg.Redis.Addr != "" {
		rdb, err := config.OpenRedis(cfg.Redis)
		if err != nil {
			lg.WithError(err).Fatal("redis init error")
		}
		jsonCache = cache.NewRedisCache(rdb)
		locker = cache.NewRedisLocker(rdb)
		lg.Info("redis connected")
	} else {
		lg.Warn("redis not configured, running without cache and session locks")
	}

	rooms := videoroom.NewDaily(cfg.Daily.APIKey, cfg.Daily.Domain, cfg.Daily.BaseURL, lg)
	if cfg.Daily.APIKey == "" {
		lg.Warn("no video-room api key, rooms run in fallback mode")
	}

	uploader, speech := buildMediaBackends(ctx, cfg, lg)
	generator := summary.New(buildSummaryBackend(ctx, cfg, lg), lg)

	sessionRepo := pgrepo.NewSessionRepo(db)
	profileRepo := pgrepo.NewProfileRepo(db)
	skillRepo := pgrepo.NewSkillRepo(db)

	pipeline := services.NewRecordingPipeline(services.RecordingPipelineDeps{
		Rooms:             rooms,
		Transcoder:        media.NewTranscoder(),
		Uploader:          uploader,
		STT:               speech,
		Summaries:         generator,
		Sessions:          sessionRepo,
		Locks:             locker,
		TranscribeTimeout: time.Duration(cfg.Speech.OperationTimeoutS) * time.Second,
		STTLanguage:       cfg.Speech.Language,
		STTAlternates:     cfg.Speech.AlternateLangs,
		Logger:            lg,
	})

	sessionSvc := services.NewSessionService(sessionRepo, rooms, jsonCache, lg)
	summarySvc := services.NewSummaryService(generator, sessionRepo, locker, lg)
	profileSvc := services.NewProfileService(profileRepo)
	skillSvc := services.NewSkillService(skillRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(lg))

	routes.RegisterRoutes(r, routes.Deps{
		Session:         handlers.NewSessionHandler(sessionSvc),
		Summary:         handlers.NewSummaryHandler(summarySvc),
		Recording:       handlers.NewRecordingHandler(pipeline),
		Profile:         handlers.NewProfileHandler(profileSvc),
		Skill:           handlers.NewSkillHandler(skillSvc),
		APIAuthRequired: cfg.Server.APIAuthRequired,
	})

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		lg.WithError(err).Fatal("server exited")
	}
}

// buildMediaBackends picks the storage uploader and speech backend. Without
// a bucket both degrade: blobs land under a local directory and the stub
// transcriber supplies a canned transcript.
func buildMediaBackends(ctx context.Context, cfg *config.Config, lg *logrus.Logger) (storage.Uploader, stt.Provider) {
	if cfg.Storage.Bucket == "" || cfg.Storage.LocalDir != "" {
		dir := cfg.Storage.LocalDir
		if dir == "" {
			dir = os.TempDir()
		}
		lg.WithField("dir", dir).Warn("using local uploader and stub transcriber")
		return storage.NewLocalUploader(dir), stt.Stub{}
	}

	uploader, err := storage.NewGCSUploader(ctx, cfg.Storage.Bucket)
	if err != nil {
		lg.WithError(err).Fatal("gcs init error")
	}

	speech, err := stt.NewGoogleSpeech(ctx)
	if err != nil {
		lg.WithError(err).Fatal("speech init error")
	}
	return uploader, speech
}

// buildSummaryBackend returns nil when no generative backend is configured;
// the generator then serves templated summaries only.
func buildSummaryBackend(ctx context.Context, cfg *config.Config, lg *logrus.Logger) llm.Provider {
	switch cfg.Summary.Backend {
	case "vertex":
		p, err := llm.NewVertexGemini(ctx, cfg.Summary.VertexProject, cfg.Summary.VertexRegion, cfg.Summary.Model)
		if err != nil {
			lg.WithError(err).Fatal("vertex init error")
		}
		return p
	case "openai":
		p, err := llm.NewOpenAI(cfg.Summary.OpenAIKey, cfg.Summary.Model)
		if err != nil {
			lg.WithError(err).Fatal("openai init error")
		}
		return p
	default:
		lg.Warn("no summary backend configured, summaries use the templated fallback")
		return nil
	}
}
