package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ProbabilityPit/internal/domain/models"
	domrepo "ProbabilityPit/internal/domain/repository"
	domsvc "ProbabilityPit/internal/domain/service"
	"ProbabilityPit/internal/services/curriculum"
	"ProbabilityPit/pkg/cache"
	xhttp "ProbabilityPit/pkg/http"
	applogger "ProbabilityPit/pkg/logger"
)

const lessonKeyPrefix = "lesson"

// Lesson load results, used as metric labels.
const (
	loadHit      = "hit"
	loadFetched  = "fetched"
	loadFallback = "fallback"
)

// LessonUsecase loads, renders and caches curriculum lessons.
type LessonUsecase struct {
	source   domrepo.ContentSource
	cache    cache.Service
	renderer domsvc.MarkdownRenderer
	metrics  domrepo.Metrics
	log      *applogger.Logger
	ttl      time.Duration
}

func NewLessonUsecase(
	source domrepo.ContentSource,
	c cache.Service,
	renderer domsvc.MarkdownRenderer,
	metrics domrepo.Metrics,
	log *applogger.Logger,
	ttl time.Duration,
) *LessonUsecase {
	return &LessonUsecase{source: source, cache: c, renderer: renderer, metrics: metrics, log: log, ttl: ttl}
}

// Purge drops every cached lesson, so edited content is served on the next load.
func (u *LessonUsecase) Purge(ctx context.Context) error {
	if err := u.cache.DeleteByPattern(ctx, cache.BuildPattern(lessonKeyPrefix+":")); err != nil {
		return fmt.Errorf("purge lessons: %w", err)
	}
	return nil
}

// Catalog returns every module in id order.
func (u *LessonUsecase) Catalog() []models.Module {
	return curriculum.Modules()
}

// Load returns the lesson for id. Unknown ids are a not-found error. A failed fetch
// yields the fallback document (Fallback=true) rather than an error, and is not cached.
func (u *LessonUsecase) Load(ctx context.Context, id int) (models.Lesson, error) {
	start := time.Now()
	defer func() { u.metrics.RecordLatency("lesson_load", time.Since(start).Seconds()) }()

	mod, ok := curriculum.Lookup(id)
	if !ok {
		return models.Lesson{}, xhttp.NotFoundErrorf("module %d not found", id).WithField("id")
	}

	key := cache.GenerateKey(lessonKeyPrefix, id)
	var cached models.Lesson
	err := u.cache.Get(ctx, key, &cached)
	if err == nil {
		u.metrics.RecordLessonLoad(u.source.Name(), loadHit)
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		u.log.Warn("lesson cache get failed", applogger.String("key", key), applogger.Error(err))
	}

	result := loadFetched
	raw, err := u.source.Fetch(ctx, mod.File)
	if err != nil {
		u.log.Error("lesson fetch failed",
			applogger.Int("module", id),
			applogger.String("file", mod.File),
			applogger.String("source", u.source.Name()),
			applogger.Error(err),
		)
		u.metrics.RecordError("lesson_fetch")
		raw = []byte(curriculum.FallbackMarkdown)
		result = loadFallback
	}

	lesson, err := u.build(mod, raw)
	if err != nil {
		u.metrics.RecordError("lesson_render")
		return models.Lesson{}, xhttp.InternalError("failed to render lesson").WithError(err)
	}
	lesson.Fallback = result == loadFallback
	u.metrics.RecordLessonLoad(u.source.Name(), result)

	if !lesson.Fallback {
		if err := u.cache.Set(ctx, key, lesson, u.ttl); err != nil {
			u.log.Warn("lesson cache set failed", applogger.String("key", key), applogger.Error(err))
		}
	}
	return lesson, nil
}

func (u *LessonUsecase) build(mod models.Module, raw []byte) (models.Lesson, error) {
	doc := string(raw)
	html, err := u.renderer.Render(raw)
	if err != nil {
		return models.Lesson{}, err
	}

	script, guide := curriculum.Split(doc)
	scriptHTML, err := u.renderer.Render([]byte(script))
	if err != nil {
		return models.Lesson{}, err
	}
	guideHTML := ""
	if guide != "" {
		if guideHTML, err = u.renderer.Render([]byte(guide)); err != nil {
			return models.Lesson{}, err
		}
	}

	prev, next := curriculum.Neighbours(mod.ID)
	return models.Lesson{
		Module:   mod,
		Markdown: doc,
		HTML:     html,
		Script:   scriptHTML,
		Guide:    guideHTML,
		Prev:     prev,
		Next:     next,
	}, nil
}

// Fallback renders the fallback document for an id outside the catalog.
func (u *LessonUsecase) Fallback(id int) (models.Lesson, error) {
	html, err := u.renderer.Render([]byte(curriculum.FallbackMarkdown))
	if err != nil {
		return models.Lesson{}, err
	}
	return models.Lesson{
		Module:   models.Module{ID: id, Title: "Module not found"},
		Markdown: curriculum.FallbackMarkdown,
		HTML:     html,
		Script:   html,
		Fallback: true,
	}, nil
}

// SelectView picks the HTML for a view. A guide view of a lesson without a guide shows the full document.
func SelectView(l models.Lesson, v domrepo.LessonView) string {
	switch v {
	case domrepo.ViewScript:
		return l.Script
	case domrepo.ViewGuide:
		if l.Guide != "" {
			return l.Guide
		}
	}
	return l.HTML
}
