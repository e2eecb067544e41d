// Package bootstrap wires the analysis pipeline from AppConfig for the api
// and processor binaries.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"press-lens/config"
	"press-lens/db"
	"press-lens/extractor"
	"press-lens/logger"
	"press-lens/quota"
	"press-lens/renderer"
	"press-lens/repositories"
	"press-lens/services"
)

// NewExtractor 는 llm 설정으로 primary/fallback provider 와 호출 한도를 묶는다.
// fallback provider 가 primary 와 같으면 클라이언트를 공유한다.
func NewExtractor(ctx context.Context, cfg config.AppConfig) (*extractor.Extractor, error) {
	llm := cfg.LLM
	primary, err := extractor.NewProvider(ctx, llm.Provider, llm.APIKey(llm.Provider))
	if err != nil {
		return nil, fmt.Errorf("failed to create llm provider: %w", err)
	}

	ecfg := extractor.Config{
		Primary:           extractor.Target{Provider: primary, Model: llm.Model},
		MaxRetries:        llm.Retries(),
		TimeoutPerAttempt: llm.TimeoutPerAttempt(),
		Temperature:       llm.Temp(),
		MaxOutputTokens:   llm.MaxOutputTokens,
	}

	if llm.FallbackModel != "" {
		fallback := primary
		if !sameProvider(llm.FallbackProvider, llm.Provider) {
			fallback, err = extractor.NewProvider(ctx, llm.FallbackProvider, llm.APIKey(llm.FallbackProvider))
			if err != nil {
				return nil, fmt.Errorf("failed to create fallback llm provider: %w", err)
			}
		}
		ecfg.Fallback = &extractor.Target{Provider: fallback, Model: llm.FallbackModel}
	}

	limiter := quota.NewAnalysisQuotaLimiter(cfg.AnalysisQuota)

	logger.Log.Infof("llm configured provider=%s model=%s fallback=%s/%s attempts=%d timeout=%s",
		llm.Provider, llm.Model, llm.FallbackProvider, llm.FallbackModel, 1+llm.Retries(), llm.TimeoutPerAttempt())
	return extractor.New(ecfg, limiter), nil
}

// NewAnalysisService 는 분석 서비스를 만든다. db 가 초기화되어 있으면 시도 로그를 ai_logs 에 저장한다.
func NewAnalysisService(ctx context.Context, cfg config.AppConfig, fetcher *renderer.Fetcher) (*services.AnalysisService, error) {
	ex, err := NewExtractor(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var logs services.AILogStore
	if database := db.Database(); database != nil {
		logs = repositories.NewAILogRepository(database)
	}

	var images services.ImageFetcher
	if fetcher != nil {
		images = fetcher
	}

	return services.NewAnalysisService(ex, nil, images, logs, services.AnalysisOptions{
		AttachImages:   cfg.Importer.FetchImages,
		DeadlineMargin: cfg.LLM.DeadlineMargin(),
	}), nil
}

// NewFetcher 는 importer 설정으로 페이지/이미지 fetcher 를 만든다.
func NewFetcher(cfg config.AppConfig) *renderer.Fetcher {
	return renderer.NewFetcher(cfg.Importer.RenderJS, cfg.Importer.ChromePath, cfg.Importer.FetchTimeout())
}

func isGemini(provider string) bool {
	switch strings.ToLower(provider) {
	case "google", "gemini":
		return true
	}
	return false
}

func sameProvider(a, b string) bool {
	if isGemini(a) && isGemini(b) {
		return true
	}
	return strings.EqualFold(a, b)
}
