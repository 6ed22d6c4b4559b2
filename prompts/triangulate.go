package prompts

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/spec-core/llm"
	"go.uber.org/zap"
)

type TriangulateData struct {
	SubjectName   string
	ReferenceData string
	SourceData    string
}

// Triangulate builds the first consensus table from the reference catalog and
// every completed source extraction.
func Triangulate(ctx context.Context, client llm.LLMClient, data TriangulateData) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt("templates/triangulate_system.md", data)
		if err != nil {
			logger.Error("Failed to load system prompt", zap.Error(err))
			return "", err
		}

		userPrompt, err := loadPrompt("templates/triangulate_user.md", data)
		if err != nil {
			return "", err
		}

		return runInference(ctx, client, systemPrompt, userPrompt,
			llm.WithTemperature(0.1),
			llm.WithMaxTokens(8000))
	})
}

type ValidateData struct {
	SubjectName   string
	Candidate     string
	ReferenceData string
	SourceData    string
}

// ValidateTriangulation asks the model to audit a candidate consensus table.
// The response follows the VALIDATION_RESULT format parsed by the consensus
// package.
func ValidateTriangulation(ctx context.Context, client llm.LLMClient, data ValidateData) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt("templates/triangulate_system.md", data)
		if err != nil {
			logger.Error("Failed to load system prompt", zap.Error(err))
			return "", err
		}

		userPrompt, err := loadPrompt("templates/validate_user.md", data)
		if err != nil {
			return "", err
		}

		return runInference(ctx, client, systemPrompt, userPrompt,
			llm.WithTemperature(0.0),
			llm.WithMaxTokens(4000))
	})
}

type CorrectData struct {
	SubjectName   string
	FirstAttempt  string
	Issues        string
	ReferenceData string
	SourceData    string
}

// CorrectTriangulation reworks a consensus table that failed validation. The
// caller invokes this at most once per run.
func CorrectTriangulation(ctx context.Context, client llm.LLMClient, data CorrectData) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt("templates/triangulate_system.md", data)
		if err != nil {
			logger.Error("Failed to load system prompt", zap.Error(err))
			return "", err
		}

		userPrompt, err := loadPrompt("templates/correct_user.md", data)
		if err != nil {
			return "", err
		}

		return runInference(ctx, client, systemPrompt, userPrompt,
			llm.WithTemperature(0.1),
			llm.WithMaxTokens(8000))
	})
}
