package prompts

import (
	"context"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/spec-core/llm"
	"go.uber.org/zap"
)

type ExtractSpecsData struct {
	SubjectName string
	DatasetType string
	ChunkInfo   string
	Dataset     string
}

// ExtractSpecs asks the model for a ranked specification table from one
// dataset chunk.
func ExtractSpecs(ctx context.Context, client llm.LLMClient, data ExtractSpecsData) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt("templates/extract_specs_system.md", data)
		if err != nil {
			logger.Error("Failed to load system prompt", zap.Error(err))
			return "", err
		}

		userPrompt, err := loadPrompt("templates/extract_specs_user.md", data)
		if err != nil {
			return "", err
		}

		return runInference(ctx, client, systemPrompt, userPrompt,
			llm.WithTemperature(0.1),
			llm.WithMaxTokens(4000))
	})
}

type MergeChunksData struct {
	SubjectName  string
	DatasetType  string
	ChunkCount   int
	ChunkResults string
}

// MergeChunkResults consolidates per-chunk tables of one source into a single
// ranked table.
func MergeChunkResults(ctx context.Context, client llm.LLMClient, data MergeChunksData) <-chan async.Result[string] {
	return async.Go(func() (string, error) {
		systemPrompt, err := loadPrompt("templates/extract_specs_system.md", data)
		if err != nil {
			logger.Error("Failed to load system prompt", zap.Error(err))
			return "", err
		}

		userPrompt, err := loadPrompt("templates/merge_chunks_user.md", data)
		if err != nil {
			return "", err
		}

		return runInference(ctx, client, systemPrompt, userPrompt,
			llm.WithTemperature(0.1),
			llm.WithMaxTokens(4000))
	})
}
