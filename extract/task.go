package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/spec-core/consensus"
	"github.com/SaiNageswarS/spec-core/llm"
	"github.com/SaiNageswarS/spec-core/prompts"
	"github.com/SaiNageswarS/spec-core/schema"
	"go.uber.org/zap"
)

// Task runs one source through chunking, per-chunk extraction and the
// optional merge call.
type Task struct {
	client  llm.LLMClient
	chunker *Chunker
}

func NewTask(client llm.LLMClient) *Task {
	return &Task{client: client, chunker: NewChunker()}
}

// Run executes one source extraction end to end. It never returns nil; every
// failure mode maps to a terminal result status.
func (t *Task) Run(ctx context.Context, key schema.SourceKey, subjectName, raw string) *schema.ExtractionResult {
	start := time.Now()
	datasetType := key.DatasetType()

	chunks, rowCount, excludeReason := t.chunker.Chunk(key, raw)
	if excludeReason != "" {
		logger.Info("Excluding source",
			zap.String("source", string(key)), zap.String("reason", excludeReason))
		return &schema.ExtractionResult{
			SourceType:        datasetType,
			Status:            schema.StatusExcluded,
			RowCount:          rowCount,
			ExclusionReason:   excludeReason,
			ProcessingSeconds: time.Since(start).Seconds(),
		}
	}

	outputs := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		chunkInfo := ""
		if len(chunks) > 1 {
			chunkInfo = fmt.Sprintf(" (chunk %d/%d)", i+1, len(chunks))
		}

		out, err := async.Await(prompts.ExtractSpecs(ctx, t.client, prompts.ExtractSpecsData{
			SubjectName: subjectName,
			DatasetType: datasetType,
			ChunkInfo:   chunkInfo,
			Dataset:     chunk,
		}))
		if err != nil {
			return t.failed(key, datasetType, rowCount, len(chunks), start,
				fmt.Sprintf("extraction failed on chunk %d/%d: %v", i+1, len(chunks), err))
		}
		outputs = append(outputs, out)
	}

	finalText := outputs[0]
	if len(outputs) > 1 {
		merged, err := async.Await(prompts.MergeChunkResults(ctx, t.client, prompts.MergeChunksData{
			SubjectName:  subjectName,
			DatasetType:  datasetType,
			ChunkCount:   len(outputs),
			ChunkResults: joinChunkOutputs(outputs),
		}))
		if err != nil {
			return t.failed(key, datasetType, rowCount, len(chunks), start,
				fmt.Sprintf("chunk merge failed: %v", err))
		}
		finalText = merged
	}

	parsed := consensus.ParseSpecTable(finalText, consensus.RankedShape)
	logger.Info("Source extraction completed",
		zap.String("source", string(key)),
		zap.Int("rows", rowCount),
		zap.Int("chunks", len(chunks)),
		zap.Int("extractedSpecs", len(parsed)))

	return &schema.ExtractionResult{
		SourceType:        datasetType,
		Status:            schema.StatusCompleted,
		RawText:           finalText,
		RowCount:          rowCount,
		ChunkCount:        len(chunks),
		ProcessingSeconds: time.Since(start).Seconds(),
	}
}

func (t *Task) failed(key schema.SourceKey, datasetType string, rowCount, chunkCount int, start time.Time, detail string) *schema.ExtractionResult {
	logger.Error("Source extraction failed",
		zap.String("source", string(key)), zap.String("detail", detail))
	return &schema.ExtractionResult{
		SourceType:        datasetType,
		Status:            schema.StatusFailed,
		RowCount:          rowCount,
		ChunkCount:        chunkCount,
		ErrorDetail:       detail,
		ProcessingSeconds: time.Since(start).Seconds(),
	}
}

func joinChunkOutputs(outputs []string) string {
	var sb strings.Builder
	for i, out := range outputs {
		fmt.Fprintf(&sb, "### Chunk %d\n%s\n\n", i+1, out)
	}
	return strings.TrimRight(sb.String(), "\n")
}
