package consensus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/SaiNageswarS/spec-core/llm"
	"github.com/SaiNageswarS/spec-core/prompts"
	"github.com/SaiNageswarS/spec-core/schema"
	"go.uber.org/zap"
)

// Builder runs the layered consensus build: generate, validate, correct at
// most once, then the deterministic safety net.
type Builder struct {
	client llm.LLMClient
}

func NewBuilder(client llm.LLMClient) *Builder {
	return &Builder{client: client}
}

// Outcome carries the final consensus plus the audit trail of how it was
// reached.
type Outcome struct {
	Text  string
	Table []schema.SpecRecord
	Notes []string
}

// Build produces the consensus table from completed extractions and the
// reference catalog. An error is returned only when the initial generation
// fails; validation and correction problems degrade to the best table
// available.
func (b *Builder) Build(ctx context.Context, subjectName string, results map[schema.SourceKey]*schema.ExtractionResult, refSpecs []schema.ReferenceSpec) (*Outcome, error) {
	start := time.Now()
	notes := []string{"Starting triangulation"}

	refData := FormatReferenceSpecs(refSpecs)
	srcData := FormatSourceResults(results)

	candidate, err := async.Await(prompts.Triangulate(ctx, b.client, prompts.TriangulateData{
		SubjectName:   subjectName,
		ReferenceData: refData,
		SourceData:    srcData,
	}))
	if err != nil {
		logger.Error("Triangulation failed", zap.Error(err))
		return nil, fmt.Errorf("triangulation failed: %w", err)
	}
	notes = append(notes, "Consensus draft generated")

	verdict := b.validate(ctx, subjectName, candidate, refData, srcData, &notes)

	finalText := candidate
	if !verdict.Pass {
		finalText = b.correct(ctx, subjectName, candidate, verdict, refData, srcData, &notes)
	}

	table, netNotes := EnforceSafetyNet(ParseSpecTable(finalText, PresenceShape))
	notes = append(notes, netNotes...)
	notes = append(notes, fmt.Sprintf("Triangulation completed in %.2fs", time.Since(start).Seconds()))

	return &Outcome{Text: finalText, Table: table, Notes: notes}, nil
}

// validate audits the candidate table. A transport failure counts as a failed
// validation so the correction layer still gets a chance to run.
func (b *Builder) validate(ctx context.Context, subjectName, candidate, refData, srcData string, notes *[]string) Verdict {
	response, err := async.Await(prompts.ValidateTriangulation(ctx, b.client, prompts.ValidateData{
		SubjectName:   subjectName,
		Candidate:     candidate,
		ReferenceData: refData,
		SourceData:    srcData,
	}))
	if err != nil {
		logger.Error("Validation call failed", zap.Error(err))
		*notes = append(*notes, fmt.Sprintf("Validation call failed, treating as failed validation: %v", err))
		return Verdict{Pass: false, Issues: []string{fmt.Sprintf("validation unavailable: %v", err)}}
	}

	verdict := ParseValidationVerdict(response)
	if verdict.Pass {
		*notes = append(*notes, "Validation passed")
	} else {
		*notes = append(*notes, fmt.Sprintf("Validation found %d issues", len(verdict.Issues)))
		for _, issue := range verdict.Issues {
			*notes = append(*notes, "Issue: "+issue)
		}
	}
	return verdict
}

// correct runs the single correction attempt. On failure the first draft is
// kept rather than losing the run.
func (b *Builder) correct(ctx context.Context, subjectName, candidate string, verdict Verdict, refData, srcData string, notes *[]string) string {
	issues := strings.Join(linq.Map(verdict.Issues, func(issue string) string {
		return "- " + issue
	}), "\n")

	corrected, err := async.Await(prompts.CorrectTriangulation(ctx, b.client, prompts.CorrectData{
		SubjectName:   subjectName,
		FirstAttempt:  candidate,
		Issues:        issues,
		ReferenceData: refData,
		SourceData:    srcData,
	}))
	if err != nil {
		logger.Error("Correction failed, keeping first draft", zap.Error(err))
		*notes = append(*notes, "Correction call failed, keeping first draft")
		return candidate
	}

	*notes = append(*notes, "Correction applied")
	return corrected
}
