package jobs

import (
	"context"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/SaiNageswarS/spec-core/schema"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultResultsTTL = 24 * time.Hour

// Tracker persists job lifecycle updates. A nil collection degrades every
// operation to a no-op so the engine runs fine without a database.
type Tracker struct {
	collection odm.OdmCollectionInterface[JobModel]
	ttl        time.Duration
}

func NewTracker(collection odm.OdmCollectionInterface[JobModel], ttl time.Duration) *Tracker {
	if ttl <= 0 {
		ttl = defaultResultsTTL
	}
	return &Tracker{collection: collection, ttl: ttl}
}

// Create registers a new job in processing state and returns its ID.
func (t *Tracker) Create(ctx context.Context, subjectName string) (string, error) {
	jobID := uuid.NewString()
	if t.collection == nil {
		return jobID, nil
	}

	now := time.Now()
	job := JobModel{
		ID:          jobID,
		SubjectName: subjectName,
		Status:      JobProcessing,
		Step:        "Job accepted",
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   now.Add(t.ttl),
	}

	if _, err := async.Await(t.collection.Save(ctx, job)); err != nil {
		logger.Error("Failed to create job", zap.Error(err))
		return "", err
	}
	return jobID, nil
}

// UpdateStatus advances a job. Progress never moves backwards.
func (t *Tracker) UpdateStatus(ctx context.Context, jobID string, jobStatus JobStatus, progress int, step, errDetail string) error {
	if t.collection == nil {
		return nil
	}

	job, err := async.Await(t.collection.FindOneByID(ctx, jobID))
	if err != nil {
		logger.Error("Failed to load job", zap.String("jobId", jobID), zap.Error(err))
		return err
	}

	job.Status = jobStatus
	job.Progress = clampProgress(job.Progress, progress)
	job.Step = step
	job.Error = errDetail
	job.UpdatedAt = time.Now()

	if _, err := async.Await(t.collection.Save(ctx, *job)); err != nil {
		logger.Error("Failed to update job", zap.String("jobId", jobID), zap.Error(err))
		return err
	}
	return nil
}

// GetStatus returns the stored job.
func (t *Tracker) GetStatus(ctx context.Context, jobID string) (*JobModel, error) {
	if t.collection == nil {
		return nil, status.Error(codes.FailedPrecondition, "job store not configured")
	}

	job, err := async.Await(t.collection.FindOneByID(ctx, jobID))
	if err != nil {
		return nil, status.Errorf(codes.NotFound, "job %s not found", jobID)
	}
	return job, nil
}

// StoreResults writes the final consensus payload and marks the job
// completed. The results TTL restarts from completion time.
func (t *Tracker) StoreResults(ctx context.Context, jobID string, st *schema.WorkflowState) error {
	if t.collection == nil {
		return nil
	}

	job, err := async.Await(t.collection.FindOneByID(ctx, jobID))
	if err != nil {
		logger.Error("Failed to load job", zap.String("jobId", jobID), zap.Error(err))
		return err
	}

	text, table := st.Consensus()
	now := time.Now()
	job.Status = JobCompleted
	job.Progress = 100
	job.Step = "Analysis complete"
	job.Error = ""
	job.ConsensusText = text
	job.ConsensusTable = toResultRows(table)
	job.RunLog = st.Log()
	job.UpdatedAt = now
	job.ExpiresAt = now.Add(t.ttl)

	if _, err := async.Await(t.collection.Save(ctx, *job)); err != nil {
		logger.Error("Failed to store results", zap.String("jobId", jobID), zap.Error(err))
		return err
	}
	return nil
}

// Cleanup tombstones a job so the TTL monitor removes it promptly.
func (t *Tracker) Cleanup(ctx context.Context, jobID string) error {
	if t.collection == nil {
		return nil
	}

	exists, err := async.Await(t.collection.Exists(ctx, jobID))
	if err != nil || !exists {
		return err
	}

	job, err := async.Await(t.collection.FindOneByID(ctx, jobID))
	if err != nil {
		return err
	}

	now := time.Now()
	job.ExpiresAt = now
	job.UpdatedAt = now

	if _, err := async.Await(t.collection.Save(ctx, *job)); err != nil {
		logger.Error("Failed to clean up job", zap.String("jobId", jobID), zap.Error(err))
		return err
	}
	return nil
}

func clampProgress(current, next int) int {
	if next < current {
		return current
	}
	if next > 100 {
		return 100
	}
	return next
}
