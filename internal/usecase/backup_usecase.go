package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/article-backup/internal/entity"
	"github.com/user/article-backup/internal/repository"
	"github.com/user/article-backup/pkg/metrics"
)

// FailurePolicy decides what a run does when one post cannot be extracted.
type FailurePolicy string

const (
	FailurePolicySkip  FailurePolicy = "skip"
	FailurePolicyAbort FailurePolicy = "abort"
)

func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch p := FailurePolicy(s); p {
	case FailurePolicySkip, FailurePolicyAbort:
		return p, nil
	default:
		return "", fmt.Errorf("unknown failure policy %q", s)
	}
}

// BackupRunner performs one complete backup of an account.
type BackupRunner interface {
	Run(ctx context.Context, creds entity.Credentials, account string) (*entity.RunSummary, error)
}

type backupUseCase struct {
	authenticator Authenticator
	lister        ListingFetcher
	extractor     ContentExtractor
	writers       repository.BackupWriterFactory
	archive       repository.PostArchiveRepository
	statusRepo    repository.RunStatusRepository
	policy        FailurePolicy
	logger        *zap.Logger
	now           func() time.Time
}

// NewBackupUseCase wires the run loop. archive may be nil. now defaults to time.Now.
func NewBackupUseCase(
	authenticator Authenticator,
	lister ListingFetcher,
	extractor ContentExtractor,
	writers repository.BackupWriterFactory,
	archive repository.PostArchiveRepository,
	statusRepo repository.RunStatusRepository,
	policy FailurePolicy,
	logger *zap.Logger,
	now func() time.Time,
) BackupRunner {
	if now == nil {
		now = time.Now
	}
	return &backupUseCase{
		authenticator: authenticator,
		lister:        lister,
		extractor:     extractor,
		writers:       writers,
		archive:       archive,
		statusRepo:    statusRepo,
		policy:        policy,
		logger:        logger,
		now:           now,
	}
}

// Run logs in, lists the account's posts and writes each one to the backup as
// soon as it is extracted. The summary is returned even when err != nil.
func (uc *backupUseCase) Run(ctx context.Context, creds entity.Credentials, account string) (*entity.RunSummary, error) {
	summary := &entity.RunSummary{
		RunStatus: entity.RunStatus{
			RunID:     uuid.NewString(),
			Account:   account,
			State:     entity.RunRunning,
			StartedAt: uc.now(),
		},
	}
	logger := uc.logger.With(zap.String("run_id", summary.RunID))
	logger.Info("backup started", zap.String("account", account))
	uc.saveStatus(ctx, logger, summary)
	uc.archiveRun(ctx, logger, summary)

	runErr := uc.run(ctx, logger, creds, account, summary)

	finishedAt := uc.now()
	summary.FinishedAt = &finishedAt
	if runErr != nil {
		summary.State = entity.RunFailed
		summary.Error = runErr.Error()
		logger.Error("backup aborted", zap.Error(runErr))
	} else {
		summary.State = entity.RunCompleted
		logger.Info("backup finish",
			zap.String("path", summary.OutputPath),
			zap.Int("written", summary.Written),
			zap.Int("failed", summary.Failed),
		)
	}
	metrics.RunsTotal.WithLabelValues(string(summary.State)).Inc()

	// The caller's context may already be cancelled; the final state must still be recorded.
	finalCtx := context.WithoutCancel(ctx)
	uc.saveStatus(finalCtx, logger, summary)
	uc.archiveRun(finalCtx, logger, summary)

	return summary, runErr
}

func (uc *backupUseCase) run(ctx context.Context, logger *zap.Logger, creds entity.Credentials, account string, summary *entity.RunSummary) (err error) {
	if err := uc.authenticator.Login(ctx, creds); err != nil {
		return err
	}

	refs, err := uc.lister.FetchPostRefs(ctx, account)
	if err != nil {
		return err
	}
	summary.Listed = len(refs)

	writer, err := uc.writers.Create(ctx, uc.now())
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	summary.OutputPath = writer.Path()
	defer func() {
		if closeErr := writer.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close backup file: %w", closeErr)
		}
		if err == nil {
			logger.Info("backup saved", zap.String("path", summary.OutputPath))
		}
	}()
	uc.saveStatus(ctx, logger, summary)

	total := len(refs)
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}
		no := SequenceNumber(total, i)

		start := time.Now()
		result := uc.extractor.Extract(ctx, ref)
		metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
		metrics.PostsProcessedTotal.WithLabelValues(string(result.Status)).Inc()

		if result.Err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			summary.Failed++
			summary.Failures = append(summary.Failures, entity.PostFailure{
				SequenceNumber: no,
				Permalink:      ref.Permalink,
				Status:         result.Status,
				Reason:         result.Err.Error(),
			})
			logger.Warn("failed to extract post",
				zap.String("no", no),
				zap.String("url", ref.Permalink),
				zap.String("status", string(result.Status)),
				zap.Error(result.Err),
			)
			if uc.policy == FailurePolicyAbort {
				return fmt.Errorf("post %s (%s): %w", no, ref.Permalink, result.Err)
			}
			uc.saveStatus(ctx, logger, summary)
			continue
		}

		record := result.Record.WithSequence(no)
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write post %s: %w", no, err)
		}
		summary.Written++
		uc.archivePost(ctx, logger, summary.RunID, record)
		uc.saveStatus(ctx, logger, summary)

		logger.Info("post data is appended", zap.String("no", no), zap.String("url", ref.Permalink))
	}

	return nil
}

func (uc *backupUseCase) saveStatus(ctx context.Context, logger *zap.Logger, summary *entity.RunSummary) {
	status := summary.RunStatus
	if err := uc.statusRepo.Save(ctx, &status); err != nil {
		logger.Warn("failed to save run status", zap.Error(err))
	}
}

func (uc *backupUseCase) archiveRun(ctx context.Context, logger *zap.Logger, summary *entity.RunSummary) {
	if uc.archive == nil {
		return
	}
	status := summary.RunStatus
	if err := uc.archive.SaveRun(ctx, &status); err != nil {
		logger.Warn("failed to archive run", zap.Error(err))
	}
}

// archivePost never fails the run; the backup file is the primary copy.
func (uc *backupUseCase) archivePost(ctx context.Context, logger *zap.Logger, runID string, record *entity.PostRecord) {
	if uc.archive == nil {
		return
	}
	if err := uc.archive.Save(ctx, runID, record); err != nil {
		logger.Warn("failed to archive post", zap.String("url", record.URL), zap.Error(err))
	}
}
