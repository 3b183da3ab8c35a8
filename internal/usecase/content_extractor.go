package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/user/article-backup/internal/entity"
	"github.com/user/article-backup/internal/repository"
	"github.com/user/article-backup/pkg/utils"
)

// ContentExtractor reads the editable content of one post.
type ContentExtractor interface {
	Extract(ctx context.Context, ref entity.PostRef) entity.ExtractionResult
}

type contentExtractor struct {
	browser   repository.BrowserRepository
	selectors Selectors
	logger    *zap.Logger
}

func NewContentExtractor(browser repository.BrowserRepository, selectors Selectors, logger *zap.Logger) ContentExtractor {
	return &contentExtractor{
		browser:   browser,
		selectors: selectors,
		logger:    logger,
	}
}

// Extract visits the post, follows its edit link and reads body, title and
// tags. The returned record has no sequence number.
func (e *contentExtractor) Extract(ctx context.Context, ref entity.PostRef) entity.ExtractionResult {
	record, err := e.extract(ctx, ref)
	if err != nil {
		return entity.ExtractionResult{Ref: ref, Status: classify(err), Err: err}
	}
	return entity.ExtractionResult{Ref: ref, Status: entity.ExtractionSuccess, Record: record}
}

func (e *contentExtractor) extract(ctx context.Context, ref entity.PostRef) (*entity.PostRecord, error) {
	if err := e.browser.Navigate(ctx, ref.Permalink); err != nil {
		return nil, fmt.Errorf("failed to open post: %w", err)
	}
	if err := e.browser.WaitVisible(ctx, "body"); err != nil {
		return nil, fmt.Errorf("post page did not render: %w", err)
	}
	// The post header renders client-side; only the viewer's own posts have an edit link.
	if err := e.browser.WaitVisible(ctx, e.selectors.EditLink); err != nil {
		if errors.Is(err, repository.ErrTimeout) {
			return nil, fmt.Errorf("%w: edit link %s", repository.ErrElementNotFound, e.selectors.EditLink)
		}
		return nil, fmt.Errorf("failed to wait for edit link: %w", err)
	}

	href, err := e.browser.Attribute(ctx, e.selectors.EditLink, "href")
	if err != nil {
		return nil, fmt.Errorf("failed to read edit link: %w", err)
	}
	editURL, err := utils.ResolveAgainst(ref.Permalink, href)
	if err != nil {
		return nil, fmt.Errorf("invalid edit link %q: %w", href, err)
	}
	e.logger.Debug("edit link found", zap.String("url", ref.Permalink), zap.String("edit_url", editURL))

	if err := e.browser.Navigate(ctx, editURL); err != nil {
		return nil, fmt.Errorf("failed to open edit page: %w", err)
	}
	if err := e.browser.WaitVisible(ctx, e.selectors.EditorBody); err != nil {
		return nil, fmt.Errorf("editor did not render: %w", err)
	}

	text, err := e.browser.Value(ctx, e.selectors.EditorBody)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	title, err := e.browser.Value(ctx, e.selectors.EditorTitle)
	if err != nil {
		return nil, fmt.Errorf("failed to read title: %w", err)
	}
	tags, err := e.browser.Value(ctx, e.selectors.EditorTags)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	return &entity.PostRecord{
		Title: title,
		URL:   ref.Permalink,
		Tags:  tags,
		Text:  text,
	}, nil
}

func classify(err error) entity.ExtractionStatus {
	switch {
	case err == nil:
		return entity.ExtractionSuccess
	case errors.Is(err, repository.ErrElementNotFound):
		return entity.ExtractionNotFound
	case errors.Is(err, repository.ErrTimeout):
		return entity.ExtractionTimeout
	default:
		return entity.ExtractionFailed
	}
}
