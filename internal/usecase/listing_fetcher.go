package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/user/article-backup/internal/entity"
	"github.com/user/article-backup/internal/repository"
	"github.com/user/article-backup/pkg/metrics"
	"github.com/user/article-backup/pkg/utils"
)

// ListingFetcher enumerates the posts shown on an account's profile page.
type ListingFetcher interface {
	FetchPostRefs(ctx context.Context, account string) ([]entity.PostRef, error)
}

type listingFetcher struct {
	browser   repository.BrowserRepository
	baseURL   string
	selectors Selectors
	logger    *zap.Logger
}

func NewListingFetcher(browser repository.BrowserRepository, baseURL string, selectors Selectors, logger *zap.Logger) ListingFetcher {
	return &listingFetcher{
		browser:   browser,
		baseURL:   baseURL,
		selectors: selectors,
		logger:    logger,
	}
}

// FetchPostRefs returns the permalinks in profile order, newest first. Only
// posts rendered on first load are returned.
func (f *listingFetcher) FetchPostRefs(ctx context.Context, account string) ([]entity.PostRef, error) {
	profileURL, err := utils.JoinPath(f.baseURL, account)
	if err != nil {
		return nil, fmt.Errorf("invalid account %q: %w", account, err)
	}

	if err := f.browser.Navigate(ctx, profileURL); err != nil {
		return nil, fmt.Errorf("failed to open profile page: %w", err)
	}
	f.logger.Info("move to profile page", zap.String("url", profileURL))

	// An account without posts never renders a post link, so a timeout here
	// just means an empty listing.
	if err := f.browser.WaitVisible(ctx, f.selectors.PostLink); err != nil {
		if !errors.Is(err, repository.ErrTimeout) {
			return nil, fmt.Errorf("failed waiting for post list: %w", err)
		}
		f.logger.Warn("no posts rendered on profile page", zap.String("url", profileURL))
	}

	html, err := f.browser.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile page: %w", err)
	}

	refs, err := ParsePostRefs(html, profileURL, f.selectors.PostLink)
	if err != nil {
		return nil, err
	}

	metrics.PostsListed.Set(float64(len(refs)))
	f.logger.Info("posts listed", zap.String("account", account), zap.Int("count", len(refs)))
	return refs, nil
}

// ParsePostRefs extracts the href of every element matching selector in
// document order, resolved against pageURL. Anchors without an href are skipped.
func ParsePostRefs(html, pageURL, selector string) ([]entity.PostRef, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile page: %w", err)
	}

	refs := []entity.PostRef{}
	var resolveErr error
	doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}
		permalink, err := utils.ResolveAgainst(pageURL, href)
		if err != nil {
			resolveErr = fmt.Errorf("invalid post link %q: %w", href, err)
			return false
		}
		refs = append(refs, entity.PostRef{Permalink: permalink})
		return true
	})
	if resolveErr != nil {
		return nil, resolveErr
	}
	return refs, nil
}
