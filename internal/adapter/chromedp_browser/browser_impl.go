package chromedp_browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/user/article-backup/internal/repository"
)

// Options configures the browser session.
type Options struct {
	Headless  bool
	ExecPath  string
	UserAgent string
	// Timeout bounds every single browser operation, including condition waits.
	Timeout time.Duration
	// NavInterval is the minimum spacing between two navigations.
	NavInterval time.Duration
}

// Session owns one browser and its single tab. It must be closed.
type Session struct {
	ctx           context.Context
	cancelAlloc   context.CancelFunc
	cancelBrowser context.CancelFunc
	timeout       time.Duration
	limiter       *rate.Limiter
	logger        *zap.Logger
}

var _ repository.BrowserRepository = (*Session)(nil)

// NewSession launches the browser. Cancelling parent kills it.
func NewSession(parent context.Context, opts Options, logger *zap.Logger) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Sugar().Debugf))

	// The first Run starts the browser; do it here so launch errors surface early.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	logger.Info("browser started", zap.Bool("headless", opts.Headless))

	return &Session{
		ctx:           browserCtx,
		cancelAlloc:   cancelAlloc,
		cancelBrowser: cancelBrowser,
		timeout:       opts.Timeout,
		limiter:       newLimiter(opts.NavInterval),
		logger:        logger,
	}, nil
}

func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Close shuts the browser down. It is safe to call more than once.
func (s *Session) Close() error {
	s.cancelBrowser()
	s.cancelAlloc()
	s.logger.Info("browser closed")
	return nil
}

// run executes actions under the session timeout. ctx only contributes
// cancellation; chromedp needs the browser context for everything else.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return mapError(err)
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", repository.ErrTimeout, err)
	default:
		return err
	}
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	s.logger.Debug("navigate", zap.String("url", url))

	err := s.run(ctx, chromedp.Navigate(url))
	if err != nil && !errors.Is(err, repository.ErrTimeout) && ctx.Err() == nil {
		return fmt.Errorf("%w: %s: %v", repository.ErrNavigationFailed, url, err)
	}
	return err
}

func (s *Session) WaitVisible(ctx context.Context, selector string) error {
	return s.run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

func (s *Session) WaitNotPresent(ctx context.Context, selector string) error {
	return s.run(ctx, chromedp.WaitNotPresent(selector, chromedp.ByQuery))
}

func (s *Session) SendKeys(ctx context.Context, selector, value string) error {
	if _, err := s.first(ctx, selector); err != nil {
		return err
	}
	return s.run(ctx, chromedp.SendKeys(selector, value, chromedp.ByQuery))
}

func (s *Session) Click(ctx context.Context, selector string) error {
	if _, err := s.first(ctx, selector); err != nil {
		return err
	}
	return s.run(ctx, chromedp.Click(selector, chromedp.ByQuery))
}

func (s *Session) Attribute(ctx context.Context, selector, name string) (string, error) {
	node, err := s.first(ctx, selector)
	if err != nil {
		return "", err
	}
	return node.AttributeValue(name), nil
}

func (s *Session) Value(ctx context.Context, selector string) (string, error) {
	node, err := s.first(ctx, selector)
	if err != nil {
		return "", err
	}
	var value string
	if err := s.run(ctx, chromedp.Value([]cdp.NodeID{node.NodeID}, &value, chromedp.ByNodeID)); err != nil {
		return "", err
	}
	return value, nil
}

func (s *Session) HTML(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

// first returns the first node matching selector without waiting for it.
func (s *Session) first(ctx context.Context, selector string) (*cdp.Node, error) {
	var nodes []*cdp.Node
	if err := s.run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrElementNotFound, selector)
	}
	return nodes[0], nil
}
