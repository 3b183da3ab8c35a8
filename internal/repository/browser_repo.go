package repository

import "context"

// BrowserRepository is the browser capability set the backup drives. All
// selectors are CSS selectors. Implementations wait for conditions instead of
// sleeping and report ErrTimeout when a wait elapses.
type BrowserRepository interface {
	// Navigate loads url in the current tab.
	Navigate(ctx context.Context, url string) error
	// WaitVisible blocks until selector is visible.
	WaitVisible(ctx context.Context, selector string) error
	// WaitNotPresent blocks until selector no longer matches anything.
	WaitNotPresent(ctx context.Context, selector string) error
	// SendKeys types value into the element matching selector.
	SendKeys(ctx context.Context, selector, value string) error
	// Click clicks the element matching selector.
	Click(ctx context.Context, selector string) error
	// Attribute reads an attribute of the first element matching selector.
	// It returns ErrElementNotFound without waiting when nothing matches.
	Attribute(ctx context.Context, selector, name string) (string, error)
	// Value reads the value property of a form field.
	// It returns ErrElementNotFound without waiting when nothing matches.
	Value(ctx context.Context, selector string) (string, error)
	// HTML returns the serialized document of the current page.
	HTML(ctx context.Context) (string, error)
}
