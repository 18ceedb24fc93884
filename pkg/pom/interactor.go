// Package pom provides the shared support every page object is built on.
//
// Page objects hold an Interactor rather than inheriting page access: the
// session registry constructs each page object with an Interactor bound to the
// session's single page and a logger named after the page-object type. All
// page objects in one session share the same page by reference; none of them
// may close or replace it.
package pom

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/entrhq/pagekit/pkg/driver"
)

// Interactor wraps the session's page with logged interaction primitives.
type Interactor struct {
	page   driver.Page
	logger *zap.Logger
}

// NewInteractor binds the primitives to a page and a type-scoped logger.
func NewInteractor(page driver.Page, logger *zap.Logger) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{page: page, logger: logger}
}

// Click clicks the element matching selector. The engine's failure (element
// not found, timeout) is returned unchanged apart from wrapping; no retry or
// suppression happens at this layer.
func (i *Interactor) Click(selector string) error {
	i.logger.Info("click",
		zap.String("selector", selector),
		zap.String("url", i.page.URL()))

	if err := i.page.Click(selector); err != nil {
		return fmt.Errorf("click %q: %w", selector, err)
	}
	return nil
}

// Fill fills the input matching selector with value. The value itself is not
// logged; it may be a credential.
func (i *Interactor) Fill(selector, value string) error {
	i.logger.Info("fill",
		zap.String("selector", selector),
		zap.String("url", i.page.URL()))

	if err := i.page.Fill(selector, value); err != nil {
		return fmt.Errorf("fill %q: %w", selector, err)
	}
	return nil
}

// Title returns the current document title.
func (i *Interactor) Title() (string, error) {
	return i.page.Title()
}

// URL returns the page's current location.
func (i *Interactor) URL() string {
	return i.page.URL()
}

// Content returns the page's full HTML, for the html helpers in this package.
func (i *Interactor) Content() (string, error) {
	return i.page.Content()
}

// Logger returns the page object's scoped logger, for leaf methods that want
// to log domain-level steps.
func (i *Interactor) Logger() *zap.Logger {
	return i.logger
}
