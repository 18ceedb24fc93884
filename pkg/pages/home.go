package pages

import (
	"fmt"

	"github.com/entrhq/pagekit/pkg/pom"
)

// HomePage is the page object for the suite's base location.
type HomePage struct {
	ui *pom.Interactor
}

// NewHomePage constructs the page object. Called by the session registry.
func NewHomePage(ui *pom.Interactor) *HomePage {
	return &HomePage{ui: ui}
}

// GetTitle returns the document title reported by the engine.
func (p *HomePage) GetTitle() (string, error) {
	return p.ui.Title()
}

// Document parses the current page HTML into its title, text and links.
func (p *HomePage) Document() (*pom.Document, error) {
	content, err := p.ui.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}
	return pom.ParseDocument(content)
}

// URL returns the page's current location.
func (p *HomePage) URL() string {
	return p.ui.URL()
}
