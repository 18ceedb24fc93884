package pages

import (
	"fmt"

	"github.com/entrhq/pagekit/pkg/pom"
)

const (
	searchInputSelector  = `input[name="q"]`
	searchSubmitSelector = `button[type="submit"]`
)

// SearchPage drives a search form and reads the result list.
type SearchPage struct {
	ui *pom.Interactor
}

func NewSearchPage(ui *pom.Interactor) *SearchPage {
	return &SearchPage{ui: ui}
}

// Search submits a query.
func (p *SearchPage) Search(query string) error {
	if err := p.ui.Fill(searchInputSelector, query); err != nil {
		return err
	}
	return p.ui.Click(searchSubmitSelector)
}

// ResultLinks returns the links on the current result page.
func (p *SearchPage) ResultLinks() ([]pom.Link, error) {
	content, err := p.ui.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}
	doc, err := pom.ParseDocument(content)
	if err != nil {
		return nil, err
	}
	return doc.Links, nil
}
