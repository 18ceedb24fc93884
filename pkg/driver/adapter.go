package driver

import (
	"github.com/playwright-community/playwright-go"
)

// pwContext adapts a Playwright browser context to the BrowsingContext
// interface.
type pwContext struct {
	ctx playwright.BrowserContext
}

func (c *pwContext) NewPage() (Page, error) {
	page, err := c.ctx.NewPage()
	if err != nil {
		return nil, err
	}
	return &pwPage{page: page}, nil
}

func (c *pwContext) Close() error {
	return c.ctx.Close()
}

// pwPage adapts a Playwright page to the Page interface, narrowing the engine
// surface to the operations the harness actually uses.
type pwPage struct {
	page playwright.Page
}

func (p *pwPage) Goto(url string) error {
	_, err := p.page.Goto(url)
	return err
}

func (p *pwPage) Click(selector string) error {
	return p.page.Click(selector)
}

func (p *pwPage) Fill(selector, value string) error {
	return p.page.Fill(selector, value)
}

func (p *pwPage) Title() (string, error) {
	return p.page.Title()
}

func (p *pwPage) URL() string {
	return p.page.URL()
}

func (p *pwPage) Content() (string, error) {
	return p.page.Content()
}

func (p *pwPage) SetDefaultTimeout(ms float64) {
	p.page.SetDefaultTimeout(ms)
}

func (p *pwPage) Close() error {
	return p.page.Close()
}
