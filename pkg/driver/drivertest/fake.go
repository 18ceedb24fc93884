// Package drivertest provides in-memory fakes for the driver interfaces.
//
// The fakes record every call so tests can assert ordering (timeout applied
// before navigation, page closed before context) without launching a real
// browser. Error fields let tests inject failures at any acquisition or
// teardown step.
package drivertest

import (
	"sync"

	"github.com/entrhq/pagekit/pkg/config"
	"github.com/entrhq/pagekit/pkg/driver"
)

var (
	_ driver.Page            = (*Page)(nil)
	_ driver.BrowsingContext = (*Context)(nil)
	_ driver.BrowserHandle   = (*Handle)(nil)
)

// Page is an in-memory driver.Page.
type Page struct {
	mu sync.Mutex

	// Calls records every operation in order, e.g. "goto https://example.com",
	// "click #submit".
	Calls []string

	// Injected failures.
	GotoErr  error
	ClickErr error
	FillErr  error
	TitleErr error
	CloseErr error

	// Canned results.
	TitleValue   string
	ContentValue string

	CurrentURL     string
	DefaultTimeout float64
	Closed         bool
}

func (p *Page) record(call string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls = append(p.Calls, call)
}

// CallLog returns a copy of the recorded calls.
func (p *Page) CallLog() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.Calls...)
}

func (p *Page) Goto(url string) error {
	p.record("goto " + url)
	if p.GotoErr != nil {
		return p.GotoErr
	}
	p.CurrentURL = url
	return nil
}

func (p *Page) Click(selector string) error {
	p.record("click " + selector)
	return p.ClickErr
}

func (p *Page) Fill(selector, value string) error {
	p.record("fill " + selector + "=" + value)
	return p.FillErr
}

func (p *Page) Title() (string, error) {
	p.record("title")
	if p.TitleErr != nil {
		return "", p.TitleErr
	}
	return p.TitleValue, nil
}

func (p *Page) URL() string {
	return p.CurrentURL
}

func (p *Page) Content() (string, error) {
	p.record("content")
	return p.ContentValue, nil
}

func (p *Page) SetDefaultTimeout(ms float64) {
	p.record("set_default_timeout")
	p.DefaultTimeout = ms
}

func (p *Page) Close() error {
	p.record("close")
	p.Closed = true
	return p.CloseErr
}

// Context is an in-memory driver.BrowsingContext serving one fake page.
type Context struct {
	PageVal    *Page
	NewPageErr error
	CloseErr   error
	Closed     bool
}

func (c *Context) NewPage() (driver.Page, error) {
	if c.NewPageErr != nil {
		return nil, c.NewPageErr
	}
	if c.PageVal == nil {
		c.PageVal = &Page{}
	}
	return c.PageVal, nil
}

func (c *Context) Close() error {
	c.Closed = true
	return c.CloseErr
}

// Handle is an in-memory driver.BrowserHandle serving one fake context.
type Handle struct {
	ContextVal    *Context
	NewContextErr error
	StopErr       error
	Stopped       bool

	// Viewport records the value passed to NewContext.
	Viewport config.Viewport

	// OnStop, if set, runs on every Stop call. Used by lifecycle tests to
	// record cross-handle ordering.
	OnStop func()
}

func (h *Handle) NewContext(viewport config.Viewport) (driver.BrowsingContext, error) {
	h.Viewport = viewport
	if h.NewContextErr != nil {
		return nil, h.NewContextErr
	}
	if h.ContextVal == nil {
		h.ContextVal = &Context{}
	}
	return h.ContextVal, nil
}

func (h *Handle) Stop() error {
	h.Stopped = true
	if h.OnStop != nil {
		h.OnStop()
	}
	return h.StopErr
}

// Page returns the fake page reached through this handle, creating the
// intermediate fakes if needed.
func (h *Handle) Page() *Page {
	if h.ContextVal == nil {
		h.ContextVal = &Context{}
	}
	if h.ContextVal.PageVal == nil {
		h.ContextVal.PageVal = &Page{}
	}
	return h.ContextVal.PageVal
}
