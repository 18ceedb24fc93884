// Package pages holds the page objects shipped with the harness and the
// registry that lists them.
//
// The registry is an explicit listing: a new page object becomes resolvable
// by adding its constructor here (or by building a custom registry in the
// test suite). There is no runtime scanning.
package pages

import (
	"github.com/entrhq/pagekit/pkg/session"
)

// DefaultRegistry lists every page object in this package. Suites with their
// own page objects typically start from a fresh session.NewRegistry and
// register both.
func DefaultRegistry() *session.Registry {
	r := session.NewRegistry()
	session.Register(r, NewHomePage)
	session.Register(r, NewLoginPage)
	session.Register(r, NewSearchPage)
	return r
}
