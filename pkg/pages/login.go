package pages

import (
	"github.com/entrhq/pagekit/pkg/pom"
)

// Selectors for the login form.
const (
	loginUsernameSelector = "#username"
	loginPasswordSelector = "#password"
	loginSubmitSelector   = `button[type="submit"]`
)

// LoginPage drives the login form.
type LoginPage struct {
	ui *pom.Interactor
}

func NewLoginPage(ui *pom.Interactor) *LoginPage {
	return &LoginPage{ui: ui}
}

// Login fills the credentials and submits the form. Engine failures (missing
// field, timeout) surface unchanged to the test body.
func (p *LoginPage) Login(username, password string) error {
	if err := p.ui.Fill(loginUsernameSelector, username); err != nil {
		return err
	}
	if err := p.ui.Fill(loginPasswordSelector, password); err != nil {
		return err
	}
	return p.ui.Click(loginSubmitSelector)
}
