package cli

import "time"

type loginCommand struct {
	action
	Username string `short:"u" long:"username" env:"ADMIN_USERNAME" description:"admin username"`
	Password string `long:"password" env:"ADMIN_PASSWORD" description:"admin password"`
}

func (c *loginCommand) Execute([]string) error {
	session, err := c.session()
	if err != nil {
		return err
	}
	if err := session.Login(c.ctx(), c.Username, c.Password); err != nil {
		return err
	}
	return c.printf("logged in as %s\n", c.Username)
}

type logoutCommand struct {
	action
}

func (c *logoutCommand) Execute([]string) error {
	session, err := c.session()
	if err != nil {
		return err
	}
	if err := session.Logout(c.ctx()); err != nil {
		return err
	}
	return c.printf("logged out\n")
}

type statusCommand struct {
	action
}

func (c *statusCommand) Execute([]string) error {
	session, err := c.session()
	if err != nil {
		return err
	}
	status, err := session.Status(c.ctx())
	if err != nil {
		return err
	}
	if !status.Authenticated {
		return c.printf("authenticated: no\n")
	}

	now := c.r.Now()
	if err := c.printf("authenticated: yes\nuser: %s\n", status.UserID); err != nil {
		return err
	}
	if err := c.printExpiry("access token", status.AccessExpiresAt, status.AccessExpired(now)); err != nil {
		return err
	}
	return c.printExpiry("refresh token", status.RefreshExpiresAt, status.RefreshExpired(now))
}

func (c *statusCommand) printExpiry(name string, at time.Time, expired bool) error {
	switch {
	case at.IsZero():
		return c.printf("%s: no expiry\n", name)
	case expired:
		return c.printf("%s: expired at %s\n", name, at.Format(time.RFC3339))
	default:
		return c.printf("%s: valid until %s\n", name, at.Format(time.RFC3339))
	}
}
