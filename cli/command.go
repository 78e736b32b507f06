package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/tripclient/service"
)

func (c *Login) Execute(_ []string) error {
	ctx := context.Background()
	client, err := c.app.Client(ctx)
	if err != nil {
		return err
	}
	if _, err = client.Auth.Login(ctx, &service.LoginRequest{Email: c.Email, Password: c.Password}); err != nil {
		return err
	}
	user, err := client.Auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.app.out, "signed in as %v\n", user.Username)
	return err
}

func (c *Logout) Execute(_ []string) error {
	ctx := context.Background()
	client, err := c.app.Client(ctx)
	if err != nil {
		return err
	}
	if err = client.Auth.Logout(ctx); err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.app.out, "signed out")
	return err
}

func (c *Register) Execute(_ []string) error {
	ctx := context.Background()
	client, err := c.app.Client(ctx)
	if err != nil {
		return err
	}
	user, err := client.Auth.Register(ctx, &service.RegisterRequest{Email: c.Email, Password: c.Password, Username: c.Username, Gender: c.Gender})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.app.out, "registered %v, check %v for the verification code\n", user.Username, user.Email)
	return err
}

func (c *Verify) Execute(_ []string) error {
	ctx := context.Background()
	client, err := c.app.Client(ctx)
	if err != nil {
		return err
	}
	var message string
	switch {
	case c.Resend:
		message, err = client.Auth.ResendOTP(ctx, c.Email)
	case c.OTP == "":
		return errors.New("either --otp or --resend is required")
	default:
		message, err = client.Auth.VerifyOTP(ctx, &service.VerifyOTPRequest{Email: c.Email, OTP: c.OTP})
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.app.out, message)
	return err
}

func (c *Me) Execute(_ []string) error {
	ctx := context.Background()
	client, err := c.app.Client(ctx)
	if err != nil {
		return err
	}
	user, err := client.Account.Me(ctx)
	if err != nil {
		return err
	}
	return c.app.print(user)
}

func (p *Page) query() *service.Query {
	return &service.Query{PageNumber: p.PageNumber, PageSize: p.PageSize, SearchTerm: p.Search}
}

func (c *Groups) Execute(_ []string) error {
	ctx := context.Background()
	client, err := c.app.Client(ctx)
	if err != nil {
		return err
	}
	query := c.query()
	if c.SortBy != "" {
		query.SortBy = c.SortBy
		ascending := !c.Desc
		query.Ascending = &ascending
	}
	page, err := client.Groups.MyGroups(ctx, query)
	if err != nil {
		return err
	}
	return c.app.print(page)
}

func (c *Group) Execute(_ []string) error {
	ctx := context.Background()
	client, err := c.app.Client(ctx)
	if err != nil {
		return err
	}
	detail, err := client.Groups.Detail(ctx, c.Args.ID)
	if err != nil {
		return err
	}
	return c.app.print(detail)
}

func (c *Friends) Execute(_ []string) error {
	ctx := context.Background()
	client, err := c.app.Client(ctx)
	if err != nil {
		return err
	}
	page, err := client.Friendships.Friends(ctx, c.query())
	if err != nil {
		return err
	}
	return c.app.print(page)
}

func (c *Requests) Execute(_ []string) error {
	ctx := context.Background()
	client, err := c.app.Client(ctx)
	if err != nil {
		return err
	}
	kind := service.RequestsReceived
	if c.Sent {
		kind = service.RequestsSent
	}
	page, err := client.Friendships.Requests(ctx, kind, c.query())
	if err != nil {
		return err
	}
	return c.app.print(page)
}

func (c *Status) Execute(_ []string) error {
	ctx := context.Background()
	client, err := c.app.Client(ctx)
	if err != nil {
		return err
	}
	return c.app.print(map[string]interface{}{
		"env":           c.app.config.Env,
		"baseURL":       client.Gateway.BaseURL(),
		"store":         c.app.config.Store.Driver,
		"authenticated": client.Auth.IsAuthenticated(ctx),
	})
}
