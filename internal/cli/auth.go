package cli

import (
	"context"
	"fmt"

	"habit_tracker/internal/client"
)

type LoginCmd struct {
	Username string `arg:"" help:"Account name."`
	Password string `help:"Account password." env:"HABITCAL_PASSWORD" required:""`
}

func (c *LoginCmd) Run(ctx *Context) error {
	s, err := ctx.Client.Login(context.Background(), c.Username, c.Password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return saveSession(ctx, s, "Logged in")
}

type SignupCmd struct {
	Username string `arg:"" help:"Account name."`
	Password string `help:"Account password." env:"HABITCAL_PASSWORD" required:""`
}

func (c *SignupCmd) Run(ctx *Context) error {
	s, err := ctx.Client.Register(context.Background(), c.Username, c.Password)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	return saveSession(ctx, s, "Account created")
}

func saveSession(ctx *Context, s client.Session, verb string) error {
	if err := ctx.Tokens.Save(s.Token); err != nil {
		return err
	}
	if ctx.Log != nil {
		ctx.Log.Infow("session_saved", "username", s.Username, "store", ctx.Tokens.String())
	}
	ctx.printf("%s as %s\n", verb, s.Username)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Tokens.Remove(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	ctx.Client.SetToken("")
	ctx.printf("Logged out\n")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	p, err := ctx.Client.CurrentUser()
	if err != nil {
		return err
	}
	ctx.printf("%s (id %d)\n", p.Username, p.UserID)
	return nil
}
