package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"habit_tracker/internal/cli"
	"habit_tracker/internal/client"
	"habit_tracker/internal/logger"
	"habit_tracker/internal/tracker"
)

var CLI struct {
	Version    kong.VersionFlag
	Server     string `help:"API base URL." env:"HABITCAL_SERVER" default:"http://localhost:8080/api"`
	TokenFile  string `help:"Where the session token is kept." env:"HABITCAL_TOKEN_FILE" type:"path" default:"~/.config/habitcal/token"`
	TokenStore string `help:"Token storage backend." env:"HABITCAL_TOKEN_STORE" enum:"file,keyring" default:"file"`
	LogFile    string `help:"Log file path." env:"HABITCAL_LOG_FILE" type:"path" default:"~/.config/habitcal/habitcal.log"`
	LogLevel   string `help:"Log level." enum:"debug,info,warn,error" default:"info"`
	Strategy   string `help:"How toggles converge with the server." enum:"refetch,optimistic" default:"refetch"`

	Login  cli.LoginCmd  `cmd:"" help:"Log in and save the session token."`
	Signup cli.SignupCmd `cmd:"" help:"Create an account and save the session token."`
	Logout cli.LogoutCmd `cmd:"" help:"Forget the saved session token."`
	Whoami cli.WhoamiCmd `cmd:"" help:"Show the logged-in user."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive calendar." default:"1"`
	Month  cli.MonthCmd  `cmd:"" help:"Print a month of completions."`
	Toggle cli.ToggleCmd `cmd:"" help:"Toggle a habit on a day."`
	Habits struct {
		List   cli.HabitListCmd   `cmd:"" help:"List habits." default:"1"`
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a habit."`
		Color  cli.HabitColorCmd  `cmd:"" help:"Change a habit's color."`
		Delete cli.HabitDeleteCmd `cmd:"" help:"Delete a habit and its completions."`
	} `cmd:"" help:"Manage habits."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitcal"),
		kong.Description("Habit calendar client"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	log := logger.Init(logger.Options{Level: CLI.LogLevel, File: CLI.LogFile, Quiet: true})
	defer log.Sync()

	strategy, err := tracker.ParseStrategy(CLI.Strategy)
	ctx.FatalIfErrorf(err)

	tokens, err := cli.NewTokenStore(CLI.TokenStore, CLI.TokenFile)
	ctx.FatalIfErrorf(err)
	token, err := tokens.Load()
	ctx.FatalIfErrorf(err)

	appCtx := &cli.Context{
		Client:   client.New(CLI.Server, client.WithToken(token)),
		Log:      log,
		Out:      os.Stdout,
		Tokens:   tokens,
		Strategy: strategy,
	}

	if err := ctx.Run(appCtx); err != nil {
		log.Errorw("command_failed", "command", ctx.Command(), "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
