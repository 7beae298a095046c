// Command polly-cli exercises the Polly API from the terminal: register,
// login, list polls, cast votes, and show results.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pollyapi/polly-go/pkg/client"
	"github.com/pollyapi/polly-go/pkg/format"
	"github.com/pollyapi/polly-go/pkg/logging"
)

func main() {
	// .env is optional; deployed environments set variables directly.
	_ = godotenv.Load()

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("POLLY_LOG_LEVEL", "info")),
		Pretty: true,
		Output: os.Stderr,
	})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := client.DefaultConfig()
	if baseURL := os.Getenv("POLLY_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	c, err := client.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var runErr error
	switch os.Args[1] {
	case "register":
		runErr = runRegister(ctx, c, os.Args[2:])
	case "login":
		runErr = runLogin(ctx, c, os.Args[2:])
	case "polls":
		runErr = runPolls(ctx, c, os.Args[2:])
	case "vote":
		runErr = runVote(ctx, c, os.Args[2:])
	case "results":
		runErr = runResults(ctx, c, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: polly-cli <command> [flags]

Commands:
  register  -u <username> -p <password>
  login     -u <username> -p <password>
  polls     [-skip N] [-limit N] [-all] [-page-size N]
  vote      -poll <id> -option <id> [-token <jwt>]
  results   -poll <id>

Environment:
  POLLY_BASE_URL   API base URL (default http://localhost:8000)
  POLLY_TOKEN      Bearer token fallback for vote
  POLLY_LOG_LEVEL  Log level (default info)`)
}

type credentialArgs struct {
	Username string
	Password string
}

func parseCredentialArgs(name string, args []string) (credentialArgs, error) {
	var parsed credentialArgs

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&parsed.Username, "u", "", "Username")
	fs.StringVar(&parsed.Password, "p", "", "Password")

	if err := fs.Parse(args); err != nil {
		return credentialArgs{}, err
	}
	if parsed.Username == "" {
		return credentialArgs{}, errors.New("username required (use -u)")
	}
	if parsed.Password == "" {
		return credentialArgs{}, errors.New("password required (use -p)")
	}

	return parsed, nil
}

type pollsArgs struct {
	Skip     int
	Limit    int
	All      bool
	PageSize int
}

func parsePollsArgs(args []string) (pollsArgs, error) {
	var parsed pollsArgs

	fs := flag.NewFlagSet("polls", flag.ContinueOnError)
	fs.IntVar(&parsed.Skip, "skip", 0, "Items to skip")
	fs.IntVar(&parsed.Limit, "limit", 10, "Page size for a single page")
	fs.BoolVar(&parsed.All, "all", false, "Fetch every page")
	fs.IntVar(&parsed.PageSize, "page-size", 10, "Page size used with -all")

	if err := fs.Parse(args); err != nil {
		return pollsArgs{}, err
	}
	if parsed.Limit <= 0 || parsed.PageSize <= 0 {
		return pollsArgs{}, errors.New("limit and page-size must be positive")
	}

	return parsed, nil
}

type voteArgs struct {
	PollID   int
	OptionID int
	Token    string
}

func parseVoteArgs(args []string) (voteArgs, error) {
	var parsed voteArgs

	fs := flag.NewFlagSet("vote", flag.ContinueOnError)
	fs.IntVar(&parsed.PollID, "poll", 0, "Poll ID")
	fs.IntVar(&parsed.OptionID, "option", 0, "Option ID")
	fs.StringVar(&parsed.Token, "token", "", "Bearer token (prefer POLLY_TOKEN env)")

	if err := fs.Parse(args); err != nil {
		return voteArgs{}, err
	}
	if parsed.PollID <= 0 {
		return voteArgs{}, errors.New("poll ID required (use -poll)")
	}
	if parsed.OptionID <= 0 {
		return voteArgs{}, errors.New("option ID required (use -option)")
	}

	// Fall back to environment variable
	if parsed.Token == "" {
		parsed.Token = os.Getenv("POLLY_TOKEN")
	}
	if parsed.Token == "" {
		return voteArgs{}, errors.New("token required (use -token or POLLY_TOKEN env)")
	}

	return parsed, nil
}

func parsePollID(name string, args []string) (int, error) {
	var pollID int

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.IntVar(&pollID, "poll", 0, "Poll ID")

	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	if pollID <= 0 {
		return 0, errors.New("poll ID required (use -poll)")
	}

	return pollID, nil
}

func runRegister(ctx context.Context, c *client.Client, args []string) error {
	parsed, err := parseCredentialArgs("register", args)
	if err != nil {
		return err
	}

	user, err := c.Register(ctx, client.Credentials{
		Username: parsed.Username,
		Password: parsed.Password,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Registered user %q (ID %d)\n", user.Username, user.ID)
	return nil
}

func runLogin(ctx context.Context, c *client.Client, args []string) error {
	parsed, err := parseCredentialArgs("login", args)
	if err != nil {
		return err
	}

	token, err := c.Login(ctx, client.Credentials{
		Username: parsed.Username,
		Password: parsed.Password,
	})
	if err != nil {
		return err
	}

	// Token goes to stdout so it can be captured: POLLY_TOKEN=$(polly-cli login ...)
	fmt.Println(token.AccessToken)
	return nil
}

func runPolls(ctx context.Context, c *client.Client, args []string) error {
	parsed, err := parsePollsArgs(args)
	if err != nil {
		return err
	}

	var polls []client.Poll
	if parsed.All {
		polls, err = c.ListAllPolls(ctx, parsed.PageSize)
	} else {
		polls, err = c.ListPolls(ctx, parsed.Skip, parsed.Limit)
	}
	if err != nil {
		return err
	}

	format.RenderPollsSummary(os.Stdout, polls)
	return nil
}

func runVote(ctx context.Context, c *client.Client, args []string) error {
	parsed, err := parseVoteArgs(args)
	if err != nil {
		return err
	}

	vote, err := c.CastVote(ctx, parsed.Token, parsed.PollID, parsed.OptionID)
	if err != nil {
		return err
	}

	fmt.Printf("Vote recorded (ID %d) for option %d\n", vote.ID, vote.OptionID)
	return nil
}

func runResults(ctx context.Context, c *client.Client, args []string) error {
	pollID, err := parsePollID("results", args)
	if err != nil {
		return err
	}

	results, err := c.PollResults(ctx, pollID)
	if err != nil {
		return err
	}

	format.RenderResults(os.Stdout, *results)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
