package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zjrosen/printcal/internal/config"
	"github.com/zjrosen/printcal/internal/orders"
)

// Exit codes of the orders command.
const (
	exitOK      = 0
	exitAuth    = 1
	exitNetwork = 2
	exitWrite   = 3
	// Bad flag combinations exit like a usage error.
	exitUsage = 2
)

const msgNoOrders = "No orders were returned from the manage page."

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}

type ordersOptions struct {
	username string
	password string
	noPrompt bool
	format   string
	output   string
}

var ordersOpts ordersOptions

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Log in and print the current order list",
	Long: `Log in to the YBS portal and print the orders on the manage page.

Credentials come from --username/--password, then YBS_USERNAME/YBS_PASSWORD,
then an interactive prompt unless --no-prompt is given.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, closeTracing := newTracing(cfg.Tracing)
		defer closeTracing()

		src, err := orders.NewHTTPSource(cfg.Orders.BaseURL, cfg.Orders.Timeout,
			orders.WithSourceTracer(provider.Tracer()))
		if err != nil {
			return err
		}
		opts := ordersOpts
		if opts.username == "" {
			opts.username = firstNonEmpty(os.Getenv("YBS_USERNAME"), cfg.Orders.Username)
		}
		if opts.password == "" {
			opts.password = os.Getenv("YBS_PASSWORD")
		}
		p := &prompter{in: bufio.NewReader(os.Stdin), out: os.Stderr, fd: int(os.Stdin.Fd())}
		return runOrders(cmd.Context(), src, opts, p, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	f := ordersCmd.Flags()
	f.StringVarP(&ordersOpts.username, "username", "u", "",
		"username for the YBS portal (or YBS_USERNAME)")
	f.StringVarP(&ordersOpts.password, "password", "p", "",
		"password for the YBS portal (or YBS_PASSWORD)")
	f.BoolVar(&ordersOpts.noPrompt, "no-prompt", false,
		"fail instead of prompting for missing credentials")
	f.StringVar(&ordersOpts.format, "format", string(orders.FormatTableName),
		"output format: table, csv or json")
	f.StringVar(&ordersOpts.output, "output", "",
		"write the orders to `FILE` instead of standard output")

	rootCmd.AddCommand(ordersCmd)
}

// credentialPrompter asks for whatever credentials are missing.
type credentialPrompter interface {
	Username() (string, error)
	Password() (string, error)
}

type prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func (p *prompter) Username() (string, error) {
	_, _ = fmt.Fprint(p.out, "Username: ")
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading username: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *prompter) Password() (string, error) {
	_, _ = fmt.Fprint(p.out, "Password: ")
	if !term.IsTerminal(p.fd) {
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	b, err := term.ReadPassword(p.fd)
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

func runOrders(ctx context.Context, src orders.Source, opts ordersOptions, p credentialPrompter, stdout, stderr io.Writer) error {
	failf := func(code int, format string, a ...any) error {
		msg := fmt.Sprintf(format, a...)
		_, _ = color.New(color.FgRed).Fprintln(stderr, msg)
		return &ExitError{Code: code, Err: errors.New(msg)}
	}

	format := orders.Format(strings.ToLower(opts.format))
	if _, err := orders.Render(format, nil); err != nil {
		return failf(exitUsage, "Unknown format %q (want table, csv or json).", opts.format)
	}

	if opts.noPrompt && (opts.username == "" || opts.password == "") {
		return failf(exitUsage, "--no-prompt requires both --username and --password, or YBS_USERNAME and YBS_PASSWORD.")
	}
	var err error
	if opts.username == "" {
		if opts.username, err = p.Username(); err != nil {
			return failf(exitAuth, "%v", err)
		}
	}
	if opts.password == "" {
		if opts.password, err = p.Password(); err != nil {
			return failf(exitAuth, "%v", err)
		}
	}
	if opts.username == "" || opts.password == "" {
		return failf(exitAuth, orders.MsgMissingCredentials)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := src.Login(ctx, opts.username, opts.password); err != nil {
		if errors.Is(err, orders.ErrNetwork) {
			return failf(exitNetwork, "Network error: %s", orders.UserMessage(err))
		}
		return failf(exitAuth, "Login failed: %s", orders.UserMessage(err))
	}

	records, err := src.FetchOrders(ctx)
	if err != nil {
		if errors.Is(err, orders.ErrNetwork) {
			return failf(exitNetwork, "Network error while fetching orders: %s", orders.UserMessage(err))
		}
		return failf(exitAuth, "Unable to retrieve orders: %s", orders.UserMessage(err))
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(stdout, msgNoOrders)
		return nil
	}

	payload, err := orders.Render(format, records)
	if err != nil {
		return failf(exitWrite, "%v", err)
	}
	if !strings.HasSuffix(payload, "\n") {
		payload += "\n"
	}

	if opts.output == "" {
		_, _ = io.WriteString(stdout, payload)
		return nil
	}
	if err := os.WriteFile(config.ExpandPath(opts.output), []byte(payload), 0o644); err != nil {
		return failf(exitWrite, "Failed to write output to %q: %v", opts.output, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
