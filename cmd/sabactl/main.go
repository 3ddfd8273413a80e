// Command sabactl is a terminal client for the sabadesa API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sabadesa/sabadesa-be/internal/client"
	"github.com/sabadesa/sabadesa-be/internal/export"
	"github.com/sabadesa/sabadesa-be/internal/prioritization"
	"github.com/sabadesa/sabadesa-be/internal/wilayah"
)

type cliConfig struct {
	APIURL      string `env:"SABADESA_API_URL" envDefault:"http://localhost:8080/api"`
	SessionFile string `env:"SABADESA_SESSION_FILE"`
	Locale      string `env:"SABADESA_LOCALE" envDefault:"id"`
}

const usage = `usage: sabactl [-api URL] [-session FILE] [-locale id|en] <command> [flags]

commands:
  login -u USER -p PASS   sign in and store the session
  logout                  revoke and forget the session
  me                      show the signed-in user
  import FILE             upload a vote spreadsheet (.xlsx or .csv)
  imports                 list recent imports
  suggest [-status S]     list prioritized kecamatan
  export [flags]          download attendees (-format -dapil -kecamatan -desa -o)
  regions [flags]         show region options (-dapil -kecamatan)
`

// terminal reports session notices through the logger and prints a login
// hint in place of a redirect.
type terminal struct {
	noticeOnce   sync.Once
	redirectOnce sync.Once
	noticed      chan struct{}
	redirected   chan struct{}
}

func newTerminal() *terminal {
	return &terminal{noticed: make(chan struct{}), redirected: make(chan struct{})}
}

func (t *terminal) Notify(key, message string) {
	log.Warn().Str("notice", key).Msg(message)
	t.noticeOnce.Do(func() { close(t.noticed) })
}

func (t *terminal) ToLogin() {
	t.redirectOnce.Do(func() {
		fmt.Fprintln(os.Stderr, "run `sabactl login` to sign in again")
		close(t.redirected)
	})
}

// wait lets a scheduled login hint print before the process exits.
func (t *terminal) wait() {
	select {
	case <-t.noticed:
	default:
		return
	}
	select {
	case <-t.redirected:
	case <-time.After(client.RedirectDelay + 100*time.Millisecond):
	}
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()

	cfg := cliConfig{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse environment")
	}
	if cfg.SessionFile == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.SessionFile = filepath.Join(dir, "sabactl", "session.json")
		} else {
			cfg.SessionFile = ".sabactl-session.json"
		}
	}

	fs := flag.NewFlagSet("sabactl", flag.ExitOnError)
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "API base URL")
	fs.StringVar(&cfg.SessionFile, "session", cfg.SessionFile, "session file")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "notice language")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	fs.Parse(os.Args[1:])

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(2)
	}

	term := newTerminal()
	c := client.New(cfg.APIURL, client.NewFileStore(cfg.SessionFile),
		client.WithNotifier(term),
		client.WithNavigator(term),
		client.WithLocale(cfg.Locale),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	err := run(ctx, c, args[0], args[1:], os.Stdout)
	term.wait()
	if err != nil {
		var dup *client.DuplicateNIKError
		if errors.As(err, &dup) {
			log.Error().Str("nik", dup.NIK).Int("events", len(dup.Activities)).Msg("Duplicate NIK")
			os.Exit(1)
		}
		log.Error().Err(err).Str("command", args[0]).Msg("Command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		user := fs.String("u", "", "username")
		pass := fs.String("p", "", "password")
		fs.Parse(args)
		u, err := c.Login(ctx, *user, *pass)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "signed in as %s (%s)\n", u.Username, u.Role)
		return nil

	case "logout":
		return c.Logout(ctx)

	case "me":
		u, err := c.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", u.Username, u.Name, u.Role)
		return nil

	case "import":
		if len(args) != 1 {
			return errors.New("import needs exactly one file")
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		il, err := c.ImportVotes(ctx, filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s, %d rows, %d errors\n", il.Filename, il.Status, il.RecordCount, il.ErrorCount)
		for _, e := range il.Errors {
			fmt.Fprintf(out, "  row %d: %s\n", e.Row, e.Message)
		}
		return nil

	case "imports":
		logs, err := c.Imports(ctx, 20)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "WHEN\tFILE\tSTATUS\tROWS\tERRORS")
		for _, il := range logs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", il.CreatedAt.Local().Format(time.DateTime), il.Filename, il.Status, il.RecordCount, il.ErrorCount)
		}
		return tw.Flush()

	case "suggest":
		fs := flag.NewFlagSet("suggest", flag.ExitOnError)
		raw := fs.String("status", "", "frequently_visited, needs_attention, needs_review or stable")
		fs.Parse(args)
		status, err := prioritization.ParseStatus(*raw)
		if err != nil {
			return err
		}
		list, err := c.Suggestions(ctx, status)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KECAMATAN\tDAPIL\tSCORE\tSTATUS\tREASON")
		for _, s := range list {
			fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\t%s\n", s.Kecamatan, s.Dapil, s.Score, s.Status.Label(), s.Reason)
		}
		return tw.Flush()

	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		rawFormat := fs.String("format", "csv", "csv, xlsx or pdf")
		dapil := fs.String("dapil", "", "dapil filter")
		kecamatan := fs.String("kecamatan", "", "kecamatan filter")
		desa := fs.String("desa", "", "desa filter")
		output := fs.String("o", "", "output file (default: server filename)")
		fs.Parse(args)
		format, err := export.ParseFormat(*rawFormat)
		if err != nil {
			return err
		}
		return exportAttendees(ctx, c, format, export.Filter{Dapil: *dapil, Kecamatan: *kecamatan, Desa: *desa}, *output, out)

	case "regions":
		fs := flag.NewFlagSet("regions", flag.ExitOnError)
		dapil := fs.String("dapil", "", "dapil")
		kecamatan := fs.String("kecamatan", "", "kecamatan")
		fs.Parse(args)
		opts := wilayah.Resolve(wilayah.Default(), wilayah.Selection{Dapil: *dapil, Kecamatan: *kecamatan})
		fmt.Fprintf(out, "dapil:     %s\n", orAll(opts.Selection.Dapil))
		fmt.Fprintf(out, "kecamatan: %s\n", orAll(opts.Selection.Kecamatan))
		if opts.Selection.Kecamatan == "" {
			fmt.Fprintf(out, "\nkecamatan options:\n  %s\n", strings.Join(opts.Kecamatan, "\n  "))
		} else {
			fmt.Fprintf(out, "\ndesa options:\n  %s\n", strings.Join(opts.Desa, "\n  "))
		}
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func exportAttendees(ctx context.Context, c *client.Client, format export.Format, filter export.Filter, output string, out io.Writer) error {
	tmp, err := os.CreateTemp(".", ".sabactl-export-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	name, err := c.ExportAttendees(ctx, format, filter, tmp)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if output == "" {
		output = name
	}
	if output == "" {
		output = export.Filename(filter, format, time.Now())
	}
	if err := os.Rename(tmp.Name(), output); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", output)
	return nil
}

func orAll(v string) string {
	if v == "" {
		return wilayah.All
	}
	return v
}
