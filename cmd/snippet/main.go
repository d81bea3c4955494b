// Command snippet renders a stored inference input as a readable transcript.
//
// It reads a JSON document with an optional system prompt and a list of
// messages from a file or stdin and prints the system section followed by
// every message with its content blocks.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	// Load SNIPPET_* defaults from a .env file when present
	_ "github.com/joho/godotenv/autoload"

	"github.com/go-openapi/swag"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/k0kubun/pp/v3"
	"github.com/phsym/zeroslog"
	"github.com/rs/zerolog"

	"github.com/casualjim/snippet/console"
	"github.com/casualjim/snippet/pkg/messages"
	"github.com/casualjim/snippet/pkg/slogx"
	"github.com/casualjim/snippet/render"
)

var (
	log    zerolog.Logger
	osExit = os.Exit
)

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	log = zerolog.New(output).With().Timestamp().Logger()
	setLogLevel(slog.LevelWarn)
}

func setLogLevel(level slog.Level) {
	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: level}),
	))
}

type config struct {
	in              string
	noColor         bool
	markdown        bool
	width           int
	showUnsupported bool
	downloadPrefix  string
	dump            bool
	schema          bool
	logLevel        slog.Level
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("snippet", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) (config, error) {
	var (
		cfg      config
		logLevel string
	)

	noColorDefault, _ := swag.ConvertBool(os.Getenv("SNIPPET_NO_COLOR"))
	levelDefault := os.Getenv("SNIPPET_LOG_LEVEL")
	if levelDefault == "" {
		levelDefault = slog.LevelWarn.String()
	}
	widthDefault := 80
	if w, err := strconv.Atoi(os.Getenv("SNIPPET_WIDTH")); err == nil && w > 0 {
		widthDefault = w
	}

	fs.StringVar(&cfg.in, "in", "", "path to the input JSON document, stdin when empty or -")
	fs.BoolVar(&cfg.noColor, "no-color", noColorDefault, "disable colored output")
	fs.BoolVar(&cfg.markdown, "markdown", false, "render text blocks as markdown")
	fs.IntVar(&cfg.width, "width", widthDefault, "terminal width for dividers and word wrapping")
	fs.BoolVar(&cfg.showUnsupported, "show-unsupported", false, "show a placeholder for content blocks of unknown type")
	fs.StringVar(&cfg.downloadPrefix, "download-prefix", render.DefaultDownloadPrefix, "prefix for suggested image download names")
	fs.BoolVar(&cfg.dump, "dump", false, "print the assembled transcript tree instead of rendering it")
	fs.BoolVar(&cfg.schema, "schema", false, "print the JSON schema of the input document and exit")
	fs.StringVar(&logLevel, "log-level", levelDefault, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 && cfg.in == "" {
		cfg.in = fs.Arg(0)
	}
	if err := cfg.logLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return cfg, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	return cfg, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			osExit(0)
			return
		}
		slog.Error("snippet failed", slogx.Error(err))
		osExit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := parseFlags(newFlagSet(), args)
	if err != nil {
		return err
	}
	setLogLevel(cfg.logLevel)
	logger := slog.Default().With(slogx.LoggerName("snippet"))

	if cfg.schema {
		b, err := json.MarshalIndent(messages.Schema(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal schema: %w", err)
		}
		_, err = fmt.Fprintf(stdout, "%s\n", b)
		return err
	}

	data, err := readInput(cfg.in, stdin)
	if err != nil {
		return err
	}
	in, err := messages.ParseInput(data)
	if err != nil {
		return err
	}
	logger.Debug("parsed input", slog.Int("messages", len(in.Messages)), slog.Bool("system", !in.System.IsZero()))

	assembler := render.NewAssembler(render.WithNormalizer(
		render.DownloadPrefix(cfg.downloadPrefix),
		render.ShowUnsupported(cfg.showUnsupported),
	))
	transcript := assembler.Assemble(in.System, in.Messages)

	if cfg.dump {
		printer := pp.New()
		printer.SetOutput(stdout)
		printer.SetColoringEnabled(!cfg.noColor)
		_, err := printer.Println(transcript)
		return err
	}

	if in.InferenceID != uuid.Nil {
		header := "Inference " + in.InferenceID.String()
		if !time.Time(in.Timestamp).IsZero() {
			header += " (" + in.Timestamp.String() + ")"
		}
		if _, err := fmt.Fprintf(stdout, "%s\n\n", header); err != nil {
			return err
		}
	}

	printer, err := console.New(stdout,
		console.NoColor(cfg.noColor),
		console.Markdown(cfg.markdown),
		console.Width(cfg.width),
	)
	if err != nil {
		return err
	}
	return printer.Print(transcript)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
