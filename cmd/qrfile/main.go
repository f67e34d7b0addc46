// Package main provides the qrfile command, which stores a small file in a QR
// code image and recovers it again.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/isseis/go-qrfile/internal/compression"
	"github.com/isseis/go-qrfile/internal/config"
	"github.com/isseis/go-qrfile/internal/logging"
	"github.com/isseis/go-qrfile/internal/pipeline"
	"github.com/isseis/go-qrfile/internal/terminal"
	"github.com/isseis/go-qrfile/internal/textcodec"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var (
	errModeRequired   = errors.New("one of -e/--encode or -d/--decode is required")
	errModeConflict   = errors.New("-e/--encode and -d/--decode are mutually exclusive")
	errInputRequired  = errors.New("-i/--input is required")
	errOutputRequired = errors.New("-o/--output is required")
	errUnexpectedArgs = errors.New("unexpected positional arguments")
	errColorConflict  = errors.New("-color and -no-color are mutually exclusive")
)

// Overridable for tests
var (
	detectCapabilities = terminal.DetectSystem
	environ            = os.Environ
	notifyContext      = signal.NotifyContext
	newEncoder         = func(profile pipeline.Profile, opts ...pipeline.Option) converter {
		return encodeConverter{pipeline.NewEncoder(profile, opts...)}
	}
	newDecoder = func(profile pipeline.Profile, opts ...pipeline.Option) converter {
		return decodeConverter{pipeline.NewDecoder(profile, opts...)}
	}
)

type mode int

const (
	modeEncode mode = iota + 1
	modeDecode
)

// report is the statistics block printed after a successful conversion
type report interface {
	Fprint(w io.Writer, colorize bool) error
}

// converter runs one conversion from input to output
type converter interface {
	Convert(ctx context.Context, input, output string) (report, error)
}

type encodeConverter struct{ *pipeline.Encoder }

func (c encodeConverter) Convert(ctx context.Context, input, output string) (report, error) {
	r, err := c.EncodeFile(ctx, input, output)
	if err != nil {
		return nil, err
	}
	return r, nil
}

type decodeConverter struct{ *pipeline.Decoder }

func (c decodeConverter) Convert(ctx context.Context, input, output string) (report, error) {
	r, err := c.DecodeFile(ctx, input, output)
	if err != nil {
		return nil, err
	}
	return r, nil
}

type cliConfig struct {
	mode     mode
	input    string
	output   string
	sources  config.Sources
	terminal terminal.Options
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cli, fs, err := parseArgs(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(fs, stdout)
			return exitOK
		}
		printUsage(fs, stderr)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	cli.sources.Environ = environ()
	cfg, err := config.Load(cli.sources)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, config.ErrInvalidConfig) {
			return exitUsage
		}
		return exitFailure
	}

	caps := detectCapabilities(cli.terminal)
	logger, err := setupLogger(cfg, caps, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	previous := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(previous)
	logger.Debug("Terminal capabilities",
		"interactive", caps.Interactive,
		"log_color", caps.LogColor,
		"report_color", caps.ReportColor,
		"explicit_color", caps.ExplicitColor)

	conv, err := buildConverter(cli.mode, cfg, logger)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	ctx, stop := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := conv.Convert(ctx, cli.input, cli.output)
	if err != nil {
		logFailure(logger, err)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	if err := rep.Fprint(stdout, caps.ReportColor); err != nil {
		logger.Warn("Failed to write report", "error", err)
	}
	return exitOK
}

func parseArgs(args []string) (*cliConfig, *flag.FlagSet, error) {
	options := struct {
		encode, decode        bool
		input, output         string
		profile               string
		compression, encoding string
		moduleSize, border    int
		renderLevel           string
		configFile, envFile   string
		logLevel              string
		interactive, quiet    bool
		color, noColor        bool
		verify                bool
	}{}

	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.BoolVar(&options.encode, "encode", false, "Encode the input file into a QR code image")
	fs.BoolVar(&options.encode, "e", false, "Short alias for -encode")
	fs.BoolVar(&options.decode, "decode", false, "Decode a QR code image back into a file")
	fs.BoolVar(&options.decode, "d", false, "Short alias for -decode")
	fs.StringVar(&options.input, "input", "", "Input path (file to encode, or image to decode)")
	fs.StringVar(&options.input, "i", "", "Short alias for -input")
	fs.StringVar(&options.output, "output", "", "Output path (image to write, or recovered file)")
	fs.StringVar(&options.output, "o", "", "Short alias for -output")
	fs.StringVar(&options.profile, "profile", "", "Payload profile: "+strings.Join(pipeline.ProfileNames(), ", ")+" (default "+pipeline.DefaultProfile+")")
	fs.StringVar(&options.compression, "compression", "", "Override the profile compressor: "+strings.Join(compression.Names(), ", "))
	fs.StringVar(&options.encoding, "encoding", "", "Override the profile text encoding: "+strings.Join(textcodec.Names(), ", "))
	fs.IntVar(&options.moduleSize, "module-size", 0, "Pixels per QR module (default 10)")
	fs.IntVar(&options.border, "border", 0, "Quiet zone width in modules (default 4)")
	fs.StringVar(&options.renderLevel, "level", "", "Error correction level: low, medium, high, highest (default highest)")
	fs.StringVar(&options.configFile, "config", "", "Path to a TOML configuration file")
	fs.StringVar(&options.envFile, "env-file", "", "Path to a .env file with "+config.EnvPrefix+" variables")
	fs.StringVar(&options.logLevel, "log-level", "", "Log level: debug, info, warn, error (default "+config.DefaultLogLevel+")")
	fs.BoolVar(&options.interactive, "interactive", false, "Force interactive log output")
	fs.BoolVar(&options.quiet, "quiet", false, "Force non-interactive log output")
	fs.BoolVar(&options.color, "color", false, "Force colored output even when not writing to a terminal")
	fs.BoolVar(&options.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&options.verify, "verify", false, "Read the encoded image back and compare it with the input before writing")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}

	cli := &cliConfig{input: options.input, output: options.output}

	switch {
	case options.encode && options.decode:
		return nil, fs, errModeConflict
	case options.encode:
		cli.mode = modeEncode
	case options.decode:
		cli.mode = modeDecode
	default:
		return nil, fs, errModeRequired
	}
	if options.color && options.noColor {
		return nil, fs, errColorConflict
	}
	if fs.NArg() > 0 {
		return nil, fs, fmt.Errorf("%w: %s", errUnexpectedArgs, strings.Join(fs.Args(), " "))
	}
	if cli.input == "" {
		return nil, fs, errInputRequired
	}
	if cli.output == "" {
		return nil, fs, errOutputRequired
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	overrides := config.Overrides{}
	if set["profile"] {
		overrides.Profile = &options.profile
	}
	if set["compression"] {
		overrides.Compression = &options.compression
	}
	if set["encoding"] {
		overrides.Encoding = &options.encoding
	}
	if set["module-size"] {
		overrides.ModuleSize = &options.moduleSize
	}
	if set["border"] {
		overrides.Border = &options.border
	}
	if set["level"] {
		overrides.RenderLevel = &options.renderLevel
	}
	if set["log-level"] {
		overrides.LogLevel = &options.logLevel
	}
	if set["verify"] {
		overrides.Verify = &options.verify
	}

	cli.sources = config.Sources{
		ConfigFile: options.configFile,
		EnvFile:    options.envFile,
		Overrides:  overrides,
	}
	cli.terminal = terminal.Options{
		ForceInteractive:    options.interactive,
		ForceNonInteractive: options.quiet,
		ForceColor:          options.color,
		DisableColor:        options.noColor,
	}
	return cli, fs, nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	if fs == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "Usage:\n  %[1]s -e|-encode -i <file> -o <image> [flags]\n  %[1]s -d|-decode -i <image> -o <file> [flags]\n\nFlags:\n", fs.Name())
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
}

func setupLogger(cfg *config.Config, caps terminal.Capabilities, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	return logging.Setup(logging.LoggerConfig{
		Level:        level,
		Writer:       w,
		RunID:        logging.NewRunID(),
		Capabilities: caps,
	})
}

func buildConverter(m mode, cfg *config.Config, logger *slog.Logger) (converter, error) {
	profile, err := cfg.PipelineProfile()
	if err != nil {
		return nil, err
	}
	renderConfig, err := cfg.RenderConfig()
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithRenderConfig(renderConfig),
		pipeline.WithLogger(logger),
		pipeline.WithVerify(cfg.Verify),
	}
	logger.Debug("Resolved configuration",
		"profile", profile.String(),
		"module_size", renderConfig.ModuleSize,
		"border", renderConfig.Border,
		"verify", cfg.Verify)

	if m == modeEncode {
		return newEncoder(profile, opts...), nil
	}
	return newDecoder(profile, opts...), nil
}

// logFailure records the failure details below the default level, so a
// default run prints only the Error line.
func logFailure(logger *slog.Logger, err error) {
	attrs := []any{"error", err, "kind", pipeline.Classify(err).String()}
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		attrs = append(attrs, "stage", string(stageErr.Stage))
		if stageErr.Path != "" {
			attrs = append(attrs, "path", stageErr.Path)
		}
	}
	logger.Info("Conversion failed", attrs...)
}
