package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agbru/fibmemo/internal/cli"
	"github.com/agbru/fibmemo/internal/config"
	apperrors "github.com/agbru/fibmemo/internal/errors"
	"github.com/agbru/fibmemo/internal/fibonacci"
	"github.com/agbru/fibmemo/internal/fibonacci/memory"
	"github.com/agbru/fibmemo/internal/logging"
	"github.com/agbru/fibmemo/internal/metrics"
	"github.com/agbru/fibmemo/internal/tui"
	"github.com/agbru/fibmemo/internal/ui"
)

// Application is one fibmemo invocation.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.CalculatorFactory
	ErrWriter io.Writer
	In        io.Reader

	logger   logging.Logger
	recorder *metrics.Recorder
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets the CalculatorFactory used to resolve -algo.
func WithFactory(f fibonacci.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader used by the interactive prompt.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New parses args (args[0] is the program name) into an Application.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin, logger: logging.NewDefaultLogger()}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.NewDefaultFactory()
	}

	programName := "fibmemo"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)
	a.setupLogging()
	if a.Config.MetricsFile != "" {
		a.recorder = metrics.NewRecorder()
	}

	if a.Config.Interactive {
		return a.runInteractive(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// setupLogging routes zerolog, including the package-level logger used by
// the GC controller, to ErrWriter at the configured level.
func (a *Application) setupLogging() {
	zerolog.SetGlobalLevel(logging.ParseLevel(a.Config.LogLevel))
	writer := zerolog.ConsoleWriter{
		Out:        a.ErrWriter,
		TimeFormat: time.TimeOnly,
		NoColor:    ui.GetCurrentTheme().Name == ui.NoColorTheme.Name,
	}
	zl := zerolog.New(writer).With().Timestamp().Str("component", "fibmemo").Logger()
	log.Logger = zl
	a.logger = logging.NewZerologAdapter(zl)
}

// runInteractive starts the prompt. The prompt runs one calculator, so a
// list uses its first entry and "all" the default calculator.
func (a *Application) runInteractive(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	algo := strings.TrimSpace(strings.Split(a.Config.Algo, ",")[0])
	if algo == "all" {
		algo = config.DefaultAlgo
	}
	calc, err := a.Factory.Get(algo)
	if err != nil {
		return apperrors.HandleCalculationError(apperrors.NewConfigError("%v", err), 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	budget := tui.Budget{Algo: algo}
	if a.Config.MemoryLimit != "" {
		// Validate has already accepted the value.
		budget.Limit, _ = memory.ParseMemoryLimit(a.Config.MemoryLimit)
	}
	a.logger.Debug("starting interactive prompt", logging.String("algorithm", calc.Name()), logging.Uint64("memory_limit", budget.Limit))
	return tui.Run(ctx, calc, a.calculationOptions(), budget, Version, a.In, out)
}

func (a *Application) calculationOptions() fibonacci.Options {
	return fibonacci.Options{GCMode: a.Config.GCMode}
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
