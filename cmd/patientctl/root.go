package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/schemakit/pkg/config"
	"github.com/dmitrymomot/schemakit/pkg/i18n"
	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/schema"
	"github.com/dmitrymomot/schemakit/svc/patient"
)

// Config is read from the environment and an optional .env file. Command
// line flags take precedence.
type Config struct {
	Env             string `env:"SCHEMAKIT_ENV" envDefault:"development"`
	LogLevel        string `env:"SCHEMAKIT_LOG_LEVEL" envDefault:"warn"`
	LogFormat       string `env:"SCHEMAKIT_LOG_FORMAT" envDefault:"text"`
	Model           string `env:"SCHEMAKIT_MODEL" envDefault:"registration"`
	Lang            string `env:"SCHEMAKIT_LANG"`
	TranslationsDir string `env:"SCHEMAKIT_TRANSLATIONS_DIR"`
}

var errValidationFailed = errors.New("validation failed")

type modelContextKey struct{}

// app holds what PersistentPreRunE resolves for the subcommands.
type app struct {
	cfg        Config
	log        *slog.Logger
	translator *i18n.Translator
	lang       string
	model      *schema.Schema
}

type rootFlags struct {
	envFile   string
	model     string
	lang      string
	locales   string
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var flags rootFlags

	root := &cobra.Command{
		Use:           "patientctl",
		Short:         "Validate and serialize patient records",
		Long:          `patientctl checks JSON or YAML patient payloads against the record schemas, dumps validated records and prints their JSON Schema.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.envFile, "env-file", "", "dotenv file to load before reading configuration")
	pf.StringVarP(&flags.model, "model", "m", "", "model name, see 'patientctl models' (default $SCHEMAKIT_MODEL or registration)")
	pf.StringVar(&flags.lang, "lang", "", "message language (default $SCHEMAKIT_LANG, then $LANG)")
	pf.StringVar(&flags.locales, "locales", "", "directory with extra JSON or YAML translations")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		newModelsCmd(a),
		newValidateCmd(a),
		newDumpCmd(a),
		newSchemaCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, flags rootFlags) error {
	if flags.envFile != "" {
		if err := config.LoadEnv(flags.envFile); err != nil {
			return err
		}
		if err := config.ForceReloadConfig(&a.cfg); err != nil {
			return err
		}
	} else if err := config.Load(&a.cfg); err != nil {
		return err
	}

	override(&a.cfg.Model, flags.model)
	override(&a.cfg.Lang, flags.lang)
	override(&a.cfg.TranslationsDir, flags.locales)
	override(&a.cfg.LogLevel, flags.logLevel)
	override(&a.cfg.LogFormat, flags.logFormat)

	log, err := newLogger(a.cfg, cmd)
	if err != nil {
		return err
	}
	a.log = log
	logger.SetAsDefault(log)

	model, err := patient.Lookup(a.cfg.Model)
	if err != nil {
		return err
	}
	a.model = model

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.translator, err = newTranslator(ctx, a.cfg, log); err != nil {
		return err
	}

	requested := a.cfg.Lang
	if requested == "" {
		requested = os.Getenv("LANG")
	}
	a.lang = a.translator.Match(requested)

	ctx = context.WithValue(ctx, modelContextKey{}, model.Name())
	cmd.SetContext(i18n.SetLocale(ctx, a.lang))

	a.log.DebugContext(cmd.Context(), "configured",
		slog.String("lang", a.lang),
		slog.String("env", a.cfg.Env),
	)
	return nil
}

func override(dst *string, flag string) {
	if flag != "" {
		*dst = flag
	}
}

func newLogger(cfg Config, cmd *cobra.Command) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	format := logger.Format(strings.ToLower(cfg.LogFormat))
	if format != logger.FormatText && format != logger.FormatJSON {
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.LogFormat)
	}

	return logger.New(
		logger.WithEnvironment(cfg.Env, "patientctl"),
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextValue("model", modelContextKey{}),
	), nil
}

func newTranslator(ctx context.Context, cfg Config, log *slog.Logger) (*i18n.Translator, error) {
	opts := []i18n.Option{
		i18n.WithLogger(log.With(logger.Component("i18n"))),
		i18n.WithMissingTranslationsLogging(true),
	}
	if cfg.TranslationsDir == "" {
		return i18n.NewBuiltinTranslator(ctx, opts...)
	}
	adapter := i18n.NewChainAdapter(
		i18n.NewBuiltinAdapter(),
		i18n.NewFSAdapter(os.DirFS(cfg.TranslationsDir), "."),
	)
	return i18n.NewTranslator(ctx, adapter, opts...)
}
