package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/schemakit/pkg/logger"
	"github.com/dmitrymomot/schemakit/pkg/schema"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|->",
		Short: "Validate a JSON or YAML payload against the selected model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.validate(cmd, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.translator.T(a.lang, "cli.valid", "model", a.model.Name()))
			return nil
		},
	}
}

// validate builds a record from the payload at source. Validation failures
// are reported on stderr and returned as errValidationFailed.
func (a *app) validate(cmd *cobra.Command, source string) (*schema.Record, error) {
	ctx := cmd.Context()
	start := time.Now()

	data, err := readPayload(cmd.InOrStdin(), source)
	if err != nil {
		return nil, err
	}

	rec, err := decodeWith(a.model, source, data)
	if err == nil {
		a.log.InfoContext(ctx, "payload is valid", logger.Source(source), logger.Duration(time.Since(start)))
		return rec, nil
	}

	if !validator.IsValidationError(err) {
		if errors.Is(err, schema.ErrInvalidInput) {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		return nil, err
	}

	verrs := validator.ExtractValidationErrors(err)

	a.log.WarnContext(ctx, "payload is invalid",
		logger.Source(source),
		logger.ErrorCount(len(verrs)),
		logger.Duration(time.Since(start)),
	)
	a.report(cmd.ErrOrStderr(), a.translator.TranslateErrors(a.lang, verrs))
	return nil, errValidationFailed
}

// report prints one "path: message" line per error under a summary line.
func (a *app) report(w io.Writer, errs validator.ValidationErrors) {
	fmt.Fprintln(w, a.translator.N(a.lang, "cli.invalid", len(errs),
		"count", strconv.Itoa(len(errs)),
		"model", a.model.Name(),
	))
	for _, e := range errs {
		if e.Field == "" {
			fmt.Fprintf(w, "  %s\n", e.Message)
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", e.Field, e.Message)
	}
}
