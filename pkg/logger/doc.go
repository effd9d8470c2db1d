// Package logger builds log/slog loggers with a small set of options.
//
// New returns a JSON logger at info level writing to stderr. Options switch
// the format, level and destination, add static attributes and register
// context extractors that add attributes per call:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "patientctl"),
//	    logger.WithLevelName(cfg.LogLevel),
//	)
//	log.Info("record validated", logger.Schema("Registration"), logger.ErrorCount(0))
//
// The attribute helpers (Schema, Field, ErrorCount, Error, Errors, Source)
// keep key names consistent across commands.
package logger
