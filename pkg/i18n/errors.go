package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrNilAdapter          = errors.New("translation adapter is nil")
	ErrFailedToParseJSON   = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML   = errors.New("failed to parse YAML content")
	ErrParsingCancelled    = errors.New("translation parsing cancelled")
	ErrLoadingCancelled    = errors.New("loading translations cancelled")
	ErrFailedToReadFile    = errors.New("failed to read translation file")
	ErrFailedToParseFile   = errors.New("failed to parse translation file")
	ErrFailedToReadDir     = errors.New("failed to read translation directory")
	ErrNoTranslations      = errors.New("no translations found")
	ErrUnsupportedFileType = errors.New("unsupported translation file type")
	ErrInvalidTranslations = errors.New("invalid translations")
)

// ErrLanguageNotSupported indicates that the requested language is not available.
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}

func errorf(base error, format string, args ...any) error {
	return errors.Join(base, fmt.Errorf(format, args...))
}
