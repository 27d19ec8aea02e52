package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/vjp/internal/errors"
	"github.com/mcncl/vjp/internal/models"
)

// ParseString parses a complete JSON document held in a string. Empty or
// whitespace-only input is an input error rather than a syntax error.
// Syntax errors are wrapped in a parsing AppError; errors.As still finds
// the *errors.SyntaxError.
func ParseString(jsonString string, maxDepth int, opts ...ParseOption) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	value, err := Parse(jsonString, maxDepth, opts...)
	if err != nil {
		return models.Value{}, errors.NewParsingError("invalid JSON document", err)
	}
	return value, nil
}

// ReadAll reads a complete document from reader
func ReadAll(reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", errors.NewInputError("failed to read input", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// ParseReader reads reader to EOF and parses the result. The text is
// returned as well so callers can locate syntax errors in it.
func ParseReader(reader io.Reader, maxDepth int, opts ...ParseOption) (models.Value, string, error) {
	text, err := ReadAll(reader)
	if err != nil {
		return models.Value{}, "", err
	}
	value, err := ParseString(text, maxDepth, opts...)
	return value, text, err
}

// ReadFile reads a complete document from filePath
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		// Check if the file doesn't exist
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	// Check for empty file before reading
	stat, err := file.Stat()
	if err != nil {
		return "", errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return ReadAll(file)
}

// ParseFile reads and parses the document at filePath, returning its text
// alongside the value
func ParseFile(filePath string, maxDepth int, opts ...ParseOption) (models.Value, string, error) {
	text, err := ReadFile(filePath)
	if err != nil {
		return models.Value{}, "", err
	}
	value, err := ParseString(text, maxDepth, opts...)
	return value, text, err
}
