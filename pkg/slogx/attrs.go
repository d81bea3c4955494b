package slogx

import (
	"fmt"
	"log/slog"
)

// Error returns a slog.Attr representing the provided error.
// The attribute key is "error" and the value is the error's message.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// BlockType creates a slog.Attr carrying the type tag of a content block.
// An empty tag is logged as "<none>".
func BlockType(tpe string) slog.Attr {
	if tpe == "" {
		tpe = "<none>"
	}
	return slog.String(KeyBlockType, tpe)
}

// Stringer creates a slog.Attr with the provided key and the string representation
// of the given fmt.Stringer value.
//
// Parameters:
//   - key: A string representing the key for the attribute.
//   - value: An object that implements the fmt.Stringer interface.
//
// Returns:
//   - slog.Attr: An attribute containing the key and the string representation of the value.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

const (
	// KeyLoggerName is the key for the name of the component that logs.
	KeyLoggerName = "logger"
	// KeyBlockType is the key for the type tag of a content block.
	KeyBlockType = "block_type"
)

// LoggerName creates a slog.Attr with the provided logger name.
// The attribute key is defined by KeyLoggerName.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}
