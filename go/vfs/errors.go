package vfs

import (
	"strings"

	"github.com/chzyer/logex"
)

// Status tokens surfaced to the command layer. The defined message is the
// token itself, the shell prints OK when the operation returns nil.
var (
	ErrInvalidName  = logex.Define("INVALID NAME")
	ErrInvalidInput = logex.Define("INVALID INPUT")
	ErrExist        = logex.Define("EXIST")
	ErrFileNotFound = logex.Define("FILE NOT FOUND")
	ErrPathNotFound = logex.Define("PATH NOT FOUND")
	ErrIsDirectory  = logex.Define("IS DIRECTORY")
	ErrNotEmpty     = logex.Define("NOT EMPTY")
	ErrNoSpace      = logex.Define("NO SPACE")

	ErrNotFormatted    = logex.Define("NOT FORMATTED")
	ErrCannotCreate    = logex.Define("CANNOT CREATE FILE")
	ErrInconsistentDir = logex.Define("CONSISTENCY ERROR")
)

var tokens = []error{
	ErrInvalidName,
	ErrInvalidInput,
	ErrExist,
	ErrFileNotFound,
	ErrPathNotFound,
	ErrIsDirectory,
	ErrNotEmpty,
	ErrNoSpace,
	ErrNotFormatted,
	ErrCannotCreate,
	ErrInconsistentDir,
}

// Token maps an operation result to its status token.
func Token(err error) string {
	if err == nil {
		return "OK"
	}
	for _, t := range tokens {
		if logex.Equal(err, t) {
			return t.Error()
		}
	}
	return err.Error()
}

// validateName is shared by every operation that creates or renames an
// entry: non-empty, at most MaxNameLen characters, no path separator.
func validateName(name string) error {
	if name == "" {
		return ErrInvalidName.Trace()
	}
	if len(name) > MaxNameLen {
		return ErrInvalidName.Trace(name)
	}
	if strings.ContainsRune(name, '/') {
		return ErrInvalidName.Trace(name)
	}
	return nil
}
