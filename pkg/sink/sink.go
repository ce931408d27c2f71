// Package sink writes timestamped records as JSON lines to stdout or to a
// size-rotated log file.
package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ramvarra/nfsiostatlog/pkg/nfsiostat"
)

// DefaultMaxSize is the size above which a log file is rotated.
const DefaultMaxSize int64 = 4 * 1024 * 1024

// BackupSuffix is appended to the log file name on rotation.
const BackupSuffix = ".bak"

// Opener hands out a writer for one sampling cycle. Callers must Close it.
type Opener interface {
	Open() (io.WriteCloser, error)
}

// Stdout writes records to the process's standard output.
type Stdout struct {
	W io.Writer
}

// Open returns a writer whose Close leaves the underlying stream open.
func (s Stdout) Open() (io.WriteCloser, error) {
	w := s.W
	if w == nil {
		w = os.Stdout
	}
	return nopCloser{w}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// File appends records to Path, rotating it to Path+".bak" when it has grown
// beyond MaxSize.
type File struct {
	Path    string
	MaxSize int64
	Logger  *logrus.Logger
}

// NewFile creates a file sink with the default rotation threshold.
func NewFile(path string, logger *logrus.Logger) *File {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &File{
		Path:    path,
		MaxSize: DefaultMaxSize,
		Logger:  logger,
	}
}

// Open rotates the file if needed and opens it in append mode.
func (f *File) Open() (io.WriteCloser, error) {
	if err := f.rotate(); err != nil {
		return nil, err
	}
	fp, err := os.OpenFile(f.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return fp, nil
}

func (f *File) rotate() error {
	limit := f.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	info, err := os.Stat(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot stat log file: %w", err)
	}
	if info.Size() <= limit {
		return nil
	}

	bak := f.Path + BackupSuffix
	if err := os.Rename(f.Path, bak); err != nil {
		return fmt.Errorf("cannot rotate log file: %w", err)
	}
	if f.Logger != nil {
		f.Logger.WithFields(logrus.Fields{
			"file":   f.Path,
			"backup": bak,
			"size":   info.Size(),
		}).Info("Rotated log file")
	}
	return nil
}

// WriteRecords writes each record as a single JSON object followed by a newline.
func WriteRecords(w io.Writer, records []nfsiostat.Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("cannot write record for %s: %w", r.Mount, err)
		}
	}
	return nil
}
