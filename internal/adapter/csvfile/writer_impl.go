package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/user/article-backup/internal/entity"
	"github.com/user/article-backup/internal/repository"
)

// timestampLayout renders e.g. 2024-05-01_09h07m.
const timestampLayout = "2006-01-02_15h04m"

// Header is the first row of every backup file.
var Header = []string{"no", "title", "url", "tags", "text"}

// WriterFactory creates dated CSV backups inside a directory.
type WriterFactory struct {
	dir    string
	suffix string
}

// NewWriterFactory creates a WriterFactory writing to dir. Files are named
// "[<timestamp>]<suffix>.csv".
func NewWriterFactory(dir, suffix string) *WriterFactory {
	return &WriterFactory{dir: dir, suffix: suffix}
}

// FileName returns the backup file name for a file created at t, in t's location.
func (f *WriterFactory) FileName(t time.Time) string {
	return fmt.Sprintf("[%s]%s.csv", t.Format(timestampLayout), f.suffix)
}

// Create makes the backup directory if needed and writes the header row.
// An existing file of the same name is never overwritten.
func (f *WriterFactory) Create(ctx context.Context, createdAt time.Time) (repository.BackupWriter, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory %s: %w", f.dir, err)
	}

	path := filepath.Join(f.dir, f.FileName(createdAt))
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", repository.ErrBackupExists, path)
		}
		return nil, fmt.Errorf("failed to create backup file %s: %w", path, err)
	}

	w := &Writer{file: file, csv: csv.NewWriter(file), path: path}
	if err := w.writeRow(Header); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	return w, nil
}

// Writer appends post records to one CSV file, flushing after every row so
// that an interrupted run keeps the rows written so far.
type Writer struct {
	file *os.File
	csv  *csv.Writer
	path string
}

func (w *Writer) Write(record *entity.PostRecord) error {
	return w.writeRow([]string{
		record.SequenceNumber,
		record.Title,
		record.URL,
		record.Tags,
		record.Text,
	})
}

func (w *Writer) writeRow(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}

func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
