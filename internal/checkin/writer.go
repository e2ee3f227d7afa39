package checkin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"vcheck/internal/checkin/interfaces"
	"vcheck/internal/models"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"
	LogExtension    = ".log"

	dirPerm  = 0755
	filePerm = 0644
)

// RotatingWriter appends checkin lines to <dir>/<channel>/<YYYY-MM-DD>.log.
// It is owned by a single goroutine and is not safe for concurrent use.
type RotatingWriter struct {
	channel string
	dir     string
	clock   interfaces.Clock

	file *os.File
	date string
}

func NewRotatingWriter(baseDir, channel string, clock interfaces.Clock) *RotatingWriter {
	return &RotatingWriter{
		channel: channel,
		dir:     filepath.Join(baseDir, channel),
		clock:   clock,
	}
}

// Prepare creates the channel directory. It runs once before any record is accepted.
func (w *RotatingWriter) Prepare() (created bool, err error) {
	if _, err := os.Stat(w.dir); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(w.dir, dirPerm); err != nil {
		return false, fmt.Errorf("failed to create checkin directory %s: %w", w.dir, err)
	}
	return true, nil
}

// Write appends one line for record, opening the file for the current day
// first when needed. It reports whether a rotation happened.
func (w *RotatingWriter) Write(record models.CheckinRecord) (rotated bool, err error) {
	now := w.clock.Now()
	day := now.Format(DateLayout)

	if w.file == nil || day != w.date {
		if err := w.rotate(day); err != nil {
			return false, err
		}
		rotated = true
	}

	if _, err := w.file.WriteString(formatLine(now.Format(TimestampLayout), record)); err != nil {
		return rotated, fmt.Errorf("failed to write checkin to %s: %w", w.file.Name(), err)
	}
	return rotated, nil
}

func (w *RotatingWriter) rotate(day string) error {
	if err := w.Close(); err != nil {
		return err
	}
	path := w.Path(day)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("failed to open checkin log %s: %w", path, err)
	}
	w.file = f
	w.date = day
	return nil
}

// Close releases the open handle, if any.
func (w *RotatingWriter) Close() error {
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	w.date = ""
	if err != nil {
		return fmt.Errorf("failed to close checkin log: %w", err)
	}
	return nil
}

// CurrentDate is the day of the open file, empty when nothing is open.
func (w *RotatingWriter) CurrentDate() string {
	return w.date
}

func (w *RotatingWriter) Dir() string {
	return w.dir
}

func (w *RotatingWriter) Path(day string) string {
	return filepath.Join(w.dir, day+LogExtension)
}

func formatLine(timestamp string, record models.CheckinRecord) string {
	var b strings.Builder
	b.WriteString(timestamp)
	for _, field := range record.Fields() {
		b.WriteByte('\t')
		b.WriteString(models.Sanitize(field))
	}
	b.WriteByte('\n')
	return b.String()
}
