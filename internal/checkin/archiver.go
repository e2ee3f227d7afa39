package checkin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"vcheck/internal/checkin/interfaces"
	"vcheck/internal/providers"
	"vcheck/internal/structures"
)

const ArchiveExtension = LogExtension + ".zst"

// Archiver compresses daily checkin logs once they are old enough that no
// writer can still be appending to them. Today's and yesterday's files are
// never touched.
type Archiver struct {
	dir        string
	afterDays  int
	clock      interfaces.Clock
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewArchiver(conf *structures.Config, clock interfaces.Clock, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Archiver {
	return &Archiver{
		dir:        conf.Checkin.Dir,
		afterDays:  conf.Checkin.ArchiveAfterDays,
		clock:      clock,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
	}
}

func (a *Archiver) Enabled() bool {
	return a.afterDays > 0
}

// Sweep archives every eligible file of every channel and returns how many
// files were compressed. It keeps going past per-file failures.
func (a *Archiver) Sweep() (int, error) {
	if !a.Enabled() {
		return 0, nil
	}
	start := time.Now()
	defer func() { a.metrics.ObserveArchiveDuration(time.Since(start)) }()

	cutoff := a.cutoff()
	var errs []error
	archived := 0
	for _, channel := range Channels {
		files, err := filepath.Glob(filepath.Join(a.dir, channel, "*"+LogExtension))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, path := range files {
			day, ok := parseLogDate(path)
			if !ok || !day.Before(cutoff) {
				continue
			}
			if err := a.archiveFile(path); err != nil {
				a.logger.Errorf(providers.TypeCheckin, "Failed to archive %s: %s", path, err)
				errs = append(errs, err)
				continue
			}
			archived++
			a.metrics.IncArchived(channel)
			a.logger.Infof(providers.TypeCheckin, "Archived %s", path)
		}
	}
	return archived, errors.Join(errs...)
}

// readArchived returns the decompressed content of an archived day.
func (a *Archiver) readArchived(channel, day string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(a.dir, channel, day+ArchiveExtension))
	if err != nil {
		return nil, err
	}
	return a.compressor.Decompress(data)
}

func (a *Archiver) cutoff() time.Time {
	now := a.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := max(a.afterDays, 1)
	return today.AddDate(0, 0, -days)
}

func (a *Archiver) archiveFile(path string) error {
	target := strings.TrimSuffix(path, LogExtension) + ArchiveExtension
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("archive %s already exists", target)
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	tmpFile := target + ".tmp"
	dst, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		return err
	}

	if err = a.compressor.CompressStream(dst, src); err != nil {
		dst.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = dst.Sync(); err != nil {
		dst.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = dst.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, target); err != nil {
		os.Remove(tmpFile)
		return err
	}
	return os.Remove(path)
}

// parseLogDate extracts the day from ".../2024-01-15.log" as midnight UTC.
func parseLogDate(path string) (time.Time, bool) {
	name := strings.TrimSuffix(filepath.Base(path), LogExtension)
	day, err := time.Parse(DateLayout, name)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
