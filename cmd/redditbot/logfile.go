package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// dailyFile appends to <name>_YYYYMMDD<ext> next to the configured path and moves to
// a new file when the date changes
type dailyFile struct {
	path string
	now  func() time.Time

	lock   sync.Mutex
	day    string
	fh     *os.File
	closed bool
}

// openDailyFile makes the log directory and opens the file of the current day
func openDailyFile(path string, now func() time.Time) (*dailyFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("can't make log directory: %w", err)
	}
	res := &dailyFile{path: path, now: now}
	if err := res.rotate(now().Format("20060102")); err != nil {
		return nil, err
	}
	return res, nil
}

// Write appends to the file of the current day
func (d *dailyFile) Write(p []byte) (int, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.closed {
		return 0, os.ErrClosed
	}
	if day := d.now().Format("20060102"); day != d.day || d.fh == nil {
		if err := d.rotate(day); err != nil {
			return 0, err
		}
	}
	return d.fh.Write(p)
}

// Close closes the current file
func (d *dailyFile) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.closed = true
	if d.fh == nil {
		return nil
	}
	err := d.fh.Close()
	d.fh = nil
	return err
}

func (d *dailyFile) rotate(day string) error {
	fh, err := os.OpenFile(datedName(d.path, day), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // path from CLI
	if err != nil {
		return fmt.Errorf("can't open log file: %w", err)
	}
	if d.fh != nil {
		_ = d.fh.Close()
	}
	d.fh, d.day = fh, day
	return nil
}

// datedName inserts the day before the extension, logs/bot.log becomes logs/bot_20240131.log
func datedName(path, day string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + day + ext
}
