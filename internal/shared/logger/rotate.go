package logger

import (
	"os"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotateConfig configures a DailyRotator.
type RotateConfig struct {
	Filename    string
	DatePattern string // Go time layout; a change in the formatted value starts a new file
	MaxSizeMB   int
	MaxAgeDays  int
	Compress    bool
}

// DailyRotator is an io.WriteCloser that rolls the underlying file whenever the
// formatted DatePattern changes, in addition to lumberjack's size-based rolling.
// Rolled files carry a timestamp in their name, are optionally gzipped and are
// pruned after MaxAgeDays.
type DailyRotator struct {
	mu      sync.Mutex
	out     *lumberjack.Logger
	pattern string
	window  string
	now     func() time.Time
}

// NewDailyRotator creates a DailyRotator. The file is opened lazily on first write.
func NewDailyRotator(cfg RotateConfig) *DailyRotator {
	pattern := cfg.DatePattern
	if pattern == "" {
		pattern = "2006-01-02"
	}
	return &DailyRotator{
		out: &lumberjack.Logger{
			Filename:  cfg.Filename,
			MaxSize:   cfg.MaxSizeMB,
			MaxAge:    cfg.MaxAgeDays,
			Compress:  cfg.Compress,
			LocalTime: true,
		},
		pattern: pattern,
		now:     time.Now,
	}
}

// Write implements io.Writer.
func (r *DailyRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	window := r.now().Format(r.pattern)
	if r.window == "" {
		r.window = window
		// A file left over from an earlier window is rolled before reuse.
		if info, err := os.Stat(r.out.Filename); err == nil && info.Size() > 0 &&
			info.ModTime().Format(r.pattern) != window {
			if err := r.out.Rotate(); err != nil {
				return 0, err
			}
		}
	} else if window != r.window {
		if err := r.out.Rotate(); err != nil {
			return 0, err
		}
		r.window = window
	}

	return r.out.Write(p)
}

// Sync is a no-op; lumberjack writes straight to the file.
func (r *DailyRotator) Sync() error { return nil }

// Close closes the current file.
func (r *DailyRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out.Close()
}
