package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Entry is one log line.
type Entry struct {
	Line  string
	Level zapcore.Level
}

// Read returns at most maxLines entries at or above minLevel from the end of
// the log at path. A missing file yields no entries. maxLines <= 0 returns
// every matching entry.
func Read(path string, maxLines int, minLevel zapcore.Level) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var (
		ring  []Entry
		next  int
		full  bool
		level = zapcore.InfoLevel
	)
	if maxLines > 0 {
		ring = make([]Entry, maxLines)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if l, ok := ParseLevel(line); ok {
			level = l
		}
		if level < minLevel {
			continue
		}
		e := Entry{Line: line, Level: level}
		if maxLines <= 0 {
			ring = append(ring, e)
			continue
		}
		ring[next] = e
		next = (next + 1) % maxLines
		if next == 0 {
			full = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if maxLines <= 0 {
		return ring, nil
	}
	if !full {
		return append([]Entry(nil), ring[:next]...), nil
	}
	return append(append([]Entry(nil), ring[next:]...), ring[:next]...), nil
}

// ParseLevel extracts the level column of a console-encoded zap line:
// time, level, logger and message separated by tabs.
func ParseLevel(line string) (zapcore.Level, bool) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) < 2 {
		return 0, false
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(fields[1]))); err != nil {
		return 0, false
	}
	return level, true
}
