package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file is not an error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Level is the severity column of a log line.
type Level int

const (
	LevelNone Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// Entry is one log line split into its columns. Lines that do not look like
// logger output keep everything in Message.
type Entry struct {
	Time    string
	Level   Level
	Prefix  string
	Message string
}

var levelTokens = map[string]Level{
	"DEBU":  LevelDebug,
	"DEBUG": LevelDebug,
	"INFO":  LevelInfo,
	"WARN":  LevelWarn,
	"ERRO":  LevelError,
	"ERROR": LevelError,
	"FATA":  LevelError,
	"FATAL": LevelError,
}

// Parse splits a line written by the application logger:
//
//	2026/10/17 14:32:15 WARN profilecard: presence poll failed err=...
func Parse(line string) Entry {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Entry{Message: line}
	}
	level, ok := levelTokens[fields[2]]
	if !ok {
		return Entry{Message: line}
	}

	entry := Entry{Time: fields[0] + " " + fields[1], Level: level}
	rest := strings.TrimSpace(afterFields(line, 3))
	if head, tail, found := strings.Cut(rest, ": "); found && !strings.ContainsAny(head, " =") {
		entry.Prefix = head
		rest = tail
	}
	entry.Message = rest
	return entry
}

// afterFields returns line with its first n whitespace separated fields
// removed.
func afterFields(line string, n int) string {
	s := line
	for i := 0; i < n; i++ {
		s = strings.TrimLeft(s, " \t")
		j := strings.IndexAny(s, " \t")
		if j < 0 {
			return ""
		}
		s = s[j:]
	}
	return s
}
