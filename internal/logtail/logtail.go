package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A maxLines
// of zero or less returns every line. A missing file yields no lines.
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

var (
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	loggerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6495ED"))
	fieldsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	levelStyles    = map[string]lipgloss.Style{
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("#00CED1")).Bold(true),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32")).Bold(true),
		"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4500")).Bold(true),
	}
)

// ColorizeLine styles a tab-separated console log line:
//
//	2026-10-17T09:30:00.000+0200	INFO	service	login ok	{"request_id": "..."}
//
// Lines that do not look like that are returned unchanged.
func ColorizeLine(line string) string {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 {
		return line
	}
	level, ok := levelStyles[strings.ToUpper(strings.TrimSpace(parts[1]))]
	if !ok {
		return line
	}

	out := make([]string, 0, len(parts))
	out = append(out, timestampStyle.Render(parts[0]), level.Render(parts[1]))
	rest := parts[2:]
	// The logger name column is only present for named loggers.
	if len(rest) > 1 && !strings.Contains(rest[0], " ") {
		out = append(out, loggerStyle.Render(rest[0]))
		rest = rest[1:]
	}
	for i, part := range rest {
		if i > 0 && strings.HasPrefix(part, "{") {
			out = append(out, fieldsStyle.Render(part))
			continue
		}
		out = append(out, part)
	}
	return strings.Join(out, "\t")
}

// ColorizeLines applies ColorizeLine to each line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line)
	}
	return out
}
