package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Severity is a glog severity, ordered from least to most severe.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
	Fatal
)

var severityNames = []string{"INFO", "WARNING", "ERROR", "FATAL"}

func (s Severity) String() string {
	if s < Info || s > Fatal {
		return "UNKNOWN"
	}
	return severityNames[s]
}

// ParseSeverity accepts a glog severity name in any case.
func ParseSeverity(name string) (Severity, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range severityNames {
		if upper == n {
			return Severity(i), nil
		}
	}
	return Info, fmt.Errorf("unknown severity %q", name)
}

// Path returns the symlink glog maintains for the newest log of program at
// the given severity, e.g. /tmp/lexicon.INFO. An empty dir means os.TempDir.
func Path(dir, program string, sev Severity) string {
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, program+"."+sev.String())
}

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		count = min(count+1, maxLines)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < maxLines {
		return ring[:count:count], nil
	}
	return append(ring[next:], ring[:next]...), nil
}

// LineSeverity reads the severity letter glog puts at the start of each
// record. Lines without a header (file banners, wrapped output) report ok=false.
func LineSeverity(line string) (Severity, bool) {
	if len(line) < 2 || line[1] < '0' || line[1] > '9' {
		return Info, false
	}
	switch line[0] {
	case 'I':
		return Info, true
	case 'W':
		return Warning, true
	case 'E':
		return Error, true
	case 'F':
		return Fatal, true
	}
	return Info, false
}

// Filter keeps records at or above least. Lines without a header inherit the
// severity of the record before them.
func Filter(lines []string, least Severity) []string {
	out := make([]string, 0, len(lines))
	keep := least == Info
	for _, line := range lines {
		if sev, ok := LineSeverity(line); ok {
			keep = sev >= least
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}

var severityStyles = map[Severity]lipgloss.Style{
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#dbc074")),
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#c94f6d")),
	Fatal:   lipgloss.NewStyle().Foreground(lipgloss.Color("#c94f6d")).Bold(true),
}

// Colorize renders warning and error records in their severity color.
func Colorize(line string) string {
	sev, ok := LineSeverity(line)
	if !ok {
		return line
	}
	style, found := severityStyles[sev]
	if !found {
		return line
	}
	return style.Render(line)
}
