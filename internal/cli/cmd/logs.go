package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/bnema/sitestyle/internal/cli/styles"
	"github.com/bnema/sitestyle/internal/logging"
)

var (
	logsFollow bool
	logsLines  int
)

const defaultLogsLines = 50

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View application logs",
	Long: `Show the end of the sitestyle log file.

Examples:
  sitestyle logs              # Last 50 lines
  sitestyle logs -n 200       # Last 200 lines
  sitestyle logs -f           # Follow in real-time`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var logsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the log file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		cmd.Println(logFilePath(a.Config.Logging.LogDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsPathCmd)

	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output in real-time")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", defaultLogsLines, "number of lines to show")
}

func logFilePath(dir string) string {
	return filepath.Join(dir, logging.LogFileName)
}

func runLogs(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	path := logFilePath(a.Config.Logging.LogDir)

	lines, err := lastLines(path, logsLines)
	if errors.Is(err, os.ErrNotExist) {
		cmd.Println(a.Theme.Subtle.Render("No logs yet: " + path))
		if !logsFollow {
			return nil
		}
	} else if err != nil {
		return err
	}
	for _, line := range lines {
		cmd.Println(colorizeLogLine(line, a.Theme))
	}

	if !logsFollow {
		return nil
	}
	ctx, stop := signal.NotifyContext(a.Ctx(), unix.SIGINT, unix.SIGTERM)
	defer stop()
	cmd.Println(a.Theme.Subtle.Render("Following logs... (Ctrl+C to stop)"))
	return tailLog(ctx, path, cmd.OutOrStdout(), a.Theme)
}

// lastLines returns up to n trailing lines of the file.
func lastLines(path string, n int) (lines []string, retErr error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close log file: %w", closeErr)
		}
	}()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if n > 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return lines, nil
}

// tailLog follows the log file from its current end until ctx is done.
// A rotated file is reopened from its start.
func tailLog(ctx context.Context, path string, out io.Writer, theme *styles.Theme) error {
	var (
		file    *os.File
		reader  *bufio.Reader
		offset  int64
		pending string
	)
	defer func() {
		if file != nil {
			_ = file.Close()
		}
	}()

	open := func(fromEnd bool) {
		f, err := os.Open(path)
		if err != nil {
			return
		}
		if fromEnd {
			offset, _ = f.Seek(0, io.SeekEnd)
		} else {
			offset = 0
		}
		file, reader = f, bufio.NewReader(f)
	}
	open(true)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if reader != nil {
			for {
				chunk, err := reader.ReadString('\n')
				offset += int64(len(chunk))
				pending += chunk
				if err != nil {
					if !errors.Is(err, io.EOF) {
						return fmt.Errorf("read log file: %w", err)
					}
					break
				}
				fmt.Fprintln(out, colorizeLogLine(strings.TrimSuffix(pending, "\n"), theme))
				pending = ""
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		info, err := os.Stat(path)
		switch {
		case err != nil:
			continue
		case file == nil:
			open(false)
		case info.Size() < offset:
			_ = file.Close()
			file, reader, pending = nil, nil, ""
			open(false)
		}
	}
}

// logEntry represents a parsed JSON log entry.
type logEntry struct {
	Level     string `json:"level"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	Component string `json:"component"`
}

// colorizeLogLine adds color based on log level.
func colorizeLogLine(line string, theme *styles.Theme) string {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err == nil {
		return formatJSONLogLine(entry, theme)
	}

	// Console format
	switch {
	case containsAny(line, " ERR ", " FTL "):
		return theme.ErrorStyle.Render(line)
	case containsAny(line, " WRN "):
		return theme.WarningStyle.Render(line)
	case containsAny(line, " DBG ", " TRC "):
		return theme.Subtle.Render(line)
	default:
		return line
	}
}

// formatJSONLogLine formats a parsed JSON log entry with colors.
func formatJSONLogLine(entry logEntry, theme *styles.Theme) string {
	timeStr := entry.Time
	if t, err := time.Parse(time.RFC3339, entry.Time); err == nil {
		timeStr = t.Format("15:04:05")
	}

	var levelStr string
	switch entry.Level {
	case "error", "fatal":
		levelStr = theme.ErrorStyle.Render("ERR")
	case "warn":
		levelStr = theme.WarningStyle.Render("WRN")
	case "info":
		levelStr = theme.Highlight.Render("INF")
	case "debug":
		levelStr = theme.Subtle.Render("DBG")
	case "trace":
		levelStr = theme.Subtle.Render("TRC")
	default:
		levelStr = entry.Level
	}

	msg := entry.Message
	if entry.Component != "" {
		msg = theme.Subtle.Render("["+entry.Component+"]") + " " + msg
	}
	return fmt.Sprintf("%s %s %s", theme.Subtle.Render(timeStr), levelStr, msg)
}

func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
