// Command redact-logs copies log lines from stdin to stdout with secrets
// removed, using the same rules the server applies to logged errors. It is
// useful before attaching logs captured elsewhere to a bug report.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/tasks-api/internal/redact"
)

// maxLineBytes bounds a single log line.
const maxLineBytes = 1 << 20

func main() {
	if err := filter(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func filter(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	w := bufio.NewWriter(out)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(w, redact.String(scanner.Text())); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return w.Flush()
}
