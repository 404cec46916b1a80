// Package shell provides a local bear that delegates analysis to an
// external command. The command is invoked once per file with the file path
// appended and is expected to print one finding per line as
// `<line>: <message>`.
package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"

	"github.com/ursalint/ursa/logging"
	"github.com/ursalint/ursa/model/bear"
	"github.com/ursalint/ursa/model/result"
	"github.com/ursalint/ursa/model/section"
)

// Name under which the bear registers.
const Name = "ShellBear"

// Bear runs a configured command against each file and turns its output
// into findings.
type Bear struct {
	bear.Base
	command  string
	severity result.Severity
	service  *gosh.Service
}

// New constructs the bear for one execution. The section must configure
// shell_command; a missing command or an unavailable local shell is an
// unmet runtime requirement and drops the bear from the pool.
func New(sec *section.Section, messages *logging.Poster, timeout time.Duration) (bear.Local, error) {
	command, ok := sec.Get("shell_command")
	if !ok || strings.TrimSpace(command) == "" {
		return nil, fmt.Errorf("setting shell_command is required")
	}
	service, err := gosh.New(context.Background(), local.New())
	if err != nil {
		return nil, fmt.Errorf("failed to open local shell: %w", err)
	}
	return &Bear{
		Base:     bear.NewBase(sec, messages, timeout),
		command:  command,
		severity: result.ParseSeverity(sec.Str("shell_severity", "WARNING")),
		service:  service,
	}, nil
}

// Descriptor returns the registry descriptor for this bear.
func Descriptor() *bear.Descriptor {
	return &bear.Descriptor{Name: Name, NewLocal: New}
}

// Name implements bear.Local.
func (b *Bear) Name() string {
	return Name
}

// Analyze runs the command against one file. A non-zero exit status alone
// is not an error; whatever findings the command printed are reported.
func (b *Bear) Analyze(ctx context.Context, filename string, lines []string) ([]*result.Result, error) {
	timeoutMs := int(time.Minute.Milliseconds())
	output, _, err := b.service.Run(ctx, b.command+" "+filename, runner.WithTimeout(timeoutMs))
	if err != nil && output == "" {
		return nil, fmt.Errorf("command %q failed on %s: %w", b.command, filename, err)
	}
	return ParseFindings(filename, output, b.severity), nil
}

// ParseFindings extracts `<line>: <message>` findings from command output.
// Lines that do not match are skipped.
func ParseFindings(filename, output string, severity result.Severity) []*result.Result {
	var results []*result.Result
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		lineNumber, err := strconv.Atoi(strings.TrimSpace(line[:idx]))
		if err != nil || lineNumber <= 0 {
			continue
		}
		message := strings.TrimSpace(line[idx+1:])
		if message == "" {
			continue
		}
		results = append(results, result.New(Name, message, severity,
			result.NewSourceRange(filename, lineNumber, lineNumber)))
	}
	return results
}
