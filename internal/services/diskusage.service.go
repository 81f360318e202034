package services

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"

	"diskusage/internal/models"
)

// DiskUsageToolName is the name callers use to invoke the disk usage tool
const DiskUsageToolName = "get_disk_usage"

// DefaultDevice is the df filesystem identifier the tool reports on.
// Older tool descriptions name disk3s1s1, but disk3s5 is the device df is
// filtered on.
const DefaultDevice = "disk3s5"

// sizeSuffix is the unit df -h prints for gibibyte values
const sizeSuffix = "Gi"

var (
	// ErrDeviceNotFound means no df row mentions the device
	ErrDeviceNotFound = errors.New("device not found in df output")
	// ErrAmbiguousOutput means more than one df row mentions the device
	ErrAmbiguousOutput = errors.New("df output matched more than one line")
	// ErrUnexpectedFields means the matched row is too short to parse
	ErrUnexpectedFields = errors.New("unexpected df field count")
)

// CommandRunner runs an external command and returns its standard output
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec, without a shell
type ExecRunner struct{}

// Run executes name with args and returns stdout
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			// df exits 1 when any single mount is unreadable, yet still
			// prints every other row
			if len(bytes.TrimSpace(out)) > 0 {
				log.Printf("Warning: %s %s exited with %v: %s", name, strings.Join(args, " "), err, bytes.TrimSpace(exitErr.Stderr))
				return out, nil
			}
			if len(exitErr.Stderr) > 0 {
				return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, bytes.TrimSpace(exitErr.Stderr))
			}
		}
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

// DiskUsageService collects usage for one fixed device through df
type DiskUsageService struct {
	runner CommandRunner
	device string
}

// NewDiskUsageService creates a service that reports on DefaultDevice
func NewDiskUsageService(runner CommandRunner) *DiskUsageService {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &DiskUsageService{runner: runner, device: DefaultDevice}
}

// Device returns the identifier the service filters df output on
func (s *DiskUsageService) Device() string {
	return s.device
}

// GetDiskUsage runs df and returns the parsed report, or a failure result.
// It never returns an error: every failure becomes an ErrorReport.
func (s *DiskUsageService) GetDiskUsage(ctx context.Context) models.ToolResult {
	report, err := s.collect(ctx)
	if err != nil {
		log.Printf("Warning: Could not get disk usage for %s: %v", s.device, err)
		return models.Failed(err)
	}
	return models.Succeeded(*report)
}

func (s *DiskUsageService) collect(ctx context.Context) (*models.UsageReport, error) {
	out, err := s.runner.Run(ctx, "df", "-h")
	if err != nil {
		return nil, err
	}

	line, err := matchLine(out, s.device)
	if err != nil {
		return nil, err
	}

	return ParseDFLine(line)
}

// matchLine returns the single line of out that contains device
func matchLine(out []byte, device string) (string, error) {
	var matches []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if line := scanner.Text(); strings.Contains(line, device) {
			matches = append(matches, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read df output: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrDeviceNotFound, device)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %d lines contain %s", ErrAmbiguousOutput, len(matches), device)
	}
}

// ParseDFLine parses one df -h row laid out as
// device, size, used, available, capacity%, ..., mount.
// Sizes are assumed to be in Gi; no other unit is recognised.
func ParseDFLine(line string) (*models.UsageReport, error) {
	parts := strings.Fields(line)
	if len(parts) < 6 {
		return nil, fmt.Errorf("%w: got %d, need at least 6", ErrUnexpectedFields, len(parts))
	}

	totalGB, err := parseSize(parts[1])
	if err != nil {
		return nil, err
	}
	usedGB, err := parseSize(parts[2])
	if err != nil {
		return nil, err
	}
	availGB, err := parseSize(parts[3])
	if err != nil {
		return nil, err
	}
	percent, err := strconv.Atoi(strings.ReplaceAll(parts[4], "%", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid capacity %q: %w", parts[4], err)
	}

	// df does not report reserved blocks, so derive them
	reservedGB := totalGB - usedGB - availGB

	mount := parts[5]
	if len(parts) > 8 {
		mount = parts[8]
	}

	return &models.UsageReport{
		Device:      parts[0],
		TotalGB:     formatGB(totalGB),
		UsedGB:      formatGB(usedGB),
		AvailableGB: formatGB(availGB),
		ReservedGB:  formatGB(reservedGB),
		PercentUsed: fmt.Sprintf("%d%%", percent),
		Mount:       mount,
		Summary: fmt.Sprintf("Total: %s | Used: %s | Available: %s | Reserved: %s | Usage: %d%%",
			formatGB(totalGB), formatGB(usedGB), formatGB(availGB), formatGB(reservedGB), percent),
	}, nil
}

func parseSize(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(field, sizeSuffix, ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", field, err)
	}
	return v, nil
}

func formatGB(v float64) string {
	return fmt.Sprintf("%.1fGB", v)
}
