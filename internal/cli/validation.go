package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AI2HU/geodash/internal/config"
)

// validateCronExpression validates a standard five field cron expression
func validateCronExpression(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("cron expression is required")
	}

	if _, err := cron.ParseStandard(input); err != nil {
		return "", fmt.Errorf("invalid cron expression: %s (%v)", input, err)
	}

	return input, nil
}

// validateBaseURL validates base URL input
func validateBaseURL(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("URL is required")
	}
	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		return "", fmt.Errorf("URL must start with http:// or https://")
	}
	return strings.TrimRight(input, "/"), nil
}

// validateSource validates the data source name
func validateSource(input string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	switch input {
	case config.SourceBackend, config.SourceMirror:
		return input, nil
	default:
		return "", fmt.Errorf("invalid source: %s (must be %s or %s)", input, config.SourceBackend, config.SourceMirror)
	}
}

// validateProvider validates the insights provider name; empty disables insights
func validateProvider(input string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	switch input {
	case "", "none":
		return "", nil
	case "openai", "google":
		return input, nil
	default:
		return "", fmt.Errorf("invalid provider: %s (must be openai, google or none)", input)
	}
}

// validateDays accepts a positive day count or "all"
func validateDays(input string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" || input == "all" {
		return "all", nil
	}
	n, err := strconv.Atoi(input)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid days: %s (enter a positive integer or 'all')", input)
	}
	return input, nil
}

// parseList splits a comma separated answer, dropping blanks
func parseList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// maskSensitiveData masks sensitive data for display
func maskSensitiveData(data string, maskChar string) string {
	if data == "" {
		return "(not set)"
	}
	if len(data) <= 8 {
		return strings.Repeat(maskChar, 3)
	}
	return data[:4] + "..." + data[len(data)-4:]
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}

// formatCount formats a count for display
func formatCount(count int) string {
	if count < 1000 {
		return fmt.Sprintf("%d", count)
	}
	if count < 1000000 {
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(count)/1000000)
}
