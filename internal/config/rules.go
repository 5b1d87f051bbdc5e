package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmlabs-hris/branch-salary-etl/internal/domain/attendance"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// shiftRulesFile mirrors the YAML layout. Omitted keys keep their defaults.
type shiftRulesFile struct {
	EarlyCheckOutCutoff string `yaml:"early_checkout_cutoff"`
	EarlyCheckIn        string `yaml:"early_checkin"`
	DefaultCheckIn      string `yaml:"default_checkin"`
	DayCheckInCutoff    string `yaml:"day_checkin_cutoff"`
	DayCheckOut         string `yaml:"day_checkout"`
	NightCheckOut       string `yaml:"night_checkout"`
}

// LoadShiftRules returns the default rules when path is empty, otherwise the
// defaults overlaid with the values in the YAML file at path.
func LoadShiftRules(path string) (attendance.ShiftRules, error) {
	rules := attendance.DefaultShiftRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read shift rules %s: %w", path, err)
	}
	return ParseShiftRules(data)
}

func ParseShiftRules(data []byte) (attendance.ShiftRules, error) {
	rules := attendance.DefaultShiftRules()

	var raw shiftRulesFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return rules, fmt.Errorf("%w: %v", attendance.ErrInvalidShiftRules, err)
	}

	fields := []struct {
		key   string
		value string
		dst   *attendance.TimeOfDay
	}{
		{"early_checkout_cutoff", raw.EarlyCheckOutCutoff, &rules.EarlyCheckOutCutoff},
		{"early_checkin", raw.EarlyCheckIn, &rules.EarlyCheckIn},
		{"default_checkin", raw.DefaultCheckIn, &rules.DefaultCheckIn},
		{"day_checkin_cutoff", raw.DayCheckInCutoff, &rules.DayCheckInCutoff},
		{"day_checkout", raw.DayCheckOut, &rules.DayCheckOut},
		{"night_checkout", raw.NightCheckOut, &rules.NightCheckOut},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		t, err := attendance.ParseTimeOfDay(f.value)
		if err != nil {
			return rules, fmt.Errorf("%w: %s: %v", attendance.ErrInvalidShiftRules, f.key, err)
		}
		*f.dst = t
	}

	if err := rules.Validate(); err != nil {
		return rules, err
	}
	return rules, nil
}

// WatchShiftRules reloads the rules file whenever it changes and hands the
// result to onChange. The parent directory is watched so editors and
// deploy tools that replace the file by rename are picked up. A file that
// fails to load is logged and skipped, leaving the previous rules active.
// It runs until ctx is cancelled.
func WatchShiftRules(ctx context.Context, path string, onChange func(attendance.ShiftRules)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	slog.Info("Watching shift rules", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			rules, err := LoadShiftRules(target)
			if err != nil {
				slog.Error("Shift rules reload failed, keeping previous rules", "path", target, "error", err)
				continue
			}

			slog.Info("Shift rules reloaded", "path", target)
			onChange(rules)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Shift rules watcher error", "error", err)
		}
	}
}
