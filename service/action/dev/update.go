package dev

import (
	"context"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/svcrun/model/result"
	"github.com/viant/svcrun/service/action"
)

// lockFile pins the fully resolved dependency set; update regenerates it.
const lockFile = "requirements.lock"

// update upgrades the pinned dependencies and regenerates the lock file,
// reporting the changes as a unified diff.
func (s *Service) update(ctx context.Context, args []string) (bool, error) {
	if !s.project.Venv.Exists() {
		return s.reportMissingVenv(ctx, "Update")
	}
	aggregate := result.NewAggregate()
	if !s.project.HasFile("requirements.txt") {
		failure := result.NewFailure("update", args, "requirements.txt not found", 1)
		if err := action.Record(ctx, aggregate, "requirements", failure); err != nil {
			return false, err
		}
		return action.Report(s.reporter, "Update", aggregate)
	}

	upgrade, err := s.runner.Run(ctx, s.pythonCommand(append([]string{"-m", "pip", "install", "--upgrade", "-r", "requirements.txt"}, args...)...))
	if err != nil {
		return false, err
	}
	if err := action.Record(ctx, aggregate, "pip-upgrade", upgrade); err != nil {
		return false, err
	}
	if upgrade.Success {
		freeze, err := s.runner.Run(ctx, s.pythonCommand("-m", "pip", "freeze"))
		if err != nil {
			return false, err
		}
		record := freeze
		if freeze.Success {
			record = s.refreshLock(freeze.Output)
		}
		if err := action.Record(ctx, aggregate, "lockfile", record); err != nil {
			return false, err
		}
	}
	return action.Report(s.reporter, "Update", aggregate)
}

// refreshLock rewrites the lock file from the frozen dependency set and
// returns a record carrying the unified diff against the previous pins.
func (s *Service) refreshLock(frozen string) *result.Execution {
	path := s.project.Path(lockFile)
	previous, _ := os.ReadFile(path)
	if string(previous) == frozen {
		return result.NewSuccess("lockfile", nil, lockFile+" is up to date")
	}
	if err := os.WriteFile(path, []byte(frozen), 0o644); err != nil {
		return result.NewFailure("lockfile", nil, "failed to write "+lockFile+": "+err.Error(), 1)
	}
	diffText, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(previous)),
		B:        difflib.SplitLines(frozen),
		FromFile: lockFile,
		ToFile:   lockFile,
		Context:  3,
	})
	if err != nil {
		diffText = "diff unavailable: " + err.Error()
	}
	return result.NewSuccess("lockfile", nil, "updated "+lockFile+"\n"+diffText)
}
