package renamer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"romclerk/internal/logging"
	"romclerk/internal/planner"
	"romclerk/internal/services"
)

// Renamer applies planned renames inside a root directory. A file lock keeps
// concurrent invocations from renaming over each other.
type Renamer struct {
	logger   *slog.Logger
	lockPath string
	lock     *flock.Flock
}

// Applied pairs a plan item with the name it finally received on disk. The
// final name differs from the planned one when a collision suffix was added.
type Applied struct {
	Item      planner.Item
	FinalName string
}

// Failure describes one rename that could not be applied.
type Failure struct {
	Item planner.Item
	Err  error
}

// Outcome summarizes an apply pass. Failures do not abort the pass; every
// item is attempted once.
type Outcome struct {
	Applied []Applied
	Failed  []Failure
}

// Revert restores a previously applied rename. FromName is the name on disk
// now, ToName the name to restore.
type Revert struct {
	FromName string
	ToName   string
}

// RevertFailure describes one revert that could not be applied.
type RevertFailure struct {
	Revert Revert
	Err    error
}

// RevertOutcome summarizes an undo pass.
type RevertOutcome struct {
	Reverted []Revert
	Failed   []RevertFailure
}

// New constructs a Renamer guarded by a lock file at lockPath.
func New(logger *slog.Logger, lockPath string) *Renamer {
	return &Renamer{
		logger:   logging.NewComponentLogger(logger, "renamer"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
}

// Apply performs the planned renames sequentially. Each item is attempted
// once; failures are collected and the pass continues. Existing files are
// never overwritten: occupied targets get a " (N)" suffix before the
// extension, probing upward from 2.
func (r *Renamer) Apply(ctx context.Context, root string, items []planner.Item) (Outcome, error) {
	outcome := Outcome{}
	if len(items) == 0 {
		return outcome, nil
	}

	unlock, err := r.acquireLock()
	if err != nil {
		return outcome, err
	}
	defer unlock()

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}
		finalName, err := r.applyOne(root, item)
		if err != nil {
			r.logger.Warn("rename failed",
				logging.String("old_name", item.OldName),
				logging.String("new_name", item.NewName),
				logging.Error(err),
			)
			outcome.Failed = append(outcome.Failed, Failure{Item: item, Err: err})
			continue
		}
		r.logger.Info("renamed",
			logging.String("old_name", item.OldName),
			logging.String("new_name", finalName),
			logging.String("action", string(item.Action)),
		)
		outcome.Applied = append(outcome.Applied, Applied{Item: item, FinalName: finalName})
	}
	return outcome, nil
}

// Revert applies restores in the given order. Unlike Apply, an occupied
// target is a failure rather than a suffix candidate; restoring to any other
// name would falsify the journal.
func (r *Renamer) Revert(ctx context.Context, root string, reverts []Revert) (RevertOutcome, error) {
	outcome := RevertOutcome{}
	if len(reverts) == 0 {
		return outcome, nil
	}

	unlock, err := r.acquireLock()
	if err != nil {
		return outcome, err
	}
	defer unlock()

	for _, revert := range reverts {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}
		if err := r.revertOne(root, revert); err != nil {
			r.logger.Warn("revert failed",
				logging.String("from_name", revert.FromName),
				logging.String("to_name", revert.ToName),
				logging.Error(err),
			)
			outcome.Failed = append(outcome.Failed, RevertFailure{Revert: revert, Err: err})
			continue
		}
		r.logger.Info("reverted",
			logging.String("from_name", revert.FromName),
			logging.String("to_name", revert.ToName),
		)
		outcome.Reverted = append(outcome.Reverted, revert)
	}
	return outcome, nil
}

// LockPath returns the lock file location.
func (r *Renamer) LockPath() string {
	return r.lockPath
}

func (r *Renamer) acquireLock() (func(), error) {
	ok, err := r.lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrLocked, "rename", "acquire lock", "Failed to acquire rename lock", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrLocked, "rename", "acquire lock", "Another romclerk instance is renaming; wait for it to finish", nil)
	}
	return func() {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Warn("failed to release rename lock", logging.Error(err))
		}
	}, nil
}

func (r *Renamer) applyOne(root string, item planner.Item) (string, error) {
	oldPath := item.OldPath
	if oldPath == "" {
		oldPath = filepath.Join(root, item.OldName)
	}
	finalName, err := nextAvailableName(root, oldPath, item.NewName)
	if err != nil {
		return "", err
	}
	if err := os.Rename(oldPath, filepath.Join(root, finalName)); err != nil {
		return "", services.Wrap(services.ErrRename, "rename", "apply",
			fmt.Sprintf("Could not rename %s", item.OldName), err)
	}
	return finalName, nil
}

func (r *Renamer) revertOne(root string, revert Revert) error {
	source := filepath.Join(root, revert.FromName)
	target := filepath.Join(root, revert.ToName)

	if info, err := os.Stat(target); err == nil {
		sourceInfo, statErr := os.Stat(source)
		if statErr != nil || !os.SameFile(sourceInfo, info) {
			return services.Wrap(services.ErrRename, "undo", "restore",
				fmt.Sprintf("Target %s already exists", revert.ToName), nil)
		}
		// Same file under a case variant of the name; the rename is safe.
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", revert.ToName, err)
	}

	if err := os.Rename(source, target); err != nil {
		return services.Wrap(services.ErrRename, "undo", "restore",
			fmt.Sprintf("Could not rename %s", revert.FromName), err)
	}
	return nil
}

// nextAvailableName finds the first free variant of name inside root. The
// original name wins when unoccupied; otherwise " (N)" is inserted before
// the extension with N counting up from 2.
func nextAvailableName(root, oldPath, name string) (string, error) {
	const maxAttempts = 10000
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		candidate := name
		if attempt > 1 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, attempt, ext)
		}
		info, err := os.Stat(filepath.Join(root, candidate))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return candidate, nil
			}
			return "", err
		}
		if oldInfo, statErr := os.Stat(oldPath); statErr == nil && os.SameFile(oldInfo, info) {
			// The occupied slot is the source itself, seen through a
			// case-insensitive filesystem. Renaming onto it is fine.
			return candidate, nil
		}
	}
	return "", services.Wrap(services.ErrRename, "rename", "probe",
		fmt.Sprintf("No free name found for %s", name), nil)
}
