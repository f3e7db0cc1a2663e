package backend

import (
	"os"
	"path/filepath"

	"github.com/friedelschoen/scrawl"
)

/* sessionShouldPersist reports whether the active board's background
matches a mode SessionConfig is configured to persist across restarts
(spec.md §5 "session blob hand-off", gated by SessionConfig.Persist*). */
func sessionShouldPersist(cfg scrawl.Config, active *scrawl.Board) bool {
	if active.Background.Mode != scrawl.BackgroundSolid {
		return false
	}
	if active.Background.Color == cfg.Board.WhiteboardRGB {
		return cfg.Session.PersistOnWhiteboard
	}
	if active.Background.Color == cfg.Board.BlackboardRGB {
		return cfg.Session.PersistOnBlackboard
	}
	return false
}

func sessionPath(cfg scrawl.Config) string {
	dir := cfg.Session.CustomDirectory
	if dir == "" {
		dir = os.Getenv("XDG_STATE_HOME")
	}
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "scrawl-session.gob")
}

/* loadSession best-effort restores a prior BoardSet from disk; any
failure (missing file, corrupt blob, disabled storage mode) just falls
through to the fresh BoardSet Connect already built, matching spec.md §7's
"never fail startup over an optional collaborator." */
func loadSession(cfg scrawl.Config) (*scrawl.BoardSet, bool) {
	if cfg.Session.StorageMode != scrawl.StorageDisk {
		return nil, false
	}
	path := sessionPath(cfg)
	if path == "" {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	bs, err := scrawl.DecodeSession(data)
	if err != nil {
		tracerBackend().Infof("session restore: %v", err)
		return nil, false
	}
	return bs, true
}

/* saveSession persists the live BoardSet if the active board's background
opts in; MaxFileSizeMB caps the blob so a pathological shape count never
writes an unbounded file (spec.md §5). */
func saveSession(cfg scrawl.Config, bs *scrawl.BoardSet) {
	if cfg.Session.StorageMode != scrawl.StorageDisk {
		return
	}
	if !sessionShouldPersist(cfg, bs.Active()) {
		return
	}
	path := sessionPath(cfg)
	if path == "" {
		return
	}
	data, err := scrawl.EncodeSession(bs)
	if err != nil {
		tracerBackend().Errorf("session encode: %v", err)
		return
	}
	if cfg.Session.MaxFileSizeMB > 0 && len(data) > cfg.Session.MaxFileSizeMB*(1<<20) {
		tracerBackend().Infof("session blob exceeds %dMB, discarding", cfg.Session.MaxFileSizeMB)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		tracerBackend().Errorf("session dir: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tracerBackend().Errorf("session write: %v", err)
	}
}
