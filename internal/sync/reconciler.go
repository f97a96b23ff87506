// Package sync keeps the local database file and its GitHub mirror aligned:
// a one-shot reconciliation at boot and a best-effort push after mutations.
package sync

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"time"

	"github.com/favhome/deliveries/internal/logger"
	"github.com/favhome/deliveries/internal/mirror"
	"go.uber.org/zap"
)

// TimestampTolerance is the window within which the local file mtime and the
// remote commit time are considered equal. Races inside the window fall
// through to a content-digest comparison instead of picking a side.
const TimestampTolerance = time.Second

const backupTimeFormat = "20060102150405"

type Reconciler struct {
	client     mirror.ClientInterface
	dbPath     string
	remotePath string
}

func NewReconciler(client mirror.ClientInterface, dbPath, remotePath string) *Reconciler {
	return &Reconciler{
		client:     client,
		dbPath:     dbPath,
		remotePath: remotePath,
	}
}

// Run resolves divergence between the local database file and the remote
// mirror, once, before the server starts accepting requests. One side always
// fully replaces the other; a losing remote copy is archived first, never
// merged. Any mirror failure is logged and swallowed so boot proceeds with
// whatever local state exists.
func (r *Reconciler) Run(ctx context.Context) {
	if !r.client.Enabled() {
		logger.Log.Info("mirror sync disabled: token or repo not set")
		return
	}

	remote, found, err := r.client.Fetch(ctx)
	if err != nil {
		logger.Log.Warn("startup sync: remote fetch failed, continuing with local state", zap.Error(err))
		return
	}

	localBytes, localMod, localExists := r.readLocal()

	if !found {
		if !localExists {
			logger.Log.Info("startup sync: no local and no remote database, nothing to do")
			return
		}
		r.put(ctx, r.remotePath, localBytes, "startup sync: initial upload of local database", "")
		return
	}

	if !localExists {
		if err := os.WriteFile(r.dbPath, remote.Content, 0o644); err != nil {
			logger.Log.Error("startup sync: failed to write local database from remote", zap.Error(err))
			return
		}
		logger.Log.Info("startup sync: local database created from remote", zap.String("sha", remote.SHA))
		return
	}

	if remote.CommitTime != nil {
		remoteTime := *remote.CommitTime
		switch {
		case remoteTime.After(localMod.Add(TimestampTolerance)):
			if err := os.WriteFile(r.dbPath, remote.Content, 0o644); err != nil {
				logger.Log.Error("startup sync: failed to overwrite local database", zap.Error(err))
				return
			}
			logger.Log.Info("startup sync: local database replaced by newer remote",
				zap.Time("remote_commit", remoteTime), zap.Time("local_mtime", localMod))
			return
		case localMod.After(remoteTime.Add(TimestampTolerance)):
			r.archiveThenPush(ctx, remote, localBytes, "overwrite")
			return
		}
		// Within tolerance: fall through to the digest comparison.
	}

	if digest(localBytes) == digest(remote.Content) {
		logger.Log.Info("startup sync: local and remote databases identical")
		return
	}
	r.archiveThenPush(ctx, remote, localBytes, "conflict")
}

// archiveThenPush copies the current remote content to a timestamped backup
// path, then replaces the primary path with the local content. The backup
// write always happens first so the old remote history is never lost.
func (r *Reconciler) archiveThenPush(ctx context.Context, remote *mirror.RemoteFile, localBytes []byte, reason string) {
	timestamp := time.Now().UTC().Format(backupTimeFormat)
	backupPath := fmt.Sprintf("%s.bak.%s", r.remotePath, timestamp)

	r.put(ctx, backupPath, remote.Content,
		fmt.Sprintf("backup remote database before startup %s %s", reason, timestamp), "")
	r.put(ctx, r.remotePath, localBytes,
		fmt.Sprintf("startup sync: upload local database (%s) %s", reason, timestamp), remote.SHA)
}

func (r *Reconciler) put(ctx context.Context, path string, content []byte, message, sha string) {
	if err := r.client.Put(ctx, path, content, message, sha); err != nil {
		logger.Log.Warn("startup sync: upload failed",
			zap.String("path", path), zap.Error(err))
		return
	}
	logger.Log.Info("startup sync: uploaded", zap.String("path", path))
}

func (r *Reconciler) readLocal() ([]byte, time.Time, bool) {
	info, err := os.Stat(r.dbPath)
	if err != nil {
		return nil, time.Time{}, false
	}
	content, err := os.ReadFile(r.dbPath)
	if err != nil {
		logger.Log.Error("startup sync: failed to read local database", zap.Error(err))
		return nil, time.Time{}, false
	}
	return content, info.ModTime(), true
}

func digest(b []byte) string {
	sum := sha256.Sum256(b)
	return fmt.Sprintf("%x", sum)
}
