/*
Package profile coordinates the Credential Store and the Image Store to replace a
user's profile image.

The ordering is fixed: the new file is stored first, the reference is swapped in one
database transaction, and only after that commits is the previous file removed.
The reference therefore never points at a missing file; the cost is that an old or
rejected file may linger until its scheduled removal runs.
*/
package profile

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"profilehub/internal/app/storage"
	"profilehub/internal/pkg/logx"
	"profilehub/internal/pkg/metrics"
)

// RemovalTimeout bounds each scheduled file removal.
const RemovalTimeout = 10 * time.Second

// ImageStore admits and removes image files.
type ImageStore interface {
	Accept(ctx context.Context, up storage.Upload) (string, error)
	Remove(ctx context.Context, name string)
}

// ImageRefSetter atomically swaps a user's image reference and returns the previous one.
type ImageRefSetter interface {
	SetProfileImage(ctx context.Context, id uuid.UUID, filename string) (string, error)
}

// Replacer runs the profile image replacement protocol.
type Replacer struct {
	images  ImageStore
	users   ImageRefSetter
	metrics *metrics.Collector

	wg sync.WaitGroup
}

// NewReplacer creates a Replacer. collector may be nil.
func NewReplacer(images ImageStore, users ImageRefSetter, collector *metrics.Collector) *Replacer {
	return &Replacer{
		images:  images,
		users:   users,
		metrics: collector,
	}
}

// Replace stores up as the new profile image of userID and returns its file name.
//
// A rejected upload returns the storage error and leaves the database untouched.
// If the reference cannot be written (including user.ErrNotFound), the freshly
// stored file is scheduled for removal and the error is returned. On success the
// previous file, if any, is scheduled for removal; that removal never affects the
// result.
func (rp *Replacer) Replace(ctx context.Context, userID uuid.UUID, up storage.Upload) (string, error) {
	name, err := rp.images.Accept(ctx, up)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidType) || errors.Is(err, storage.ErrTooLarge) {
			rp.metrics.RecordUpload(metrics.ResultRejected)
		} else {
			rp.metrics.RecordUpload(metrics.ResultFailure)
		}
		return "", err
	}

	// The swap must finish or roll back even if the client goes away.
	previous, err := rp.users.SetProfileImage(context.WithoutCancel(ctx), userID, name)
	if err != nil {
		rp.metrics.RecordUpload(metrics.ResultFailure)
		rp.schedule(name, "unreferenced upload")
		return "", err
	}

	rp.metrics.RecordUpload(metrics.ResultSuccess)
	logx.Info("Profile image replaced", "user_id", userID, "filename", name, "previous", previous)

	if previous != "" && previous != name {
		rp.schedule(previous, "replaced image")
	}

	return name, nil
}

// Discard schedules removal of a file that no record references anymore,
// such as the image of a deleted account.
func (rp *Replacer) Discard(name string) {
	if name == "" {
		return
	}
	rp.schedule(name, "orphaned image")
}

// Wait blocks until every scheduled removal has finished.
func (rp *Replacer) Wait() {
	rp.wg.Wait()
}

// schedule removes name in the background with its own timeout. Errors stay
// inside the Image Store, which logs and counts them.
func (rp *Replacer) schedule(name, reason string) {
	rp.wg.Add(1)
	go func() {
		defer rp.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), RemovalTimeout)
		defer cancel()

		logx.Logger().Debug().Str("filename", name).Str("reason", reason).Msg("Removing image file")
		rp.images.Remove(ctx, name)
	}()
}
