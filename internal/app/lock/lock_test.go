package lock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "video2broll/internal/app/errors"
	"video2broll/internal/app/lock"
)

func TestMemoryLockerSerializesOneRecord(t *testing.T) {
	locker := lock.NewMemoryLocker()
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "media-1")
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "media-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindPreconditionFailed))

	release()

	release2, err := locker.Acquire(ctx, "media-1")
	require.NoError(t, err)
	release2()
}

func TestMemoryLockerIsPerRecord(t *testing.T) {
	locker := lock.NewMemoryLocker()
	ctx := context.Background()

	release1, err := locker.Acquire(ctx, "media-1")
	require.NoError(t, err)
	defer release1()

	release2, err := locker.Acquire(ctx, "media-2")
	require.NoError(t, err)
	defer release2()
}
