package locks

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func Test_Local_SecondAcquireFailsUntilRelease(t *testing.T) {
	locker := NewLocal()
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "recommendations", time.Hour)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "recommendations", time.Hour)
	assert.ErrorIs(t, err, ErrLocked)

	other, err := locker.Acquire(ctx, "sweep", time.Hour)
	require.NoError(t, err)
	other()

	release()
	release()

	again, err := locker.Acquire(ctx, "recommendations", time.Hour)
	require.NoError(t, err)
	again()
}

func Test_Local_ExpiredLockCanBeTaken(t *testing.T) {
	locker := NewLocal()
	ctx := context.Background()

	stale, err := locker.Acquire(ctx, "sweep", time.Millisecond)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	fresh, err := locker.Acquire(ctx, "sweep", time.Hour)
	require.NoError(t, err)

	stale()
	_, err = locker.Acquire(ctx, "sweep", time.Hour)
	assert.ErrorIs(t, err, ErrLocked)
	fresh()
}

func Test_NewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not-a-redis-url")
	assert.Error(t, err)
}
