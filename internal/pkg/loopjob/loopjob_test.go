package loopjob

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/meoying/dlock-go"
	"github.com/stretchr/testify/assert"
)

type fakeLock struct {
	lockErr   error
	refreshes atomic.Int32
	unlocked  atomic.Bool
}

func (f *fakeLock) Lock(context.Context) error { return f.lockErr }

func (f *fakeLock) Unlock(context.Context) error {
	f.unlocked.Store(true)
	return nil
}

func (f *fakeLock) Refresh(context.Context) error {
	f.refreshes.Add(1)
	return nil
}

type fakeClient struct {
	mu    sync.Mutex
	locks []*fakeLock
	next  func() *fakeLock
}

func (f *fakeClient) NewLock(context.Context, string, time.Duration) (dlock.Lock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := f.next()
	f.locks = append(f.locks, l)
	return l, nil
}

func TestInfiniteLoop_Run(t *testing.T) {
	t.Parallel()

	client := &fakeClient{next: func() *fakeLock { return &fakeLock{} }}
	ctx, cancel := context.WithCancel(context.Background())
	var rounds atomic.Int32
	loop := NewInfiniteLoop(client, func(context.Context) error {
		if rounds.Add(1) == 3 {
			cancel()
		}
		return nil
	}, Config{Key: "test", RetryInterval: time.Millisecond})

	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("循环没有退出")
	}

	assert.Equal(t, int32(3), rounds.Load())
	client.mu.Lock()
	defer client.mu.Unlock()
	assert.Len(t, client.locks, 1)
	assert.Equal(t, int32(2), client.locks[0].refreshes.Load())
	assert.True(t, client.locks[0].unlocked.Load())
}

func TestInfiniteLoop_LockHeldByOthers(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var attempts atomic.Int32
	client := &fakeClient{next: func() *fakeLock {
		if attempts.Add(1) == 3 {
			cancel()
		}
		return &fakeLock{lockErr: errors.New("locked")}
	}}
	loop := NewInfiniteLoop(client, func(context.Context) error {
		t.Error("没有拿到锁不应该执行业务")
		return nil
	}, Config{Key: "test", RetryInterval: time.Millisecond})

	loop.Run(ctx)
	assert.GreaterOrEqual(t, attempts.Load(), int32(3))
}
