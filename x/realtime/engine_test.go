package realtime

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ironfellow/companion/core"
	"github.com/ironfellow/companion/core/mock"
)

const campaignPath = "/campaigns/c1"

type recorder struct {
	mu      sync.Mutex
	views   []core.View
	errs    []error
	changed chan struct{}
}

func newRecorder() *recorder {
	return &recorder{changed: make(chan struct{}, 64)}
}

func (r *recorder) onSnapshot(view core.View) {
	r.mu.Lock()
	r.views = append(r.views, view)
	r.mu.Unlock()
	r.changed <- struct{}{}
}

func (r *recorder) onError(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
	r.changed <- struct{}{}
}

func (r *recorder) snapshotCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func (r *recorder) errorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

func (r *recorder) supplies() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	supplies := make([]int, 0, len(r.views))
	for _, view := range r.views {
		if len(view.Entities) == 1 {
			supplies = append(supplies, view.Entities[0].Value.(core.Campaign).Supply)
		}
	}
	return supplies
}

func campaignSnapshot(supply int) core.Snapshot {
	return core.Snapshot{
		Path:   campaignPath,
		Exists: true,
		Documents: []core.Document{
			{
				Path: campaignPath,
				Data: []byte(fmt.Sprintf(`{"name":"Ironlands","supply":%d,"lastUpdatedTimestamp":{"seconds":1700000000,"nanoseconds":0}}`, supply)),
			},
		},
	}
}

// remoteListener captures the channel the engine passes to RemoteStore.Subscribe.
type remoteListener struct {
	snapshots chan chan<- core.Snapshot
	stopped   chan struct{}
	fail      chan error
}

func newRemoteListener() *remoteListener {
	return &remoteListener{
		snapshots: make(chan chan<- core.Snapshot, 1),
		stopped:   make(chan struct{}),
		fail:      make(chan error, 1),
	}
}

func (r *remoteListener) subscribe(ctx context.Context, path string, snapshots chan<- core.Snapshot) error {
	r.snapshots <- snapshots
	select {
	case <-ctx.Done():
		close(r.stopped)
		return nil
	case err := <-r.fail:
		return err
	}
}

func waitFor(t *testing.T, r *recorder) {
	t.Helper()
	select {
	case <-r.changed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestSubscribeDeliversNormalizedSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := newRemoteListener()
	mockStore := mock_core.NewMockRemoteStore(ctrl)
	mockStore.EXPECT().Subscribe(gomock.Any(), campaignPath, gomock.Any()).DoAndReturn(remote.subscribe)

	engine := NewEngine(mockStore, core.DefaultConfig())

	rec := newRecorder()
	sub, err := engine.Subscribe(context.Background(), "campaigns/c1", rec.onSnapshot, rec.onError)
	if !assert.NoError(t, err) {
		return
	}
	defer sub.Cancel()
	assert.Equal(t, campaignPath, sub.Path())

	ch := <-remote.snapshots
	ch <- campaignSnapshot(3)
	waitFor(t, rec)

	rec.mu.Lock()
	view := rec.views[0]
	rec.mu.Unlock()

	assert.Equal(t, core.KindCampaign, view.Kind)
	if assert.Len(t, view.Entities, 1) {
		campaign := view.Entities[0].Value.(core.Campaign)
		assert.Equal(t, "c1", campaign.ID)
		assert.Equal(t, 3, campaign.Supply)
		assert.True(t, campaign.LastUpdated.Equal(time.Unix(1700000000, 0)))
	}

	cached, ok := engine.Cached(campaignPath)
	assert.True(t, ok)
	assert.Equal(t, view, cached)
}

func TestSubscribeDeliversInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := newRemoteListener()
	mockStore := mock_core.NewMockRemoteStore(ctrl)
	mockStore.EXPECT().Subscribe(gomock.Any(), campaignPath, gomock.Any()).DoAndReturn(remote.subscribe)

	engine := NewEngine(mockStore, core.DefaultConfig())

	rec := newRecorder()
	sub, err := engine.Subscribe(context.Background(), campaignPath, rec.onSnapshot, rec.onError)
	if !assert.NoError(t, err) {
		return
	}
	defer sub.Cancel()

	ch := <-remote.snapshots
	for i := 0; i < 10; i++ {
		ch <- campaignSnapshot(i)
	}

	assert.Eventually(t, func() bool { return rec.snapshotCount() == 10 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, rec.supplies())
}

func TestConsumersShareOneListener(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := newRemoteListener()
	mockStore := mock_core.NewMockRemoteStore(ctrl)
	mockStore.EXPECT().Subscribe(gomock.Any(), campaignPath, gomock.Any()).DoAndReturn(remote.subscribe).Times(1)

	engine := NewEngine(mockStore, core.DefaultConfig())

	first := newRecorder()
	firstSub, err := engine.Subscribe(context.Background(), campaignPath, first.onSnapshot, first.onError)
	if !assert.NoError(t, err) {
		return
	}
	second := newRecorder()
	secondSub, err := engine.Subscribe(context.Background(), campaignPath, second.onSnapshot, second.onError)
	if !assert.NoError(t, err) {
		return
	}

	metrics := engine.GetMetrics()
	assert.Equal(t, int64(1), metrics["listeners"])
	assert.Equal(t, int64(2), metrics["consumers"])

	ch := <-remote.snapshots
	ch <- campaignSnapshot(1)
	waitFor(t, first)
	waitFor(t, second)

	firstSub.Cancel()
	firstSub.Cancel()

	ch <- campaignSnapshot(2)
	waitFor(t, second)
	assert.Equal(t, []int{1}, first.supplies())
	assert.Equal(t, []int{1, 2}, second.supplies())

	secondSub.Cancel()

	select {
	case <-remote.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("remote listener was not stopped after the last consumer cancelled")
	}

	_, ok := engine.Cached(campaignPath)
	assert.False(t, ok)
	assert.Equal(t, int64(0), engine.GetMetrics()["listeners"])
}

func TestLateConsumerReceivesCachedView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := newRemoteListener()
	mockStore := mock_core.NewMockRemoteStore(ctrl)
	mockStore.EXPECT().Subscribe(gomock.Any(), campaignPath, gomock.Any()).DoAndReturn(remote.subscribe).Times(1)

	engine := NewEngine(mockStore, core.DefaultConfig())

	first := newRecorder()
	firstSub, err := engine.Subscribe(context.Background(), campaignPath, first.onSnapshot, first.onError)
	if !assert.NoError(t, err) {
		return
	}
	defer firstSub.Cancel()

	ch := <-remote.snapshots
	ch <- campaignSnapshot(4)
	waitFor(t, first)

	late := newRecorder()
	lateSub, err := engine.Subscribe(context.Background(), campaignPath, late.onSnapshot, late.onError)
	if !assert.NoError(t, err) {
		return
	}
	defer lateSub.Cancel()

	waitFor(t, late)
	assert.Equal(t, []int{4}, late.supplies())
}

func TestSubscribeThenCancelDeliversNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := newRemoteListener()
	mockStore := mock_core.NewMockRemoteStore(ctrl)
	mockStore.EXPECT().Subscribe(gomock.Any(), campaignPath, gomock.Any()).DoAndReturn(remote.subscribe).Times(1)

	engine := NewEngine(mockStore, core.DefaultConfig())

	rec := newRecorder()
	sub, err := engine.Subscribe(context.Background(), campaignPath, rec.onSnapshot, rec.onError)
	if !assert.NoError(t, err) {
		return
	}
	sub.Cancel()

	// a change that was already in flight when Cancel returned
	select {
	case ch := <-remote.snapshots:
		ch <- campaignSnapshot(9)
	case <-time.After(2 * time.Second):
		t.Fatal("remote listener was never opened")
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, rec.snapshotCount())
	assert.Equal(t, 0, rec.errorCount())
	_, ok := engine.Cached(campaignPath)
	assert.False(t, ok)
}

func TestCancelFromOwnCallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := newRemoteListener()
	mockStore := mock_core.NewMockRemoteStore(ctrl)
	mockStore.EXPECT().Subscribe(gomock.Any(), campaignPath, gomock.Any()).DoAndReturn(remote.subscribe).Times(1)

	engine := NewEngine(mockStore, core.DefaultConfig())

	var (
		mu  sync.Mutex
		sub core.Subscription
	)
	cancelled := make(chan struct{})
	rec := newRecorder()
	onSnapshot := func(view core.View) {
		rec.onSnapshot(view)
		mu.Lock()
		s := sub
		mu.Unlock()
		s.Cancel()
		close(cancelled)
	}

	mu.Lock()
	s, err := engine.Subscribe(context.Background(), campaignPath, onSnapshot, rec.onError)
	sub = s
	mu.Unlock()
	if !assert.NoError(t, err) {
		return
	}

	ch := <-remote.snapshots
	ch <- campaignSnapshot(1)

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("Cancel did not return when called from the snapshot callback")
	}

	select {
	case <-remote.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("remote listener was not stopped after the callback cancelled")
	}

	assert.Equal(t, []int{1}, rec.supplies())
	assert.Equal(t, int64(0), engine.GetMetrics()["listeners"])
}

func TestCancelDuringBlockedDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := newRemoteListener()
	mockStore := mock_core.NewMockRemoteStore(ctrl)
	mockStore.EXPECT().Subscribe(gomock.Any(), campaignPath, gomock.Any()).DoAndReturn(remote.subscribe).Times(1)

	engine := NewEngine(mockStore, core.DefaultConfig())

	// keeps the listener open after the blocked consumer cancels
	other := newRecorder()
	otherSub, err := engine.Subscribe(context.Background(), campaignPath, other.onSnapshot, other.onError)
	if !assert.NoError(t, err) {
		return
	}
	defer otherSub.Cancel()

	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	blocked := newRecorder()
	onSnapshot := func(view core.View) {
		blocked.onSnapshot(view)
		entered <- struct{}{}
		<-release
	}
	sub, err := engine.Subscribe(context.Background(), campaignPath, onSnapshot, blocked.onError)
	if !assert.NoError(t, err) {
		return
	}

	ch := <-remote.snapshots
	ch <- campaignSnapshot(1)

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	cancelled := make(chan struct{})
	go func() {
		sub.Cancel()
		close(cancelled)
	}()

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("Cancel waited on a running callback")
	}

	go func() { ch <- campaignSnapshot(2) }()
	close(release)

	assert.Eventually(t, func() bool { return other.snapshotCount() == 2 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []int{1}, blocked.supplies())
	assert.Equal(t, int64(1), engine.GetMetrics()["consumers"])
}

func TestContextCancellationEndsSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := newRemoteListener()
	mockStore := mock_core.NewMockRemoteStore(ctrl)
	mockStore.EXPECT().Subscribe(gomock.Any(), campaignPath, gomock.Any()).DoAndReturn(remote.subscribe)

	engine := NewEngine(mockStore, core.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	rec := newRecorder()
	_, err := engine.Subscribe(ctx, campaignPath, rec.onSnapshot, rec.onError)
	if !assert.NoError(t, err) {
		cancel()
		return
	}
	<-remote.snapshots

	cancel()

	select {
	case <-remote.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("remote listener was not stopped after the context was cancelled")
	}
}

func TestRemoteErrorReportedOncePerConsumer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := newRemoteListener()
	mockStore := mock_core.NewMockRemoteStore(ctrl)
	mockStore.EXPECT().Subscribe(gomock.Any(), campaignPath, gomock.Any()).DoAndReturn(remote.subscribe).Times(1)

	engine := NewEngine(mockStore, core.DefaultConfig())

	first := newRecorder()
	firstSub, err := engine.Subscribe(context.Background(), campaignPath, first.onSnapshot, first.onError)
	if !assert.NoError(t, err) {
		return
	}
	second := newRecorder()
	_, err = engine.Subscribe(context.Background(), campaignPath, second.onSnapshot, second.onError)
	if !assert.NoError(t, err) {
		return
	}

	ch := <-remote.snapshots
	ch <- campaignSnapshot(1)
	remote.fail <- core.NewErrorPermissionDenied()

	assert.Eventually(t, func() bool {
		return first.errorCount() == 1 && second.errorCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// buffered snapshot emitted before the failure is still delivered first
	assert.Equal(t, []int{1}, first.supplies())

	first.mu.Lock()
	assert.True(t, errors.Is(first.errs[0], core.ErrorPermissionDenied{}))
	first.mu.Unlock()

	firstSub.Cancel()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, first.errorCount())
	assert.Equal(t, 1, second.errorCount())

	_, ok := engine.Cached(campaignPath)
	assert.False(t, ok)
	assert.Equal(t, int64(0), engine.GetMetrics()["listeners"])
	assert.Equal(t, int64(1), engine.GetMetrics()["remote_errors"])
}

func TestMalformedDocumentTerminatesSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	remote := newRemoteListener()
	mockStore := mock_core.NewMockRemoteStore(ctrl)
	mockStore.EXPECT().Subscribe(gomock.Any(), campaignPath, gomock.Any()).DoAndReturn(remote.subscribe)

	engine := NewEngine(mockStore, core.DefaultConfig())

	rec := newRecorder()
	_, err := engine.Subscribe(context.Background(), campaignPath, rec.onSnapshot, rec.onError)
	if !assert.NoError(t, err) {
		return
	}

	ch := <-remote.snapshots
	ch <- core.Snapshot{
		Path:      campaignPath,
		Exists:    true,
		Documents: []core.Document{{Path: campaignPath, Data: []byte(`{"supply":"many"}`)}},
	}

	waitFor(t, rec)
	assert.Equal(t, 1, rec.errorCount())
	assert.Equal(t, 0, rec.snapshotCount())

	select {
	case <-remote.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("remote listener was not stopped after a malformed snapshot")
	}
}

func TestSubscribeRejectsMalformedPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := NewEngine(mock_core.NewMockRemoteStore(ctrl), core.DefaultConfig())

	_, err := engine.Subscribe(context.Background(), "/campaigns//c1", nil, nil)
	assert.True(t, errors.Is(err, core.ErrorValidation{}))
}
