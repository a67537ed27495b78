package loadtest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		Users:      3,
		SpawnRate:  100,
		RunTime:    300 * time.Millisecond,
		MinWait:    time.Millisecond,
		MaxWait:    5 * time.Millisecond,
		CategoryID: 1,
	}
}

func TestEngineRunsUsersUntilRunTimeIsOver(t *testing.T) {
	created := httphelpers.HandlerWithResponse(200, nil, []byte(`{"productId":1}`))
	httphelpers.WithServer(productHandler(created), func(server *httptest.Server) {
		metrics := NewMetrics()
		engine, err := NewEngine(newTestClient(server.URL), DefaultWorkload(), metrics, testOptions(), nil)
		require.NoError(t, err)

		start := time.Now()
		require.NoError(t, engine.Run(context.Background()))
		assert.Less(t, time.Since(start), 2*time.Second)

		total := 0
		for _, s := range metrics.Summary() {
			total += s.Count
			assert.Zero(t, s.Failures, s.Name)
		}
		assert.Greater(t, total, 3)
	})
}

func TestEngineReturnsErrorWhenCancelled(t *testing.T) {
	httphelpers.WithServer(productHandler(httphelpers.HandlerWithStatus(500)), func(server *httptest.Server) {
		opts := testOptions()
		opts.RunTime = time.Minute
		engine, err := NewEngine(newTestClient(server.URL), DefaultWorkload(), NewMetrics(), opts, nil)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(50*time.Millisecond, cancel)
		assert.ErrorIs(t, engine.Run(ctx), context.Canceled)
	})
}

func TestEngineReturnsParentDeadline(t *testing.T) {
	httphelpers.WithServer(productHandler(httphelpers.HandlerWithStatus(200)), func(server *httptest.Server) {
		opts := testOptions()
		opts.RunTime = time.Minute
		engine, err := NewEngine(newTestClient(server.URL), DefaultWorkload(), NewMetrics(), opts, nil)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, engine.Run(ctx), context.DeadlineExceeded)
	})
}

func TestRunUserStopsWhenContextIsDone(t *testing.T) {
	httphelpers.WithServer(productHandler(httphelpers.HandlerWithStatus(200)), func(server *httptest.Server) {
		engine, err := NewEngine(newTestClient(server.URL), DefaultWorkload(), NewMetrics(), testOptions(), nil)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		u := NewUser(1, newTestClient(server.URL), &fakeRecorder{}, 1)
		assert.ErrorIs(t, engine.runUser(ctx, u, &sequenceSource{}), context.Canceled)
	})
}

func TestEngineOptionsValidation(t *testing.T) {
	for name, modify := range map[string]func(*Options){
		"no users":           func(o *Options) { o.Users = 0 },
		"no spawn rate":      func(o *Options) { o.SpawnRate = 0 },
		"no run time":        func(o *Options) { o.RunTime = 0 },
		"max wait below min": func(o *Options) { o.MaxWait = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			opts := testOptions()
			modify(&opts)
			_, err := NewEngine(nil, DefaultWorkload(), NewMetrics(), opts, nil)
			assert.Error(t, err)
		})
	}
}

func TestWaitTimeStaysInRange(t *testing.T) {
	e := &Engine{options: Options{MinWait: time.Second, MaxWait: 3 * time.Second}}
	src := &sequenceSource{}
	for i := 0; i < 100; i++ {
		d := e.waitTime(src)
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, 3*time.Second)
	}
}
