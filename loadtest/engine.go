package loadtest

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/selimhorri/ecommerce-contract-tests/gateway"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Default wait between two tasks of the same user.
const (
	DefaultMinWait = time.Second
	DefaultMaxWait = 3 * time.Second
)

// Options controls the shape of a load run.
type Options struct {
	Users      int           `validate:"gt=0"`
	SpawnRate  float64       `validate:"gt=0"`
	RunTime    time.Duration `validate:"gt=0"`
	MinWait    time.Duration `validate:"gte=0"`
	MaxWait    time.Duration `validate:"gtefield=MinWait"`
	CategoryID int
}

var validate = validator.New()

// Engine starts virtual users at a fixed rate and lets them run until the run time is over.
type Engine struct {
	client   *gateway.Client
	workload Workload
	recorder Recorder
	options  Options
	logger   log.FieldLogger
}

// NewEngine validates options and creates an Engine. A nil logger discards log output.
func NewEngine(client *gateway.Client, workload Workload, recorder Recorder, options Options, logger log.FieldLogger) (*Engine, error) {
	if err := validate.Struct(options); err != nil {
		return nil, err
	}
	if logger == nil {
		l := log.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Engine{
		client:   client,
		workload: workload,
		recorder: recorder,
		options:  options,
		logger:   logger,
	}, nil
}

// Run blocks until the run time has elapsed or ctx is cancelled. Reaching the end of the run
// time is not an error; cancellation of ctx is.
func (e *Engine) Run(ctx context.Context) error {
	runCtx, cancel := context.WithTimeout(ctx, e.options.RunTime)
	defer cancel()
	g, runCtx := errgroup.WithContext(runCtx)

	spawnInterval := time.Duration(float64(time.Second) / e.options.SpawnRate)
	seed := time.Now().UnixNano()
	for i := 0; i < e.options.Users; i++ {
		if i > 0 && sleep(runCtx, spawnInterval) != nil {
			break
		}
		user := NewUser(i+1, e.client, e.recorder, e.options.CategoryID)
		rnd := rand.New(rand.NewSource(seed + int64(i)))
		e.logger.WithField("user", user.ID).Debug("Starting virtual user")
		g.Go(func() error {
			return e.runUser(runCtx, user, rnd)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return nil
	}
	return err
}

// runUser runs tasks until ctx is done, and returns why it stopped.
func (e *Engine) runUser(ctx context.Context, u *User, rnd RandomSource) error {
	for {
		task := e.workload.Pick(rnd)
		task.Run(ctx, u)
		if err := sleep(ctx, e.waitTime(rnd)); err != nil {
			return err
		}
	}
}

func (e *Engine) waitTime(rnd RandomSource) time.Duration {
	spread := e.options.MaxWait - e.options.MinWait
	if spread <= 0 {
		return e.options.MinWait
	}
	return e.options.MinWait + time.Duration(rnd.Int63n(int64(spread)+1))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
