package checkin

import (
	"context"
	"errors"
	"sync"
	"vcheck/internal/checkin/interfaces"
	"vcheck/internal/models"
	"vcheck/internal/providers"
)

var (
	ErrAlreadyStarted = errors.New("checkin channel already started")
	ErrChannelFailed  = errors.New("checkin channel writer failed")
)

// Channel is one named checkin stream: a queue drained by a single consumer
// goroutine that exclusively owns the channel's RotatingWriter.
type Channel struct {
	name    string
	queue   *Queue
	writer  *RotatingWriter
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	mu       sync.Mutex
	started  bool
	stopped  bool
	cancel   context.CancelFunc
	drainCtx context.Context
	done     chan struct{}
	err      error
}

func NewChannel(name, baseDir string, clock interfaces.Clock, logger providers.Logger, metrics providers.MetricsProviderInterface) *Channel {
	return &Channel{
		name:    name,
		queue:   NewQueue(),
		writer:  NewRotatingWriter(baseDir, name, clock),
		logger:  logger,
		metrics: metrics,
		done:    make(chan struct{}),
	}
}

func (c *Channel) Name() string {
	return c.name
}

// Enqueue hands record to the consumer. It never blocks; records sent to a
// failed channel stay queued and are counted as dropped on Stop.
func (c *Channel) Enqueue(record models.CheckinRecord) {
	c.queue.Enqueue(record)
	c.metrics.IncCheckinsEnqueued(c.name)
	c.metrics.SetQueueDepth(c.name, c.queue.Len())
}

// Start creates the channel directory and launches the consumer.
func (c *Channel) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrAlreadyStarted
	}

	created, err := c.writer.Prepare()
	if err != nil {
		return err
	}
	if created {
		c.logger.Warnf(providers.TypeCheckin, "Log directory %s didn't exist: created it", c.writer.Dir())
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.drainCtx = context.Background()
	c.started = true
	c.metrics.SetChannelFailed(c.name, false)
	go c.run(runCtx)

	c.logger.Infof(providers.TypeCheckin, "Checkin channel %s started, writing to %s", c.name, c.writer.Dir())
	return nil
}

// Stop cancels the consumer, lets it drain what is queued until ctx expires,
// and waits for the open file to be closed.
func (c *Channel) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return nil
	}
	if c.stopped {
		c.mu.Unlock()
		<-c.done
		return c.Err()
	}
	c.stopped = true
	c.drainCtx = ctx
	cancel := c.cancel
	c.mu.Unlock()

	cancel()

	select {
	case <-c.done:
	case <-ctx.Done():
		c.logger.Errorf(providers.TypeCheckin, "Checkin channel %s did not stop in time: %s", c.name, ctx.Err())
		c.countDropped()
		return ctx.Err()
	}

	c.countDropped()
	return c.Err()
}

// countDropped accounts for records still queued once the consumer stops writing.
func (c *Channel) countDropped() {
	if left := c.queue.Len(); left > 0 {
		c.logger.Warnf(providers.TypeCheckin, "Checkin channel %s stopped with %d unwritten checkins", c.name, left)
		c.metrics.AddCheckinsDropped(c.name, left)
	}
}

func (c *Channel) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Channel) Status() models.ChannelStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := models.ChannelStatus{
		Name:       c.name,
		QueueDepth: c.queue.Len(),
		Failed:     c.err != nil,
	}
	if c.err != nil {
		st.Error = c.err.Error()
	}
	select {
	case <-c.done:
	default:
		st.Running = c.started
	}
	return st
}

func (c *Channel) run(ctx context.Context) {
	defer close(c.done)
	defer c.closeWriter()

	for ctx.Err() == nil {
		record, err := c.queue.Dequeue(ctx)
		if err != nil {
			break
		}
		if !c.write(record) {
			return
		}
	}

	c.drain()
}

// drain writes whatever is still queued after cancellation, bounded by the
// context passed to Stop.
func (c *Channel) drain() {
	c.mu.Lock()
	ctx := c.drainCtx
	c.mu.Unlock()

	for ctx.Err() == nil {
		record, ok := c.queue.TryDequeue()
		if !ok {
			return
		}
		if !c.write(record) {
			return
		}
	}
}

func (c *Channel) write(record models.CheckinRecord) bool {
	rotated, err := c.writer.Write(record)
	if rotated {
		c.metrics.IncRotations(c.name)
		c.logger.Infof(providers.TypeCheckin, "Rotated %s checkin log to %s", c.name, c.writer.CurrentDate())
	}
	if err != nil {
		c.fail(err)
		c.metrics.AddCheckinsDropped(c.name, 1)
		return false
	}
	c.metrics.IncCheckinsWritten(c.name)
	c.metrics.SetQueueDepth(c.name, c.queue.Len())
	return true
}

func (c *Channel) fail(err error) {
	c.mu.Lock()
	c.err = errors.Join(ErrChannelFailed, err)
	c.mu.Unlock()

	c.metrics.SetChannelFailed(c.name, true)
	c.logger.Errorf(providers.TypeCheckin, "Checkin channel %s stopped: %s", c.name, err)
}

func (c *Channel) closeWriter() {
	if err := c.writer.Close(); err != nil {
		c.logger.Errorf(providers.TypeCheckin, "Checkin channel %s: %s", c.name, err)
	}
}
