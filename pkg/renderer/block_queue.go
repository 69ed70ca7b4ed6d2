package renderer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/sampler"
)

// reportEvery is the number of completed blocks between timing reports
const reportEvery = 64

// BlockQueue hands out the tiles of a sampler to workers. Each tile is given
// to exactly one caller; the only synchronization is an atomic index.
type BlockQueue struct {
	blocks []sampler.Sampler
	next   atomic.Int64 // Index of the next block to hand out
	done   atomic.Int64 // Number of blocks reported finished

	mu        sync.Mutex // Guards the timing fields
	start     time.Time
	prev      time.Time
	totalTime time.Duration
	logger    core.Logger
}

// NewBlockQueue splits s into blocks of about bw×bh pixels
func NewBlockQueue(s sampler.Sampler, bw, bh int, logger core.Logger) *BlockQueue {
	if logger == nil {
		logger = core.NopLogger{}
	}
	now := time.Now()
	return &BlockQueue{
		blocks: s.Subsamplers(bw, bh),
		start:  now,
		prev:   now,
		logger: logger,
	}
}

// GetBlock returns the next block to work on, or nil when every block has
// been handed out. Safe for concurrent use.
func (q *BlockQueue) GetBlock() sampler.Sampler {
	idx := q.next.Add(1) - 1
	if idx >= int64(len(q.blocks)) {
		return nil
	}
	return q.blocks[idx]
}

// Done marks a block returned by GetBlock as finished. Every 64th completion
// and the last one log the time spent across completed blocks.
func (q *BlockQueue) Done(block sampler.Sampler) {
	if block == nil {
		return
	}
	done := q.done.Add(1)
	if done%reportEvery == 0 || done == int64(len(q.blocks)) {
		q.report(int(done))
	}
}

// report logs throughput since the previous report. Timing is best effort
// and does not affect which block is returned.
func (q *BlockQueue) report(done int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := time.Now()
	elapsed := now.Sub(q.prev)
	q.prev = now
	q.totalTime = now.Sub(q.start)
	q.logger.Printf("Finished block %d/%d (%.1f%%), %v since last report, %v total\n",
		done, len(q.blocks), 100*float64(done)/float64(len(q.blocks)),
		elapsed.Round(time.Millisecond), q.totalTime.Round(time.Millisecond))
}

// Len returns the number of blocks in the queue
func (q *BlockQueue) Len() int {
	return len(q.blocks)
}

// Dispatched returns how many blocks have been handed out
func (q *BlockQueue) Dispatched() int {
	return int(min(q.next.Load(), int64(len(q.blocks))))
}

// Completed returns how many blocks have been marked done
func (q *BlockQueue) Completed() int {
	return int(q.done.Load())
}

// TotalTime returns the wall clock time between queue creation and the last
// timing report, which follows the last completed block
func (q *BlockQueue) TotalTime() time.Duration {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.totalTime
}
