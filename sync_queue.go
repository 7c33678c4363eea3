// sync_queue.go - Deferred cross-processor side effects

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
Buy me a coffee: https://ko-fi.com/intuition/tip

License: GPLv3 or later
*/

/*
sync_queue.go - Inter-Processor Synchronization Queue

A register write performed in the middle of a slice may need to halt, reset
or interrupt a different processor. Applying that immediately would corrupt
the cycle accounting of the slice still in progress, so the write instead
aborts the running core (see CoreRunner.Abort) and queues a SyncRequest.
The frame scheduler drains the queue in FIFO order once the slice has
unwound and before it budgets the next one.

The queue is bounded. A push beyond capacity is rejected with
ErrSyncQueueFull rather than silently dropped.
*/

package main

import "errors"

const SYNC_QUEUE_CAPACITY = 16

var ErrSyncQueueFull = errors.New("sync queue full")

// SyncFunc is a deferred action with its integer argument.
type SyncFunc func(value int)

// SyncRequest is one pending deferred action.
type SyncRequest struct {
	Name     string
	Callback SyncFunc
	Value    int
}

// SyncQueue is a fixed-capacity FIFO of SyncRequests.
type SyncQueue struct {
	entries  [SYNC_QUEUE_CAPACITY]SyncRequest
	count    int
	rejected uint64
}

// Push appends req, or returns ErrSyncQueueFull if the queue is at capacity.
func (q *SyncQueue) Push(req SyncRequest) error {
	if q.count >= len(q.entries) {
		q.rejected++
		return ErrSyncQueueFull
	}
	q.entries[q.count] = req
	q.count++
	return nil
}

// Drain runs every queued request once, oldest first, and empties the queue.
// Requests pushed by a callback during the drain run in the same pass.
func (q *SyncQueue) Drain() int {
	n := 0
	for n < q.count {
		req := q.entries[n]
		q.entries[n] = SyncRequest{}
		req.Callback(req.Value)
		n++
	}
	q.count = 0
	return n
}

func (q *SyncQueue) Len() int { return q.count }

// Rejected returns how many pushes overflowed since creation.
func (q *SyncQueue) Rejected() uint64 { return q.rejected }
