package domain

import "math/rand/v2"

// Queue is a FIFO sequence of pending tracks. Tracks are removed as the
// sequencer consumes them; the currently playing track is not part of the
// queue.
type Queue struct {
	tracks []*Track
}

// NewQueue creates a new empty Queue.
func NewQueue() Queue {
	return Queue{
		tracks: make([]*Track, 0),
	}
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// Len returns the number of pending tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// Append adds track(s) to the end of the queue.
func (q *Queue) Append(tracks ...*Track) {
	q.tracks = append(q.tracks, tracks...)
}

// PopFront removes and returns the first track, or nil if the queue is empty.
func (q *Queue) PopFront() *Track {
	if q.IsEmpty() {
		return nil
	}
	track := q.tracks[0]
	q.tracks = q.tracks[1:]
	return track
}

// List returns a copy of all pending tracks in order.
func (q *Queue) List() []*Track {
	result := make([]*Track, q.Len())
	copy(result, q.tracks)
	return result
}

// Shuffle randomly permutes the pending tracks.
func (q *Queue) Shuffle() {
	rand.Shuffle(len(q.tracks), func(i, j int) {
		q.tracks[i], q.tracks[j] = q.tracks[j], q.tracks[i]
	})
}

// Clear removes all pending tracks. Clearing an empty queue is a no-op.
func (q *Queue) Clear() {
	q.tracks = make([]*Track, 0)
}
