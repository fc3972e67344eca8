package routing

import (
	"container/heap"

	"github.com/passbi/railnet/internal/models"
)

// Frontier is the open set of a search. Its discipline decides the search order.
type Frontier interface {
	Push(item *searchItem)
	Pop() *searchItem
	Len() int
}

// searchItem is one frontier entry. A station can be queued several times;
// entries whose label is worse than the station's current label are stale.
type searchItem struct {
	station  models.StationID
	label    float64
	priority float64
	seq      int
	index    int // for heap
}

// queueFrontier pops in insertion order (breadth-first)
type queueFrontier struct {
	items []*searchItem
	head  int
}

func newQueueFrontier() *queueFrontier {
	return &queueFrontier{}
}

func (q *queueFrontier) Push(item *searchItem) {
	q.items = append(q.items, item)
}

func (q *queueFrontier) Pop() *searchItem {
	item := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	return item
}

func (q *queueFrontier) Len() int {
	return len(q.items) - q.head
}

// priorityFrontier pops the lowest priority first, insertion order on ties
type priorityFrontier struct {
	pq  PriorityQueue
	seq int
}

func newPriorityFrontier() *priorityFrontier {
	f := &priorityFrontier{}
	heap.Init(&f.pq)
	return f
}

func (f *priorityFrontier) Push(item *searchItem) {
	item.seq = f.seq
	f.seq++
	heap.Push(&f.pq, item)
}

func (f *priorityFrontier) Pop() *searchItem {
	return heap.Pop(&f.pq).(*searchItem)
}

func (f *priorityFrontier) Len() int {
	return f.pq.Len()
}

// PriorityQueue implements heap.Interface for the best-first open set
type PriorityQueue []*searchItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].seq < pq[j].seq
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *PriorityQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*searchItem)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[0 : n-1]
	return item
}
