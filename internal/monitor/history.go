package monitor

// DefaultHistorySize is how many total-CPU readings the dashboard keeps.
const DefaultHistorySize = 60

// History is a fixed-size ring of total CPU percentages, one per tick,
// feeding the title sparkline. It is only touched from the model goroutine.
type History struct {
	data  []float64
	head  int
	count int
}

// NewHistory creates a history holding up to size readings.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{data: make([]float64, size)}
}

// Push records a reading, overwriting the oldest once full.
func (h *History) Push(value float64) {
	h.data[h.head] = value
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

// Last returns up to n readings in chronological order (oldest first).
func (h *History) Last(n int) []float64 {
	if h == nil || n <= 0 || h.count == 0 {
		return nil
	}
	if n > h.count {
		n = h.count
	}

	out := make([]float64, n)
	// head is the next write position, so the newest value sits at head-1.
	start := (h.head - n + len(h.data)) % len(h.data)
	for i := 0; i < n; i++ {
		out[i] = h.data[(start+i)%len(h.data)]
	}
	return out
}

// Len returns how many readings are stored.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return h.count
}
