package ringnode

import (
	"sync"

	"ringquorum/internal/identifier"
	"ringquorum/internal/logger"
)

// routingEntry guards a single NodeInfo pointer with its own lock, so
// one finger can be read or rewritten without blocking access to the
// others.
type routingEntry struct {
	node identifier.NodeInfo
	mu   sync.RWMutex
}

// FingerTable holds the Chord routing state a ring node maintains about
// itself: its predecessor and its m finger-table shortcuts, finger[0]
// being the immediate successor.
type FingerTable struct {
	logger      logger.Logger
	space       identifier.Space
	self        identifier.NodeInfo
	fingers     []*routingEntry
	predecessor *routingEntry
}

// Option customizes a FingerTable at construction time.
type Option func(*FingerTable)

// WithLogger attaches a logger used for finger-table mutations.
func WithLogger(l logger.Logger) Option {
	return func(ft *FingerTable) { ft.logger = l }
}

// New creates a FingerTable for self with m == space.Bits fingers, all
// entries unset (zero NodeInfo) until Join or InitSingleNode fills them.
func New(self identifier.NodeInfo, space identifier.Space, opts ...Option) *FingerTable {
	ft := &FingerTable{
		self:        self,
		space:       space,
		fingers:     make([]*routingEntry, space.Bits),
		predecessor: &routingEntry{},
		logger:      logger.NopLogger{},
	}
	for i := range ft.fingers {
		ft.fingers[i] = &routingEntry{}
	}
	for _, opt := range opts {
		opt(ft)
	}
	return ft
}

// InitSingleNode points every finger and the predecessor at self, the
// state of a freshly started ring with exactly one member.
func (ft *FingerTable) InitSingleNode() {
	for _, entry := range ft.fingers {
		entry.mu.Lock()
		entry.node = ft.self
		entry.mu.Unlock()
	}
	ft.predecessor.mu.Lock()
	ft.predecessor.node = ft.self
	ft.predecessor.mu.Unlock()
	ft.logger.Debug("finger table initialized as single-node ring")
}

// Self returns the node that owns this table.
func (ft *FingerTable) Self() identifier.NodeInfo { return ft.self }

// Space returns the identifier space this table routes over.
func (ft *FingerTable) Space() identifier.Space { return ft.space }

// M returns the number of finger entries (the ring's bit width).
func (ft *FingerTable) M() int { return len(ft.fingers) }

// Finger returns the i-th finger entry.
func (ft *FingerTable) Finger(i int) identifier.NodeInfo {
	if i < 0 || i >= len(ft.fingers) {
		ft.logger.Warn("Finger: index out of range", logger.F("requested", i))
		return identifier.NodeInfo{}
	}
	entry := ft.fingers[i]
	entry.mu.RLock()
	node := entry.node
	entry.mu.RUnlock()
	return node
}

// Successor is a convenience alias for Finger(0).
func (ft *FingerTable) Successor() identifier.NodeInfo { return ft.Finger(0) }

// SetFinger overwrites the i-th finger entry.
func (ft *FingerTable) SetFinger(i int, node identifier.NodeInfo) {
	if i < 0 || i >= len(ft.fingers) {
		ft.logger.Warn("SetFinger: index out of range", logger.F("requested", i))
		return
	}
	entry := ft.fingers[i]
	entry.mu.Lock()
	entry.node = node
	entry.mu.Unlock()
	ft.logger.Debug("SetFinger: updated", logger.F("index", i), logger.FNode("node", node))
}

// SetSuccessor is a convenience alias for SetFinger(0, node).
func (ft *FingerTable) SetSuccessor(node identifier.NodeInfo) { ft.SetFinger(0, node) }

// Predecessor returns the current predecessor.
func (ft *FingerTable) Predecessor() identifier.NodeInfo {
	ft.predecessor.mu.RLock()
	node := ft.predecessor.node
	ft.predecessor.mu.RUnlock()
	return node
}

// SetPredecessor overwrites the predecessor pointer.
func (ft *FingerTable) SetPredecessor(node identifier.NodeInfo) {
	ft.predecessor.mu.Lock()
	ft.predecessor.node = node
	ft.predecessor.mu.Unlock()
	ft.logger.Debug("SetPredecessor: updated", logger.FNode("predecessor", node))
}

// ClosestPrecedingFinger scans fingers from the highest index down and
// returns the first one that lies strictly between self and key,
// excluding both endpoints. If none qualifies, it falls back to the
// immediate successor.
func (ft *FingerTable) ClosestPrecedingFinger(key identifier.ID) identifier.NodeInfo {
	for i := len(ft.fingers) - 1; i >= 0; i-- {
		candidate := ft.Finger(i)
		if candidate.IsZero() {
			continue
		}
		if candidate.ID.InOpenClosed(ft.self.ID, key) && !candidate.ID.Equal(key) && !candidate.ID.Equal(ft.self.ID) {
			return candidate
		}
	}
	return ft.Successor()
}

// DebugLog emits a single structured snapshot of the table's state.
func (ft *FingerTable) DebugLog() {
	pred := ft.Predecessor()
	fingers := make([]map[string]any, 0, len(ft.fingers))
	for i := range ft.fingers {
		f := ft.Finger(i)
		if f.IsZero() {
			fingers = append(fingers, map[string]any{"index": i, "node": nil})
			continue
		}
		fingers = append(fingers, map[string]any{"index": i, "id": f.ID.String(), "addr": f.Addr})
	}
	ft.logger.Debug("finger table snapshot",
		logger.FNode("self", ft.self),
		logger.FNode("predecessor", pred),
		logger.F("fingers", fingers),
	)
}
