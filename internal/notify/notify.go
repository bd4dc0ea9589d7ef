package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notification is what fires when a reminder comes due.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Scheduler schedules one-shot local notifications. Schedule returns an id
// usable with Cancel until the notification fires.
type Scheduler interface {
	Schedule(at time.Time, n Notification) (string, error)
	Cancel(id string)
}

// LocalScheduler keeps pending timers in memory and hands the fired
// notification to a delivery callback. Pending entries do not survive a
// process restart.
type LocalScheduler struct {
	mu      sync.Mutex
	pending map[string]*time.Timer
	deliver func(id string, n Notification)
	log     *zap.SugaredLogger
}

func NewLocalScheduler(deliver func(id string, n Notification), log *zap.SugaredLogger) *LocalScheduler {
	if deliver == nil {
		deliver = func(string, Notification) {}
	}
	return &LocalScheduler{
		pending: make(map[string]*time.Timer),
		deliver: deliver,
		log:     log,
	}
}

func (s *LocalScheduler) Schedule(at time.Time, n Notification) (string, error) {
	id := uuid.NewString()
	d := time.Until(at)
	if d < 0 {
		d = 0
	}

	s.mu.Lock()
	s.pending[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
		s.log.Infow("reminder fired", "id", id, "title", n.Title)
		s.deliver(id, n)
	})
	s.mu.Unlock()
	return id, nil
}

func (s *LocalScheduler) Cancel(id string) {
	s.mu.Lock()
	t, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if ok {
		t.Stop()
	}
}

// PendingCount reports how many notifications are still scheduled.
func (s *LocalScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
