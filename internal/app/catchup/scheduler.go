package catchup

import (
	"context"
	"log"
	"sync"
	"time"

	"petverse/internal/app/ports"
)

// Scheduler periodically settles every stored pet so events land near the
// tick that produced them even when the owner is offline. Correctness never
// depends on it running; any read or action settles on demand.
type Scheduler struct {
	UseCase   UseCase
	StateRepo ports.PetStateRepository
	Interval  time.Duration
	Logger    *log.Logger

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewScheduler(uc UseCase, repo ports.PetStateRepository, interval time.Duration, logger *log.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		UseCase:   uc,
		StateRepo: repo,
		Interval:  interval,
		Logger:    logger,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go s.run()
}

// Stop blocks until the in-flight sweep, if any, finishes.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep settles each owner in its own transaction; one failing owner never
// blocks the rest. Version conflicts are expected when an owner request
// races the sweep and are safe to skip.
func (s *Scheduler) sweep() {
	ctx := context.Background()
	owners, err := s.StateRepo.ListOwnerIDs(ctx)
	if err != nil {
		s.Logger.Printf("catchup sweep: list owners: %v", err)
		return
	}
	for _, ownerID := range owners {
		select {
		case <-s.stop:
			return
		default:
		}
		if _, err := s.UseCase.Execute(ctx, Request{OwnerID: ownerID}); err != nil {
			s.Logger.Printf("catchup sweep: owner %s: %v", ownerID, err)
		}
	}
}
