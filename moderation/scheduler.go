package moderation

import (
	"log"
	"sync"
	"time"

	"guardian-bot/database"
	"guardian-bot/models"
)

// ApplyFunc applies a moderation action to a subject.
type ApplyFunc func(guildID, subjectID, reason string) error

// ReverseFunc undoes a previously applied action. automatic is true when the
// scheduler fires the reversal itself rather than an operator cancelling.
type ReverseFunc func(guildID, subjectID string, automatic bool) error

type pendingReversal struct {
	timer   *time.Timer
	reverse ReverseFunc
	gen     uint64
}

// Scheduler applies a moderation action now and guarantees one automatic
// reversal attempt after the requested duration. Pending reversals are
// persisted as TempAction records so they survive a restart; Resume re-arms
// them. The scheduler has no kind-specific logic; composite actions are
// just apply/reverse pairs handed in by the caller.
type Scheduler struct {
	store *database.Store

	mu      sync.Mutex
	pending map[string]pendingReversal
	gen     uint64

	now func() time.Time
}

// NewScheduler creates a scheduler backed by the store.
func NewScheduler(store *database.Store) *Scheduler {
	return &Scheduler{
		store:   store,
		pending: make(map[string]pendingReversal),
		now:     time.Now,
	}
}

func actionKey(guildID, subjectID string, kind models.ActionKind) string {
	return guildID + "/" + subjectID + "/" + string(kind)
}

// Schedule applies the action synchronously and arms its reversal. If a
// reversal is already pending for the same (guild, subject, kind), it is
// replaced: the old timer is cancelled without reversing, then the new
// action is applied and a fresh timer started.
func (sc *Scheduler) Schedule(guildID, subjectID string, kind models.ActionKind, issuerID, reason string, duration time.Duration, apply ApplyFunc, reverse ReverseFunc) (models.TempAction, error) {
	if duration <= 0 || !kind.Valid() || guildID == "" || subjectID == "" {
		return models.TempAction{}, ErrValidation
	}

	key := actionKey(guildID, subjectID, kind)
	sc.mu.Lock()
	if p, ok := sc.pending[key]; ok {
		p.timer.Stop()
		delete(sc.pending, key)
	}
	sc.mu.Unlock()

	if err := apply(guildID, subjectID, reason); err != nil {
		return models.TempAction{}, err
	}

	now := sc.now()
	ta := models.TempAction{
		GuildID:    guildID,
		SubjectID:  subjectID,
		Kind:       kind,
		IssuerID:   issuerID,
		Reason:     reason,
		StartedAt:  now,
		Duration:   int64(duration / time.Second),
		ReversesAt: now.Add(duration),
	}
	if err := sc.store.PutTempAction(ta); err != nil {
		// The action is already applied; without the record a restart
		// would never reverse it. Arm the in-process timer anyway and
		// surface the failure.
		log.Printf("WARNING: applied %s for %s in guild %s but could not persist its reversal record: %v", kind, subjectID, guildID, err)
		sc.arm(ta, duration, reverse)
		return ta, err
	}

	sc.arm(ta, duration, reverse)
	return ta, nil
}

func (sc *Scheduler) arm(ta models.TempAction, d time.Duration, reverse ReverseFunc) {
	key := actionKey(ta.GuildID, ta.SubjectID, ta.Kind)
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.gen++
	gen := sc.gen
	timer := time.AfterFunc(d, func() { sc.fire(ta, gen) })
	sc.pending[key] = pendingReversal{timer: timer, reverse: reverse, gen: gen}
}

// fire runs when a timer expires. Removing the pending entry under the lock
// decides the race against Cancel: whichever side removes it performs the
// single reversal attempt. The generation token guards against a timer from
// a replaced action whose Stop came too late: if the key now belongs to a
// newer arm, the stale goroutine must not touch it.
func (sc *Scheduler) fire(ta models.TempAction, gen uint64) {
	key := actionKey(ta.GuildID, ta.SubjectID, ta.Kind)
	sc.mu.Lock()
	p, ok := sc.pending[key]
	if !ok || p.gen != gen {
		sc.mu.Unlock()
		return
	}
	delete(sc.pending, key)
	sc.mu.Unlock()

	if err := p.reverse(ta.GuildID, ta.SubjectID, true); err != nil {
		log.Printf("Automatic reversal of %s for %s in guild %s failed: %v", ta.Kind, ta.SubjectID, ta.GuildID, err)
	}
	// The record goes away even when the reversal failed; a ghost record
	// would block re-applying the same action later.
	if err := sc.store.DeleteTempAction(ta.GuildID, ta.SubjectID, ta.Kind); err != nil {
		log.Printf("Error removing temp action record for %s/%s/%s: %v", ta.GuildID, ta.SubjectID, ta.Kind, err)
	}
}

// Cancel reverses a pending action early, best-effort, and drops its record.
// Cancelling an action with nothing pending is a no-op.
func (sc *Scheduler) Cancel(guildID, subjectID string, kind models.ActionKind) error {
	key := actionKey(guildID, subjectID, kind)
	sc.mu.Lock()
	p, ok := sc.pending[key]
	if !ok {
		sc.mu.Unlock()
		return nil
	}
	p.timer.Stop()
	delete(sc.pending, key)
	sc.mu.Unlock()

	if err := p.reverse(guildID, subjectID, false); err != nil {
		log.Printf("Early reversal of %s for %s in guild %s failed: %v", kind, subjectID, guildID, err)
	}
	return sc.store.DeleteTempAction(guildID, subjectID, kind)
}

// Pending reports whether a reversal is armed for (guild, subject, kind).
func (sc *Scheduler) Pending(guildID, subjectID string, kind models.ActionKind) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	_, ok := sc.pending[actionKey(guildID, subjectID, kind)]
	return ok
}

// Resume reconciles persisted TempAction records after a restart: expired
// ones are reversed immediately, the rest get timers for their remaining
// duration. reversers maps each action kind to its reversal.
func (sc *Scheduler) Resume(reversers map[models.ActionKind]ReverseFunc) {
	for _, ta := range sc.store.TempActions() {
		reverse, ok := reversers[ta.Kind]
		if !ok {
			log.Printf("No reverser for persisted temp action kind %q; dropping record for %s/%s", ta.Kind, ta.GuildID, ta.SubjectID)
			if err := sc.store.DeleteTempAction(ta.GuildID, ta.SubjectID, ta.Kind); err != nil {
				log.Printf("Error removing orphan temp action record: %v", err)
			}
			continue
		}

		remaining := ta.ReversesAt.Sub(sc.now())
		if remaining <= 0 {
			if err := reverse(ta.GuildID, ta.SubjectID, true); err != nil {
				log.Printf("Reversal of expired %s for %s in guild %s failed: %v", ta.Kind, ta.SubjectID, ta.GuildID, err)
			}
			if err := sc.store.DeleteTempAction(ta.GuildID, ta.SubjectID, ta.Kind); err != nil {
				log.Printf("Error removing expired temp action record: %v", err)
			}
			continue
		}
		sc.arm(ta, remaining, reverse)
	}
}

// Stop cancels every armed timer without reversing anything, for shutdown.
// Records stay persisted so the next start resumes them.
func (sc *Scheduler) Stop() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	for key, p := range sc.pending {
		p.timer.Stop()
		delete(sc.pending, key)
	}
}
