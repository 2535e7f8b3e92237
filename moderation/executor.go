package moderation

import (
	"database/sql"
	"log"
	"time"

	"guardian-bot/database"
	"guardian-bot/models"
	"guardian-bot/notify"
)

// Executor runs the idempotent apply/reverse pairs behind every moderation
// command. It mutates the platform through the actuator, records durable
// facts in the store, and reports each executed action.
type Executor struct {
	actuator Actuator
	store    *database.Store
	auditDB  *sql.DB
	notifier notify.Notifier
}

// NewExecutor wires an executor. auditDB may be nil to disable the audit
// trail.
func NewExecutor(act Actuator, store *database.Store, auditDB *sql.DB, notifier notify.Notifier) *Executor {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &Executor{actuator: act, store: store, auditDB: auditDB, notifier: notifier}
}

// Mute assigns the muted role to the subject.
func (e *Executor) Mute(guildID, subjectID, issuerID, reason string) error {
	if err := e.actuator.ApplyRestriction(guildID, subjectID, models.ActionMute, reason); err != nil {
		return err
	}
	e.recordApplied(guildID, subjectID, issuerID, "mute", reason)
	return nil
}

// Unmute removes the muted role from the subject.
func (e *Executor) Unmute(guildID, subjectID string, automatic bool) error {
	if err := e.actuator.RemoveRestriction(guildID, subjectID, models.ActionMute); err != nil {
		return err
	}
	e.recordReversed(guildID, subjectID, "unmute", automatic)
	return nil
}

// Jail assigns the jailed role and persists the jail record. The record is
// independent of any temp action, so a jail can be indefinite.
func (e *Executor) Jail(guildID, subjectID, issuerID, reason string) error {
	if err := e.actuator.ApplyRestriction(guildID, subjectID, models.ActionJail, reason); err != nil {
		return err
	}
	if err := e.store.PutJail(guildID, subjectID, models.JailRecord{JailedAt: time.Now()}); err != nil {
		log.Printf("WARNING: jailed %s in guild %s but failed to persist the jail record: %v", subjectID, guildID, err)
		return err
	}
	e.recordApplied(guildID, subjectID, issuerID, "jail", reason)
	return nil
}

// Unjail removes the jailed role and clears the jail record.
func (e *Executor) Unjail(guildID, subjectID string, automatic bool) error {
	if err := e.actuator.RemoveRestriction(guildID, subjectID, models.ActionJail); err != nil {
		return err
	}
	if err := e.store.DeleteJail(guildID, subjectID); err != nil {
		return err
	}
	e.recordReversed(guildID, subjectID, "unjail", automatic)
	return nil
}

// Ban bans the subject. Ban state is tracked by the platform itself; no
// durable fact beyond an eventual TempAction is recorded here.
func (e *Executor) Ban(guildID, subjectID, issuerID, reason string) error {
	if err := e.actuator.Ban(guildID, subjectID, reason); err != nil {
		return err
	}
	e.recordApplied(guildID, subjectID, issuerID, "ban", reason)
	return nil
}

// Unban lifts a ban by subject ID.
func (e *Executor) Unban(guildID, subjectID string, automatic bool) error {
	if err := e.actuator.Unban(guildID, subjectID); err != nil {
		return err
	}
	e.recordReversed(guildID, subjectID, "unban", automatic)
	return nil
}

func (e *Executor) recordApplied(guildID, subjectID, issuerID, action, reason string) {
	e.audit(guildID, subjectID, issuerID, action, reason)
	e.notifier.ActionApplied(guildID, action, subjectID, issuerID, reason)
}

func (e *Executor) recordReversed(guildID, subjectID, action string, automatic bool) {
	e.audit(guildID, subjectID, "", action, "")
	kind := action[2:] // unmute -> mute, unjail -> jail, unban -> ban
	e.notifier.ActionReversed(guildID, kind, subjectID, automatic)
}

func (e *Executor) audit(guildID, subjectID, issuerID, action, reason string) {
	if e.auditDB == nil {
		return
	}
	if err := database.RecordAction(e.auditDB, guildID, subjectID, issuerID, action, reason); err != nil {
		log.Printf("Error recording audit entry (%s %s): %v", action, subjectID, err)
	}
}
