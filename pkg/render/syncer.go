package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/hashicorp/go-multierror"
	"github.com/materials-commons/rosterbot/pkg/clog"
	"github.com/materials-commons/rosterbot/pkg/platform"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/stor"
)

// Syncer keeps the messages bound to a user in step with their team. Each
// slot is reconciled on its own with an edit-or-recreate policy: the bound
// message is fetched and edited in place, and if anything about that fails
// the binding is dropped and a new message is sent and bound instead.
type Syncer struct {
	platform    platform.Platform
	bindingStor stor.BindingStor
	mode        Mode
}

func NewSyncer(p platform.Platform, bindingStor stor.BindingStor, mode Mode) *Syncer {
	return &Syncer{platform: p, bindingStor: bindingStor, mode: mode}
}

func (s *Syncer) Mode() Mode {
	return s.mode
}

// Sync renders team and reconciles the list, overflow and status slots for
// ownerID. New messages are created at dest. The returned error aggregates
// the slots that could not be brought up to date, it is meant for logging.
func (s *Syncer) Sync(ctx context.Context, ownerID string, dest platform.Destination, team *model.Team, status string) error {
	view := RenderTeam(team, s.mode, status)
	dest.Visibility = s.mode.Visibility

	var result *multierror.Error
	for _, slot := range model.AllSlots {
		msg, wanted := view.Slot(slot)

		var err error
		if wanted {
			err = s.syncSlot(ctx, ownerID, slot, dest, msg)
		} else {
			err = s.clearSlot(ctx, ownerID, slot)
		}

		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s slot: %w", slot, err))
		}
	}

	return result.ErrorOrNil()
}

func (s *Syncer) syncSlot(ctx context.Context, ownerID string, slot model.Slot, dest platform.Destination, msg platform.Message) error {
	l := s.logger(ownerID, slot)

	binding, err := s.bindingStor.GetBinding(ownerID, slot)
	switch {
	case err == nil:
		editErr := s.editInPlace(ctx, binding.Ref, msg)
		if editErr == nil {
			return nil
		}

		l.WithField("message", binding.Ref.MessageID).Infof("Bound message is stale, replacing it: %s", editErr)

		if err := s.bindingStor.DeleteBinding(ownerID, slot); err != nil {
			return err
		}

	case !errors.Is(err, stor.ErrNoBinding):
		return err
	}

	ref, err := s.platform.SendMessage(ctx, dest, msg)
	if err != nil {
		l.Errorf("Unable to send replacement message: %s", err)
		return err
	}

	return s.bindingStor.PutBinding(&model.Binding{OwnerID: ownerID, Slot: slot, Ref: ref})
}

func (s *Syncer) editInPlace(ctx context.Context, ref model.MessageRef, msg platform.Message) error {
	if _, err := s.platform.FetchMessage(ctx, ref); err != nil {
		return err
	}

	return s.platform.EditMessage(ctx, ref, msg)
}

// clearSlot removes a bound message when the view no longer has anything to
// show in slot. Failing to delete the message still drops the binding.
func (s *Syncer) clearSlot(ctx context.Context, ownerID string, slot model.Slot) error {
	binding, err := s.bindingStor.GetBinding(ownerID, slot)
	switch {
	case errors.Is(err, stor.ErrNoBinding):
		return nil
	case err != nil:
		return err
	}

	if err := s.platform.DeleteMessage(ctx, binding.Ref); err != nil && !platform.IsNotFound(err) {
		s.logger(ownerID, slot).WithField("message", binding.Ref.MessageID).Warnf("Unable to delete message: %s", err)
	}

	return s.bindingStor.DeleteBinding(ownerID, slot)
}

func (s *Syncer) logger(ownerID string, slot model.Slot) *log.Entry {
	return clog.UsingCtx(clog.RenderCtx).WithFields(log.Fields{"user": ownerID, "slot": slot})
}
