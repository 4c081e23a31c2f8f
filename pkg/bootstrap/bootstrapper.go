package bootstrap

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/hashicorp/go-multierror"
	"github.com/materials-commons/rosterbot/pkg/clog"
	"github.com/materials-commons/rosterbot/pkg/lock"
	"github.com/materials-commons/rosterbot/pkg/platform"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/model"
)

// Directory is the lookup side of the platform that bootstrap needs.
type Directory interface {
	BotUserID() string
	FindChannelByName(ctx context.Context, guildID, name string) (string, error)
	RecentMessages(ctx context.Context, channelID string, limit int) ([]platform.PostedMessage, error)
}

// Bootstrapper puts the entry point messages in place when a guild becomes
// available. An entry point counts as present when one of the last
// scanLimit messages in its channel was sent by the bot and carries the
// entry point's button. Older entry messages are not seen and a new one is
// sent.
type Bootstrapper struct {
	dir         Directory
	platform    platform.Platform
	entryPoints []EntryPoint
	scanLimit   int
	locker      *lock.IdLocker
}

func NewBootstrapper(dir Directory, p platform.Platform, scanLimit int, entryPoints ...EntryPoint) *Bootstrapper {
	return &Bootstrapper{
		dir:         dir,
		platform:    p,
		entryPoints: entryPoints,
		scanLimit:   scanLimit,
		locker:      lock.NewIdLocker(),
	}
}

// EnsureEntryPoints checks every entry point in guildID. A failure for one
// entry point does not stop the others.
func (b *Bootstrapper) EnsureEntryPoints(ctx context.Context, guildID string) error {
	var result *multierror.Error
	for _, ep := range b.entryPoints {
		if err := b.ensure(ctx, guildID, ep); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func (b *Bootstrapper) ensure(ctx context.Context, guildID string, ep EntryPoint) error {
	l := clog.UsingCtx(clog.BootstrapCtx).WithFields(log.Fields{"guild": guildID, "channel": ep.ChannelName})

	channelID, err := b.dir.FindChannelByName(ctx, guildID, ep.ChannelName)
	if err != nil {
		l.Warnf("Entry channel not available: %s", err)
		return fmt.Errorf("finding channel %q: %w", ep.ChannelName, err)
	}

	return b.locker.WithLock(channelID, func() error {
		msgs, err := b.dir.RecentMessages(ctx, channelID, b.scanLimit)
		if err != nil {
			l.Errorf("Unable to read channel history: %s", err)
			return fmt.Errorf("reading history of %q: %w", ep.ChannelName, err)
		}

		botID := b.dir.BotUserID()
		for i := range msgs {
			if msgs[i].AuthorID == botID && msgs[i].HasButton(ep.Button.CustomID) {
				l.Debugf("Entry message %s already present", msgs[i].MessageID)
				return nil
			}
		}

		dest := platform.Destination{ChannelID: channelID, Visibility: model.VisibilityPublic}
		ref, err := b.platform.SendMessage(ctx, dest, ep.Message())
		if err != nil {
			l.Errorf("Unable to send entry message: %s", err)
			return fmt.Errorf("sending entry message to %q: %w", ep.ChannelName, err)
		}

		l.WithField("message", ref.MessageID).Infof("Sent entry message")
		return nil
	})
}
