package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/materials-commons/rosterbot/pkg/bootstrap"
	"github.com/materials-commons/rosterbot/pkg/clog"
	"github.com/materials-commons/rosterbot/pkg/config"
	"github.com/materials-commons/rosterbot/pkg/platform/discord"
	"github.com/materials-commons/rosterbot/pkg/render"
	"github.com/materials-commons/rosterbot/pkg/rosterdb/stor"
	"github.com/materials-commons/rosterbot/pkg/router"
	"github.com/spf13/cobra"
)

var envFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rosterbotd",
	Short: "Discord bot for registering tournament teams",
	Long: `rosterbotd connects to Discord and lets users register a team and manage
a roster of up to six players through buttons and forms. The roster view
is kept up to date in the channel (or privately, in ephemeral mode) after
every change. State lives in memory for the lifetime of the process.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := envFile
		if path == "" {
			path = os.Getenv(config.DotenvPathKey)
		}

		c := config.NewDotenvConfig(path)
		if err := c.Load(); err != nil {
			log.Fatalf("Failed loading configuration: %s", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := Run(ctx, c); err != nil {
			log.Fatalf("rosterbotd: %s", err)
		}
	},
}

// Run wires the bot together and blocks until ctx is done.
func Run(ctx context.Context, c config.Configer) error {
	cfg, err := config.LoadBotConfig(c)
	if err != nil {
		return err
	}

	clog.Install()
	if err := clog.SetDefaultLevelFromString(cfg.LogLevel); err != nil {
		return fmt.Errorf("setting log level: %w", err)
	}

	stors, err := stor.NewMemdbStors()
	if err != nil {
		return err
	}

	adapter, err := discord.NewAdapter(cfg.Token)
	if err != nil {
		return err
	}

	syncer := render.NewSyncer(adapter, stors.BindingStor, cfg.Mode)
	rtr := router.NewRouter(adapter, stors.RosterStor, syncer, cfg.MyIDChannel)
	dispatcher := router.NewDispatcher(rtr, cfg.DispatchQueueSize)
	bootstrapper := bootstrap.NewBootstrapper(adapter, adapter, cfg.BootstrapScanLimit,
		bootstrap.RegisterEntryPoint(cfg.RegisterChannel),
		bootstrap.MyIDEntryPoint(cfg.MyIDChannel))

	onGuild := func(ctx context.Context, guildID string) {
		if err := bootstrapper.EnsureEntryPoints(ctx, guildID); err != nil {
			clog.UsingCtx(clog.BootstrapCtx).WithField("guild", guildID).Errorf("Entry points incomplete: %s", err)
		}
	}

	dispatchDone := make(chan struct{})
	go func() {
		dispatcher.Run(ctx)
		close(dispatchDone)
	}()

	if err := adapter.Start(ctx, dispatcher, onGuild, bootstrap.SlashCommands()); err != nil {
		dispatcher.Close()
		return err
	}

	log.Infof("rosterbotd running, roster mode %s", cfg.Mode)

	<-ctx.Done()
	log.Infof("Shutting down...")

	if err := adapter.Close(); err != nil {
		log.Warnf("Closing discord session: %s", err)
	}
	<-dispatchDone

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load (default $ROSTERBOT_DOTENV_PATH)")
}
