package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	pkg "git.solsynth.dev/hypernet/yatube/pkg/internal"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/cache"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/events"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/api"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" __   __    _         _\n \\ \\ / /_ _| |_ _   _| |__   ___\n  \\ V / _` | __| | | | '_ \\ / _ \\\n   | | (_| | |_| |_| | |_) |  __/\n   |_|\\__,_|\\__|\\__,_|_.__/ \\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Hypernet.Yatube"), pkg.AppVersion)
	fmt.Printf("The social blogging feeds in Hypernet\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("yatube")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("bind", "0.0.0.0:8445")
	viper.SetDefault("feed.page_size", services.DefaultPageSize)
	viper.SetDefault("feed.likers_preview", services.DefaultLikersPreview)
	viper.SetDefault("cache.following_ttl", services.DefaultFollowingCacheTTL)
	viper.SetDefault("cleanup.retention", 24*time.Hour)

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}
	if viper.GetBool("debug.log") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	secret := []byte(viper.GetString("security.jwt_secret"))
	if len(secret) == 0 {
		log.Fatal().Msg("No jwt secret was configured, set security.jwt_secret to continue.")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Initialize cache
	if err := cache.NewStore(viper.GetString("cache.redis_addr")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Connect to message broker
	var publisher events.Publisher = events.Nop{}
	if url := viper.GetString("nats.url"); len(url) > 0 {
		if nc, err := events.NewNatsPublisher(url); err != nil {
			log.Error().Err(err).Msg("An error occurred when connecting to nats. Events will not be published.")
		} else {
			defer nc.Close()
			publisher = nc
			log.Info().Str("url", url).Msg("Connected to nats.")
		}
	}

	// Wire services
	directory := services.NewDirectory(database.C)
	posts := services.NewPostRepository(database.C)
	comments := services.NewCommentRepository(database.C)
	store := services.NewRelationshipStore(database.C)
	relations := services.NewCachedRelationships(store, cache.S, viper.GetDuration("cache.following_ttl"))
	composer := services.NewFeedComposer(posts, directory, relations, services.FeedComposerConfig{
		PageSize:      viper.GetInt("feed.page_size"),
		LikersPreview: viper.GetInt("feed.likers_preview"),
	})
	interactions := services.NewInteractions(composer, posts, relations, directory, publisher)

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", func() {
		deadline := time.Now().Add(-viper.GetDuration("cleanup.retention"))
		if count, err := posts.PurgeDeletedPosts(context.Background(), deadline); err != nil {
			log.Error().Err(err).Msg("An error occurred when purging deleted posts...")
		} else {
			log.Info().Int64("count", count).Msg("Deleted posts purged.")
		}
	})
	quartz.Start()

	// Server
	server := http.NewServer(secret, directory, &api.Handlers{
		Interactions: interactions,
		Directory:    directory,
		Posts:        posts,
		Relations:    store,
		Comments:     comments,
	})
	go server.Listen()
	log.Info().Str("bind", viper.GetString("bind")).Msg("Server started.")

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("An error occurred when shutting down server...")
	}
}
