package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bookgrove/bookgrove/catalog"
	"github.com/bookgrove/bookgrove/config"
	"github.com/bookgrove/bookgrove/log"
	"github.com/bookgrove/bookgrove/server"
	"github.com/bookgrove/bookgrove/store"
	"github.com/bookgrove/bookgrove/store/db"
	"github.com/bookgrove/bookgrove/util"
	"github.com/bookgrove/bookgrove/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	greetingBanner = `
██████   ██████   ██████  ██   ██  ██████  ██████   ██████  ██    ██ ███████
██   ██ ██    ██ ██    ██ ██  ██  ██       ██   ██ ██    ██ ██    ██ ██
██████  ██    ██ ██    ██ █████   ██   ███ ██████  ██    ██ ██    ██ █████
██   ██ ██    ██ ██    ██ ██  ██  ██    ██ ██   ██ ██    ██  ██  ██  ██
██████   ██████   ██████  ██   ██  ██████  ██   ██  ██████    ████   ███████`
)

var (
	configFile string
	host       string
	port       int
	data       string

	rootCmd = &cobra.Command{
		Use:   "bookgrove",
		Short: "Bookgrove is a community book catalog with ratings and reviews",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			database, err := db.NewDB()
			if err != nil {
				log.Error("Error connecting to database", zap.Error(err))
				return
			}
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return
			}

			s := store.NewStore(database.DB)
			if err := s.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return
			}

			c := catalog.NewCatalog(s)
			if err := c.Refresh(); err != nil {
				log.Error("Error building catalog snapshot", zap.Error(err))
				return
			}

			pool := worker.NewRefreshPool(c, config.Opts.WorkerPoolSize)

			httpServer, err := server.StartServer(ctx, s, c, pool)
			if err != nil {
				log.Error("Error starting server", zap.Error(err))
				return
			}

			fmt.Println(greetingBanner)
			log.Info("Server started",
				zap.String("host", config.Opts.Host),
				zap.Int("port", config.Opts.Port))

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			log.Info("Shutting down server")
			if err := httpServer.Shutdown(ctx); err != nil {
				log.Error("Error shutting down server", zap.Error(err))
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "host to listen on")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0, "port to listen on")
	rootCmd.PersistentFlags().StringVar(&data, "data", "", "data directory")

	cobra.OnInitialize(func() {
		if _, err := config.GetConfig(); err != nil {
			fmt.Println("Error loading config:", err)
			os.Exit(1)
		}
		if configFile != "" {
			if _, err := config.ParseFile(configFile); err != nil {
				fmt.Println("Error parsing config file:", err)
				os.Exit(1)
			}
		}
		if host != "" {
			config.Opts.Host = host
		}
		if port != 0 {
			config.Opts.Port = port
		}
		if data != "" {
			config.Opts.Data = data
			config.Opts.DSN = filepath.Join(data, "bookgrove.db")
		}

		// Without a configured secret every restart would invalidate
		// all sessions, which is fine for a single-node setup.
		if config.Opts.JWTSecret == "" {
			secret, err := util.RandomString(32)
			if err != nil {
				fmt.Println("Error generating JWT secret:", err)
				os.Exit(1)
			}
			config.Opts.JWTSecret = secret
		}

		log.Logger = log.NewLogger()
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if log.Logger != nil {
		defer log.Logger.Sync()
	}
}
