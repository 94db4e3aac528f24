package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/takutakahashi/demoenv-bot/internal/app"
	"github.com/takutakahashi/demoenv-bot/internal/di"
	"github.com/takutakahashi/demoenv-bot/pkg/config"
)

var (
	port    string
	cfg     string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "demoenv-bot",
	Short: "Demo Environment Lease Bot",
	Long:  "A chat-ops service that coordinates claims on the shared demo environment pool",
	Run:   runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&port, "port", "p", "8080", "Port to listen on")
	rootCmd.PersistentFlags().StringVarP(&cfg, "config", "c", "config.json", "Configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	// Bind flags to viper
	if err := viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port")); err != nil {
		log.Printf("Failed to bind port flag: %v", err)
	}
	if err := viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		log.Printf("Failed to bind config flag: %v", err)
	}
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		log.Printf("Failed to bind verbose flag: %v", err)
	}
}

func runServer(cmd *cobra.Command, args []string) {
	if verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	configData, err := config.LoadConfig(cfg)
	if err != nil {
		log.Printf("Failed to load config from %s, using defaults with environment overrides: %v", cfg, err)
		configData = config.DefaultConfig()
	}

	ctx := context.Background()
	container, err := di.NewContainer(ctx, configData)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	server := app.NewServer(configData, container)

	go func() {
		log.Printf("Starting demoenv-bot on port %s", port)
		if err := server.Start(":" + port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutdown signal received, shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
