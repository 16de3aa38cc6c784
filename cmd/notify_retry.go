package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/areeshaabbas/inquiry-service/internal/config"
	"github.com/areeshaabbas/inquiry-service/internal/database"
	"github.com/areeshaabbas/inquiry-service/internal/email"
	"github.com/areeshaabbas/inquiry-service/internal/notify"
	"github.com/areeshaabbas/inquiry-service/internal/service"
)

var notifyRetryCmd = &cobra.Command{
	Use:   "notify-retry",
	Short: "Re-send operator notifications for inquiries stuck in notify_state=pending",
	RunE:  runNotifyRetry,
}

func init() {
	rootCmd.AddCommand(notifyRetryCmd)
}

func runNotifyRetry(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}

	svc := service.NewInquiryService(db)
	mailer := email.NewClient(cfg.ResendBaseURL, cfg.ResendAPIKey, cfg.EmailFrom)
	dispatcher := notify.New(svc, mailer, cfg.OwnerEmail)

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	pending, err := svc.ListNotifyPending(ctx)
	if err != nil {
		return fmt.Errorf("list pending: %w", err)
	}
	log.Printf("notify-retry: found %d pending inquiries", len(pending))
	if len(pending) == 0 {
		return nil
	}

	sent, err := dispatcher.RetryPending(ctx)
	if err != nil {
		return fmt.Errorf("retry: %w", err)
	}
	log.Printf("notify-retry: done, delivered %d/%d notifications", sent, len(pending))
	return nil
}
