package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cyklo2/autoresponder/internal/config"
	"github.com/cyklo2/autoresponder/internal/email"
	"github.com/cyklo2/autoresponder/internal/logger"
	"github.com/cyklo2/autoresponder/internal/service"
)

var (
	flagDate   string
	flagTime   string
	flagNumber string
	flagDryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "mailctl",
	Short: "Operational tool for the Cyklo2 autoresponder",
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the confirmation email a payload would produce",
	RunE:  runRender,
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a confirmation email through the configured provider",
	Long:  "Sends a real confirmation email to verify provider credentials. Use --dry-run to render and record without calling the provider.",
	RunE:  runSend,
}

func init() {
	for _, cmd := range []*cobra.Command{renderCmd, sendCmd} {
		cmd.Flags().StringVar(&flagDate, "date", "", "reservation date (verbatim)")
		cmd.Flags().StringVar(&flagTime, "time", "", "reservation time (verbatim)")
		cmd.Flags().StringVar(&flagNumber, "number", "", "reservation number")
		cmd.MarkFlagRequired("date")
		cmd.MarkFlagRequired("time")
		cmd.MarkFlagRequired("number")
	}
	sendCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "do not call the provider")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(sendCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildMessage() (email.Message, error) {
	// Go through the same validation path as the HTTP endpoint
	data := map[string]any{
		"date":              flagDate,
		"time":              flagTime,
		"reservationNumber": flagNumber,
	}
	payload, ok := service.ValidatePayload(data)
	if !ok {
		return email.Message{}, fmt.Errorf("invalid reservation payload")
	}

	return email.Message{
		To:      service.ConfirmationRecipient,
		Subject: email.ConfirmationSubject(payload.ReservationNumber),
		Text:    email.ConfirmationText(payload.Date, payload.Time),
	}, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	msg, err := buildMessage()
	if err != nil {
		return err
	}

	fmt.Printf("To: %s\n", msg.To)
	fmt.Printf("Subject: %s\n\n", msg.Subject)
	fmt.Println(msg.Text)
	return nil
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, "console")

	var sender email.Sender
	if flagDryRun {
		sender = email.NewMockSender()
	} else {
		sender, err = newSender(cfg)
		if err != nil {
			return err
		}
	}

	msg, err := buildMessage()
	if err != nil {
		return err
	}

	confirmSvc := service.NewConfirmationService(sender, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := confirmSvc.Send(ctx, msg); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}

	if flagDryRun {
		fmt.Println("dry run: message rendered and recorded, provider not called")
	} else {
		fmt.Printf("confirmation sent to %s via %s\n", msg.To, cfg.Email.Provider)
	}
	return nil
}

func newSender(cfg *config.Config) (email.Sender, error) {
	switch cfg.Email.Provider {
	case "sendgrid":
		return email.NewSendGridSender(email.SendGridConfig{
			APIKey:        cfg.Email.SendGrid.APIKey,
			SenderAddress: cfg.Email.FromEmail,
			SenderName:    cfg.Email.SenderName,
		})
	case "gmail":
		if cfg.Email.Gmail.RefreshToken != "" {
			return email.NewGmailSenderWithToken(
				context.Background(),
				cfg.Email.Gmail.ClientID,
				cfg.Email.Gmail.ClientSecret,
				cfg.Email.Gmail.RefreshToken,
				cfg.Email.FromEmail,
				cfg.Email.SenderName,
			)
		}
		return email.NewGmailSender(context.Background(), email.GmailConfig{
			CredentialsJSON: cfg.Email.Gmail.CredentialsJSON,
			SenderAddress:   cfg.Email.FromEmail,
			SenderName:      cfg.Email.SenderName,
		})
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}
