// ABOUTME: CLI command that classifies a batch of incoming emails
// ABOUTME: Reads from a JSON file, stdin, or Gmail and routes each message
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/inbox-triage/internal/config"
	"github.com/harper/inbox-triage/internal/llm"
	"github.com/harper/inbox-triage/internal/mail"
	"github.com/harper/inbox-triage/internal/models"
	"github.com/harper/inbox-triage/internal/triage"
)

var (
	runInput string
	runGmail bool
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Classify a batch of incoming emails",
		Long: `Classify incoming emails as ignore, respond, or notify.

Emails are read from a JSON file (or stdin with --input -), or fetched
directly from Gmail with --gmail. Every decision is recorded so future
runs see the sender's history.

Examples:
  triage run --input emails.json
  cat emails.json | triage run --input -
  triage run --gmail
  triage run --input emails.json --format json`,
		RunE: runTriage,
	}

	cmd.Flags().StringVar(&runInput, "input", "", "JSON file of emails to classify (- for stdin)")
	cmd.Flags().BoolVar(&runGmail, "gmail", false, "Fetch unread emails from Gmail")
	cmd.MarkFlagsMutuallyExclusive("input", "gmail")

	return cmd
}

func runTriage(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required for classification")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	emails, err := loadEmails(ctx, cfg)
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No emails to classify")
		}
		return nil
	}

	store, err := openStorage()
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer store.Close()

	classifier, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		ChatModel:  cfg.ChatModel,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
	if err != nil {
		return fmt.Errorf("initializing classifier: %w", err)
	}

	router := triage.NewRouter(store, classifier)
	outcomes := router.TriageBatch(ctx, emails)

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(outcomes, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ACTION\tSENDER\tSUBJECT\tREASON\n")
	fmt.Fprintf(w, "------\t------\t-------\t------\n")
	counts := make(map[models.Classification]int)
	for i := range outcomes {
		o := &outcomes[i]
		counts[o.Action]++
		sender, subject := "", ""
		if o.Email != nil {
			sender = o.Email.Sender
			subject = o.Email.Subject
		}
		reason := strings.ReplaceAll(o.Reason, "\n", " ")
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			strings.ToUpper(string(o.Action)),
			truncate(sender, 30),
			truncate(subject, 40),
			truncate(reason, 60))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nProcessed %d of %d emails (%d ignore, %d notify, %d respond)\n",
			len(outcomes), len(emails),
			counts[models.ClassificationIgnore],
			counts[models.ClassificationNotify],
			counts[models.ClassificationRespond])
	}

	return nil
}

// loadEmails reads the batch from Gmail, a file, or stdin
func loadEmails(ctx context.Context, cfg *config.Config) ([]models.IncomingEmail, error) {
	if runGmail {
		creds := mail.Credentials{
			ClientID:     os.Getenv("GMAIL_CLIENT_ID"),
			ClientSecret: os.Getenv("GMAIL_CLIENT_SECRET"),
			RefreshToken: os.Getenv("GMAIL_REFRESH_TOKEN"),
		}
		if creds.ClientID == "" || creds.RefreshToken == "" {
			return nil, fmt.Errorf("GMAIL_CLIENT_ID and GMAIL_REFRESH_TOKEN are required for --gmail")
		}
		client := mail.NewGmailClient(ctx, creds, mail.WithMaxResults(cfg.GmailMaxResults))
		return client.FetchUnread(ctx)
	}

	if runInput == "" {
		return nil, fmt.Errorf("either --input or --gmail is required")
	}

	var data []byte
	var err error
	if runInput == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(runInput)
	}
	if err != nil {
		return nil, fmt.Errorf("reading emails: %w", err)
	}

	var emails []models.IncomingEmail
	if err := json.Unmarshal(data, &emails); err != nil {
		return nil, fmt.Errorf("parsing emails: %w", err)
	}
	return emails, nil
}
