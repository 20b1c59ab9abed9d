package email

import (
	"context"
	"fmt"
	"sync"

	"farmatime/internal/pkg/config"
	"farmatime/internal/pkg/logger"

	brevo "github.com/getbrevo/brevo-go/lib"
)

// Provider is the transactional email provider name recorded on requests.
const Provider = "brevo"

// SendParams carries everything needed to send one transactional email.
type SendParams struct {
	To          string
	ToName      string
	FromName    string
	ReplyTo     string
	ReplyToName string
	Subject     string
	HTMLContent string
	Tags        []string
}

// Client wraps the Brevo transactional email API. When no API key is
// configured the client logs the email instead of sending it, so the run
// loop stays exercisable in development.
type Client struct {
	api *brevo.APIClient
	cfg config.EmailConfig
	log logger.Logger
}

var (
	clientInstance *Client
	once           sync.Once
)

// NewClient creates a new singleton instance of the email client.
func NewClient(cfg config.EmailConfig, log logger.Logger) *Client {
	once.Do(func() {
		clientInstance = &Client{cfg: cfg, log: log}
		if cfg.APIKey == "" {
			log.Warn("BREVO_API_KEY not set, emails will be logged instead of sent")
			return
		}
		apiCfg := brevo.NewConfiguration()
		apiCfg.AddDefaultHeader("api-key", cfg.APIKey)
		clientInstance.api = brevo.NewAPIClient(apiCfg)
		log.Info("Successfully created Brevo email client.")
	})
	return clientInstance
}

// Send sends one transactional email and returns the provider message id.
func (c *Client) Send(ctx context.Context, params SendParams) (string, error) {
	if params.To == "" {
		return "", fmt.Errorf("parameter 'to' is mandatory to send email")
	}
	if params.Subject == "" {
		return "", fmt.Errorf("parameter 'subject' is mandatory to send email")
	}
	fromName := params.FromName
	if fromName == "" {
		fromName = c.cfg.FromName
	}

	if c.api == nil {
		c.log.Info(fmt.Sprintf("email (log only): to=%s subject=%q", params.To, params.Subject))
		return "log-only", nil
	}

	message := brevo.SendSmtpEmail{
		Sender: &brevo.SendSmtpEmailSender{
			Email: c.cfg.From,
			Name:  fromName,
		},
		To: []brevo.SendSmtpEmailTo{{
			Email: params.To,
			Name:  params.ToName,
		}},
		Subject:     params.Subject,
		HtmlContent: params.HTMLContent,
		Tags:        params.Tags,
	}
	if params.ReplyTo != "" {
		message.ReplyTo = &brevo.SendSmtpEmailReplyTo{
			Email: params.ReplyTo,
			Name:  params.ReplyToName,
		}
	}

	result, _, err := c.api.TransactionalEmailsApi.SendTransacEmail(ctx, message)
	if err != nil {
		return "", fmt.Errorf("failed to send email to %s: %w", params.To, err)
	}
	c.log.Debug(fmt.Sprintf("Successfully sent email to %s (message id %s)", params.To, result.MessageId))
	return result.MessageId, nil
}

// Audit emails a run summary to the support address, fire-and-forget. Errors
// are logged and never surfaced to the caller.
func (c *Client) Audit(subject, htmlContent string) {
	if c.cfg.SupportTo == "" {
		c.log.Debug("SUPPORT_EMAIL not set, skipping audit email")
		return
	}
	go func() {
		_, err := c.Send(context.Background(), SendParams{
			To:          c.cfg.SupportTo,
			ToName:      c.cfg.SupportName,
			Subject:     subject,
			HTMLContent: htmlContent,
		})
		if err != nil {
			c.log.Error("Failed to send audit email", err)
		}
	}()
}
