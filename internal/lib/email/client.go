// Package email sends transactional mail through Resend. Bodies are
// rendered from HTML templates embedded in the binary.
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/deppfellow/opl-checker/internal/config"
)

//go:embed templates/emails/*.html
var templateFS embed.FS

type Client struct {
	client    *resend.Client
	logger    *zerolog.Logger
	from      string
	to        string
	templates *template.Template
}

func NewClient(cfg *config.IntegrationConfig, logger *zerolog.Logger) (*Client, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Client{
		client:    resend.NewClient(cfg.ResendAPIKey),
		logger:    logger,
		from:      cfg.ContactFrom,
		to:        cfg.ContactTo,
		templates: templates,
	}, nil
}

func parseTemplates() (*template.Template, error) {
	templates, err := template.New("emails").
		Option("missingkey=error").
		ParseFS(templateFS, "templates/emails/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse email templates")
	}
	return templates, nil
}

// Render executes the named template with data.
func (c *Client) Render(name Template, data map[string]string) (string, error) {
	return render(c.templates, name, data)
}

func render(templates *template.Template, name Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name.file(), data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", name)
	}
	return body.String(), nil
}

// SendEmail renders templateName and sends it to a single recipient.
// replyTo is optional.
func (c *Client) SendEmail(
	ctx context.Context,
	to, subject string,
	templateName Template,
	data map[string]string,
	replyTo string,
) error {
	html, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", "OpenPowerlifting Checker", c.from),
		To:      []string{to},
		Subject: subject,
		Html:    html,
		ReplyTo: replyTo,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", sent.Id).
		Msg("email sent")

	return nil
}
