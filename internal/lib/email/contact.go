package email

import "context"

// ContactMessage is what a visitor submitted on the contact page.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (m ContactMessage) templateData() map[string]string {
	name := m.Name
	if name == "" {
		name = "Anonymous"
	}
	return map[string]string{
		"SenderName":  name,
		"SenderEmail": m.Email,
		"Message":     m.Message,
	}
}

// SendContactEmail forwards msg to the configured inbox with the sender
// as the reply-to address.
func (c *Client) SendContactEmail(ctx context.Context, msg ContactMessage) error {
	return c.SendEmail(
		ctx,
		c.to,
		"Contact form: "+msg.templateData()["SenderName"],
		TemplateContact,
		msg.templateData(),
		msg.Email,
	)
}
