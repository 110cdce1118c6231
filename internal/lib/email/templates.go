package email

type Template string

const (
	// TemplateContact is the message relayed from the contact form.
	TemplateContact Template = "contact"
)

func (t Template) file() string {
	return string(t) + ".html"
}
