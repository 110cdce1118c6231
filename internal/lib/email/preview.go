package email

// PreviewData holds sample data for every template, keyed by template name.
var PreviewData = map[Template]map[string]string{
	TemplateContact: ContactMessage{
		Name:    "Jane Lifter",
		Email:   "jane@example.com",
		Message: "The bodyweight for my 2023 meet looks wrong.",
	}.templateData(),
}
