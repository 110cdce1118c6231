package model

// ContactMessageRequest is the body of POST /api/contact.
type ContactMessageRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=100"`
	Email   string `json:"email" form:"email" validate:"required,email,max=254"`
	Message string `json:"message" form:"message" validate:"required,min=10,max=5000"`
}

func (r *ContactMessageRequest) Validate() error {
	return validate.Struct(r)
}

type ContactMessageResponse struct {
	Status string `json:"status"`
}
