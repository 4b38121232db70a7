package domain

// Language selects the localization of outgoing emails and attachments.
type Language string

const (
	LangSpanish Language = "es"
	LangEnglish Language = "en"
)

// CVRequest is the contact form payload asking for the CV by email.
// Website is a honeypot field: humans never fill it, bots do.
type CVRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Company  string `json:"company" validate:"required,min=2,max=30"`
	Language string `json:"language" validate:"required,oneof=es en"`
	Website  string `json:"website" validate:"omitempty,max=0"`
}
