package http

import (
	"github.com/gg-eng/portfolio-api/internal/application/contact"
	"github.com/gg-eng/portfolio-api/internal/infrastructure/email"
	"github.com/gg-eng/portfolio-api/internal/kv"
)

// Deps holds all infrastructure dependencies for the router. Everything is an
// interface so tests can substitute in-memory fakes.
type Deps struct {
	// Store is the shared key-value store backing subscriptions and
	// analytics. May be nil when the store is not provisioned; operations
	// then report a configuration error instead of silently no-opping.
	Store kv.Store
	// CVStore serves the CV PDFs attached to contact-form replies.
	CVStore contact.CVStore
	// Mailer delivers all outgoing email.
	Mailer email.Sender
}
