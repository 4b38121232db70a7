package email

import (
	"fmt"
	"time"

	"github.com/gg-eng/portfolio-api/internal/domain"
)

// Bilingual HTML templates for every outgoing email. All user-facing copy
// exists in Spanish and English; the contact form's language choice decides
// which variant is sent.

const emailStyle = `body { font-family: 'Space Grotesk', Arial, sans-serif; line-height: 1.6; color: #000000; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
h1 { font-family: 'Playfair Display', Georgia, serif; font-size: 24px; }
.button { display: inline-block; padding: 12px 24px; background-color: #000000; color: #ffffff; text-decoration: none; border-radius: 4px; margin: 20px 0; }
.footer { margin-top: 30px; padding-top: 20px; border-top: 2px solid #000000; font-size: 14px; }`

func wrapHTML(inner string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <style>%s</style>
  </head>
  <body>
    <div class="container">
%s
    </div>
  </body>
</html>`, emailStyle, inner)
}

func footer(lang domain.Language) string {
	text := "This email was automatically generated from gg-eng.me"
	if lang == domain.LangSpanish {
		text = "Este correo fue generado automáticamente desde gg-eng.me"
	}
	return fmt.Sprintf(`<div class="footer"><p style="color: #666; font-size: 12px;">%s</p></div>`, text)
}

// ConfirmationEmail builds the double opt-in confirmation email. confirmURL
// carries the ticket token; the link expires after 24 hours.
func ConfirmationEmail(lang domain.Language, confirmURL string) (subject, html string) {
	if lang == domain.LangSpanish {
		subject = "Confirma tu suscripción al newsletter"
		html = wrapHTML(fmt.Sprintf(`<h1>Confirma tu suscripción</h1>
<p>Hola,<br/><br/>Gracias por suscribirte al newsletter de Germán Gómez. Para completar tu suscripción, por favor haz clic en el siguiente enlace:</p>
<p style="text-align: center;"><a href="%s" class="button">Confirmar suscripción</a></p>
<p>Si no solicitaste esta suscripción, puedes ignorar este correo.</p>
<p>Este enlace expirará en 24 horas.</p>
%s`, confirmURL, footer(lang)))
		return subject, html
	}
	subject = "Confirm your newsletter subscription"
	html = wrapHTML(fmt.Sprintf(`<h1>Confirm your subscription</h1>
<p>Hello,<br/><br/>Thank you for subscribing to Germán Gómez's newsletter. To complete your subscription, please click the following link:</p>
<p style="text-align: center;"><a href="%s" class="button">Confirm subscription</a></p>
<p>If you did not request this subscription, you can ignore this email.</p>
<p>This link will expire in 24 hours.</p>
%s`, confirmURL, footer(lang)))
	return subject, html
}

// CVEmail builds the CV delivery email sent to whoever filled the contact form.
func CVEmail(req domain.CVRequest, personalEmail string) (subject, html string) {
	lang := domain.Language(req.Language)
	if lang == domain.LangSpanish {
		subject = "Tu pedido de CV de Germán Gómez"
		company := ""
		if req.Company != "" {
			company = fmt.Sprintf("<p>Me alegra saber que representas a <strong>%s</strong>.</p>", req.Company)
		}
		html = wrapHTML(fmt.Sprintf(`<h1>Hola %s,</h1>
<p>Gracias por tu interés en mi perfil profesional.</p>
<p>Adjunto encontrarás mi Curriculum Vitae en formato PDF.</p>
%s<p>Si tienes alguna pregunta o deseas discutir oportunidades, contactame directamente a <strong><a href="mailto:%s">%s</a></strong>.</p>
<p>Saludos,<br/><strong>Germán Gómez</strong><br/>Senior Mobile Engineer<br/>Buenos Aires, Argentina</p>
%s`, req.Name, company, personalEmail, personalEmail, footer(lang)))
		return subject, html
	}
	subject = "Your resume request from Germán Gómez"
	company := ""
	if req.Company != "" {
		company = fmt.Sprintf("<p>I'm glad to know you represent <strong>%s</strong>.</p>", req.Company)
	}
	html = wrapHTML(fmt.Sprintf(`<h1>Hello %s,</h1>
<p>Thank you for your interest in my professional profile.</p>
<p>Please find my Resume attached as a PDF.</p>
%s<p>If you have any questions or would like to discuss opportunities, contact me directly to <strong><a href="mailto:%s">%s</a></strong>.</p>
<p>Best regards,<br/><strong>Germán Gómez</strong><br/>Senior Mobile Engineer<br/>Buenos Aires, Argentina</p>
%s`, req.Name, company, personalEmail, personalEmail, footer(lang)))
	return subject, html
}

// CVNotificationEmail builds the owner-facing notification that someone
// requested the CV. Always in English.
func CVNotificationEmail(req domain.CVRequest, at time.Time) (subject, html string) {
	subject = "New CV Request - gg-eng.me"
	langName := "English"
	if domain.Language(req.Language) == domain.LangSpanish {
		langName = "Spanish"
	}
	html = wrapHTML(fmt.Sprintf(`<h1>New CV Request Received</h1>
<p>Someone has requested your CV through the contact form on gg-eng.me.</p>
<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
  <tr><td style="padding: 10px; font-weight: 600; width: 30%%;">Name:</td><td style="padding: 10px;">%s</td></tr>
  <tr><td style="padding: 10px; font-weight: 600;">Email:</td><td style="padding: 10px;"><a href="mailto:%s">%s</a></td></tr>
  <tr><td style="padding: 10px; font-weight: 600;">Company:</td><td style="padding: 10px;">%s</td></tr>
  <tr><td style="padding: 10px; font-weight: 600;">Language:</td><td style="padding: 10px;">%s</td></tr>
  <tr><td style="padding: 10px; font-weight: 600;">Requested At:</td><td style="padding: 10px;">%s</td></tr>
  <tr><td style="padding: 10px; font-weight: 600;">Status:</td><td style="padding: 10px; color: #16a34a; font-weight: 600;">CV Sent Successfully</td></tr>
</table>
%s`, req.Name, req.Email, req.Email, req.Company, langName, at.Format(time.RFC1123), footer(domain.LangEnglish)))
	return subject, html
}
