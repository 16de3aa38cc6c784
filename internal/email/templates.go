package email

import (
	"fmt"
	"html"

	"github.com/areeshaabbas/inquiry-service/internal/model"
)

// OperatorNotification — письмо владельцу о новой заявке: краткая сводка,
// детали смотрятся в админке.
func OperatorNotification(inq *model.Inquiry) (subject, body string) {
	subject = fmt.Sprintf("New Project: %s", inq.BusinessName)
	body = fmt.Sprintf(`
      <div style="font-family: sans-serif; padding: 20px; color: #333;">
        <h2 style="color: #6366f1;">New Project Inquiry</h2>
        <p><strong>Client:</strong> %s</p>
        <p><strong>Business:</strong> %s</p>
        <p><strong>Goal:</strong> %s</p>
        <hr />
        <p>Check the admin dashboard for full technical requirements.</p>
      </div>
    `,
		html.EscapeString(inq.FullName),
		html.EscapeString(inq.BusinessName),
		html.EscapeString(inq.GoalText()),
	)
	return subject, body
}

// ClientConfirmation — подтверждение отправителю с референсом заявки.
func ClientConfirmation(inq *model.Inquiry) (subject, body string) {
	subject = "Project Inquiry Received | Areesha Abbas"
	body = fmt.Sprintf(`
        <div style="font-family: sans-serif; max-width: 600px; margin: 0 auto; border: 1px solid #e5e7eb; border-radius: 12px; padding: 40px;">
          <h1 style="color: #4f46e5; font-size: 24px;">Inquiry Received, %s.</h1>
          <p style="font-size: 16px; color: #4b5563; line-height: 1.6;">
            I've received your request for <strong>%s</strong>.
            I'm currently reviewing your requirements and will reach out shortly.
          </p>
          <div style="background-color: #f9fafb; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p style="margin: 0; color: #6b7280; font-size: 14px;">Inquiry Reference:</p>
            <p style="margin: 4px 0 0 0; font-family: monospace; font-weight: bold;">%s</p>
          </div>
          <p style="color: #6b7280; font-size: 14px;">
            Best regards,<br />
            <strong>Areesha Abbas</strong><br />
            AI Solutions &amp; Web Development
          </p>
        </div>
    `,
		html.EscapeString(inq.FullName),
		html.EscapeString(inq.BusinessName),
		inq.ID,
	)
	return subject, body
}
