package email

import (
	"fmt"

	"github.com/oysterbuild/backend/internal/domain/notification"
)

// renderTemplate produces HTML and plain-text bodies for a notification
// template. Context keys are filled in by the use case that queued the
// intent.
func renderTemplate(template string, ctx map[string]any) (htmlBody, plainBody string, err error) {
	switch template {
	case notification.TemplatePaymentConfirmation:
		return renderPaymentConfirmation(ctx), plainPaymentConfirmation(ctx), nil
	case notification.TemplateExpirationReminder:
		return renderExpirationReminder(ctx), plainExpirationReminder(ctx), nil
	default:
		return "", "", fmt.Errorf("unknown email template: %s", template)
	}
}

func renderPaymentConfirmation(ctx map[string]any) string {
	return fmt.Sprintf(`
		<html>
		<body>
			<h2>Payment Confirmation</h2>
			<p>Hi %v,</p>
			<p>We received your payment of %v %v for project <strong>%v</strong> on the %v plan.</p>
			<p>Invoice: %v</p>
			<p>Thank you for building with us.</p>
		</body>
		</html>
	`, ctx["first_name"], ctx["currency"], ctx["amount"], ctx["project_name"], ctx["plan_name"], ctx["invoice_number"])
}

func plainPaymentConfirmation(ctx map[string]any) string {
	return fmt.Sprintf(`
Payment Confirmation

Hi %v,

We received your payment of %v %v for project %v on the %v plan.
Invoice: %v

Thank you for building with us.
	`, ctx["first_name"], ctx["currency"], ctx["amount"], ctx["project_name"], ctx["plan_name"], ctx["invoice_number"])
}

func renderExpirationReminder(ctx map[string]any) string {
	return fmt.Sprintf(`
		<html>
		<body>
			<h2>Your Plan Is Expiring Soon</h2>
			<p>Hi %v,</p>
			<p>The %v plan for project <strong>%v</strong> expires on %v.</p>
			<p>Renew before then to keep submitting reports without interruption.</p>
		</body>
		</html>
	`, ctx["first_name"], ctx["plan_name"], ctx["project_name"], ctx["end_date"])
}

func plainExpirationReminder(ctx map[string]any) string {
	return fmt.Sprintf(`
Your Plan Is Expiring Soon

Hi %v,

The %v plan for project %v expires on %v.
Renew before then to keep submitting reports without interruption.
	`, ctx["first_name"], ctx["plan_name"], ctx["project_name"], ctx["end_date"])
}
