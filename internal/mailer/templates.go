package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"storefront/internal/model"
)

type confirmationData struct {
	Name    string
	OrderID string
	Total   string
	Address string
	Contact string
}

var textTemplate = texttemplate.Must(texttemplate.New("text").Parse(`Hi {{.Name}},

Thank you for your order. We have received it and will let you know when it ships.

Order:    {{.OrderID}}
Total:    {{.Total}}
Deliver:  {{.Address}}
Contact:  {{.Contact}}
`))

var htmlTemplate = htmltemplate.Must(htmltemplate.New("html").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thank you for your order</h2>
		<p>Hi {{.Name}},</p>
		<p>We have received your order and will let you know when it ships.</p>
		<table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
			<tr><td style="padding: 8px;">Order</td><td style="padding: 8px;">{{.OrderID}}</td></tr>
			<tr><td style="padding: 8px;">Total</td><td style="padding: 8px; font-weight: bold;">{{.Total}}</td></tr>
			<tr><td style="padding: 8px;">Deliver to</td><td style="padding: 8px;">{{.Address}}</td></tr>
			<tr><td style="padding: 8px;">Contact</td><td style="padding: 8px;">{{.Contact}}</td></tr>
		</table>
	</div>
</body>
</html>
`))

func dataFor(n model.OrderNotification) confirmationData {
	name := n.CustomerName
	if name == "" {
		name = "there"
	}
	return confirmationData{
		Name:    name,
		OrderID: n.OrderID.String(),
		Total:   n.Total.StringFixed(2),
		Address: n.Address,
		Contact: n.ContactNo,
	}
}

func renderText(n model.OrderNotification) (string, error) {
	var buf bytes.Buffer
	if err := textTemplate.Execute(&buf, dataFor(n)); err != nil {
		return "", fmt.Errorf("failed to render text body: %w", err)
	}
	return buf.String(), nil
}

func renderHTML(n model.OrderNotification) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, dataFor(n)); err != nil {
		return "", fmt.Errorf("failed to render html body: %w", err)
	}
	return buf.String(), nil
}

// shortID is the first block of the order id, used in subject lines.
func shortID(n model.OrderNotification) string {
	return n.OrderID.String()[:8]
}
