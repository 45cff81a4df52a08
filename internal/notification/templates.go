package notification

import "html/template"

const layout = `{{define "layout"}}<!DOCTYPE html>
<html>
  <head><meta charset="UTF-8"></head>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px;">
      <h1 style="text-align: center;">{{.Heading}}</h1>
      {{template "body" .}}
      <p style="font-size: 12px; color: #777; text-align: center;">This is an automated email from EatSprint. Please do not reply.</p>
    </div>
  </body>
</html>{{end}}`

const itemsTable = `{{define "items"}}<table style="width: 100%; border-collapse: collapse;">
  <tr><th align="left">Item</th><th align="right">Qty</th><th align="right">Price</th></tr>
  {{range .Items}}<tr><td>{{.Name}}</td><td align="right">{{.Quantity}}</td><td align="right">&#8377;{{.Subtotal}}</td></tr>
  {{end}}
</table>
<p><strong>Total: &#8377;{{.Amount}}</strong></p>
<p>Payment: {{.Payment}}</p>{{end}}`

const addressBlock = `{{define "address"}}<h3>Delivery Address:</h3>
<p>{{.Address.FirstName}} {{.Address.LastName}}<br>{{.Address.Street}}<br>{{.Address.City}}, {{.Address.State}} {{.Address.Zipcode}}<br>{{.Address.Country}}<br>Phone: {{.Address.Phone}}</p>{{end}}`

var (
	placedTemplate = mustParse(`{{define "body"}}<p>Hi <strong>{{.Address.FirstName}}</strong>,</p>
<p>Thank you for your order! We have received it and will start preparing it shortly.</p>
<p><strong>Order ID:</strong> {{.OrderID}}</p>
{{template "items" .}}{{template "address" .}}{{end}}`)

	adminTemplate = mustParse(`{{define "body"}}<p>A new order needs attention.</p>
<p><strong>Order ID:</strong> {{.OrderID}}<br><strong>Customer:</strong> {{.Address.FirstName}} {{.Address.LastName}} ({{.Address.Email}})</p>
{{template "items" .}}{{template "address" .}}{{end}}`)

	confirmedTemplate = mustParse(`{{define "body"}}<p>Hi <strong>{{.Address.FirstName}}</strong>,</p>
<p>Your payment was received and your order is confirmed.</p>
<p><strong>Order ID:</strong> {{.OrderID}}<br><strong>Estimated Delivery:</strong> 30-45 minutes</p>
{{template "items" .}}{{template "address" .}}{{end}}`)

	statusTemplate = mustParse(`{{define "body"}}<p>Hi <strong>{{.Address.FirstName}}</strong>,</p>
<p>Your order status has been updated!</p>
<p style="font-size: 22px; font-weight: bold;">{{.Status}}</p>
<p><strong>Order ID:</strong> {{.OrderID}}</p>
<p>{{.StatusMessage}}</p>
<p>Check "My Orders" in your account for live updates.</p>{{end}}`)

	thankYouTemplate = mustParse(`{{define "body"}}<p>Hi <strong>{{.Address.FirstName}}</strong>,</p>
<p>Your order has been delivered. We hope you enjoyed your meal!</p>
<ul>{{range .Items}}<li>{{.Name}} x{{.Quantity}}</li>{{end}}</ul>
<p>We would love to serve you again soon.</p>{{end}}`)
)

func mustParse(body string) *template.Template {
	t := template.Must(template.New("email").Parse(layout))
	template.Must(t.Parse(itemsTable))
	template.Must(t.Parse(addressBlock))
	return template.Must(t.Parse(body))
}

var statusMessages = map[string]string{
	"Food Processing":  "Your food is being prepared in our kitchen.",
	"Out for Delivery": "Your order is on its way! Our delivery partner will reach you soon.",
	"Delivered":        "Your order has been delivered. Thanks for ordering!",
	"Cancelled":        "Your order has been cancelled. If you have any questions, please contact support.",
	"COD - Pending":    "Your COD order is pending confirmation. We will confirm it shortly.",
}

func statusMessage(status string) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return "Your order status is now: " + status
}
