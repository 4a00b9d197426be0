package handlers

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// printTemplate renders a kitchen/receipt view of an order. Plain HTML so
// the admin dashboard can open it straight into the browser print dialog.
var printTemplate = template.Must(template.New("order-print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Order #{{.Order.ShortNumber}}</title>
<style>
body { font-family: Arial, sans-serif; max-width: 420px; margin: 0 auto; padding: 16px; }
h1 { font-size: 20px; text-align: center; }
table { width: 100%; border-collapse: collapse; margin: 12px 0; }
th, td { text-align: left; padding: 4px 0; border-bottom: 1px solid #ddd; }
.total { font-weight: bold; }
.meta { color: #555; font-size: 13px; }
</style>
</head>
<body onload="window.print()">
<h1>American Pizza</h1>
<p class="meta">Order #{{.Order.ShortNumber}} &middot; {{.Order.CreatedAt.Format "02.01.2006 15:04"}}</p>
<p>
Customer: {{.Order.CustomerName}}<br>
Email: {{.Order.CustomerEmail}}<br>
Type: {{.Order.DeliveryType}}{{if .Order.Address}}<br>Address: {{.Order.Address}}{{end}}
</p>
<table>
<tr><th>Item</th><th>Qty</th><th>Price</th></tr>
{{range .Order.Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .Price}}</td></tr>
{{end}}
{{if gt .Order.DeliveryCharge 0.0}}<tr><td>Delivery ({{printf "%.1f" .Order.Distance}} km)</td><td></td><td>{{printf "%.2f" .Order.DeliveryCharge}}</td></tr>{{end}}
<tr class="total"><td>Total</td><td></td><td>{{printf "%.2f" .Order.TotalAmount}}</td></tr>
</table>
<p class="meta">Status: {{.Order.OrderStatus}} &middot; Payment: {{.Order.PaymentStatus}} ({{.Order.PaymentMethod}})</p>
</body>
</html>`))

// PrintOrder renders an order as printable HTML (admin only).
func (h *OrderHandler) PrintOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	order, err := h.orders.GetOrder(id)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, fiber.Map{"Order": order}); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
