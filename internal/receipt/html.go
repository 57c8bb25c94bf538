package receipt

import (
	"fmt"
	"html"
	"strings"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/pricing"
)

const htmlHead = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Pedido #%s</title>
<style>
  * { box-sizing: border-box; margin: 0; padding: 0; }
  @page { size: 58mm auto; margin: 0; }
  @media print { html, body { width: 58mm; } }
  body {
    width: 54mm;
    max-width: 54mm;
    margin: 0 auto;
    font-family: 'Courier New', 'Lucida Console', monospace;
    font-size: 11px;
    font-weight: 700;
    padding: 1mm;
    word-wrap: break-word;
  }
  table { width: 100%%; border-collapse: collapse; table-layout: fixed; }
  td { vertical-align: top; padding: 0; word-wrap: break-word; }
  .sep { border-top: 1px dashed #000; margin: 3px 0; }
  .sep-bold { border-top: 2px solid #000; margin: 4px 0; }
</style>
</head><body>
`

// HTML renders the 58mm print template for the order
func (o Order) HTML() string {
	var b strings.Builder

	customer := o.Customer
	if customer == "" {
		customer = "Cliente"
	}

	fmt.Fprintf(&b, htmlHead, html.EscapeString(o.Number))

	b.WriteString("<table>\n")
	b.WriteString(`<tr><td style="text-align:center;font-size:16px;font-weight:900;">MOVEARENA</td></tr>` + "\n")
	fmt.Fprintf(&b, `<tr><td style="text-align:center;font-size:13px;font-weight:900;">PEDIDO #%s</td></tr>`+"\n", html.EscapeString(o.Number))
	fmt.Fprintf(&b, `<tr><td style="text-align:center;font-size:10px;">%s</td></tr>`+"\n", o.Date.Format("02/01/2006 15:04"))
	b.WriteString("</table>\n<div class=\"sep\"></div>\n<table>\n")

	fmt.Fprintf(&b, `<tr><td style="font-weight:900;">Cliente: %s</td></tr>`+"\n", html.EscapeString(customer))
	if o.Phone != "" {
		fmt.Fprintf(&b, `<tr><td>Tel: %s</td></tr>`+"\n", html.EscapeString(o.Phone))
	}
	if o.OrderType == domain.OrderTypeDelivery && o.Address != "" {
		fmt.Fprintf(&b, `<tr><td>End: %s</td></tr>`+"\n", html.EscapeString(o.Address))
	}
	fmt.Fprintf(&b, `<tr><td style="font-weight:900;">Tipo: %s</td></tr>`+"\n", html.EscapeString(o.typeLabel()))
	if o.Observation != "" {
		fmt.Fprintf(&b, `<tr><td style="font-weight:900;">Obs: %s</td></tr>`+"\n", html.EscapeString(o.Observation))
	}
	b.WriteString("</table>\n<div class=\"sep\"></div>\n<table>\n")

	for _, item := range o.Items {
		fmt.Fprintf(&b, `<tr><td style="font-weight:900;font-size:14px;padding-top:5px;">%dx %s</td></tr>`+"\n",
			item.Quantity, html.EscapeString(item.Name))
		if item.Observation != "" {
			for _, line := range strings.Split(item.Observation, "\n") {
				if strings.TrimSpace(line) == "" {
					continue
				}
				fmt.Fprintf(&b, `<tr><td style="font-size:13px;padding-left:6px;">%s</td></tr>`+"\n", html.EscapeString(line))
			}
		}
		fmt.Fprintf(&b, `<tr><td style="text-align:right;font-size:13px;font-weight:800;">%s</td></tr>`+"\n",
			pricing.LineTotal(item).BRL())
	}

	b.WriteString("</table>\n<div class=\"sep\"></div>\n<table>\n")
	fmt.Fprintf(&b, `<tr><td>Subtotal:</td><td style="text-align:right;">%s</td></tr>`+"\n", o.Subtotal.BRL())
	if o.DeliveryFee > 0 {
		fmt.Fprintf(&b, `<tr><td>Taxa entrega:</td><td style="text-align:right;">%s</td></tr>`+"\n", o.DeliveryFee.BRL())
	}
	b.WriteString("</table>\n<div class=\"sep-bold\"></div>\n<table>\n")
	fmt.Fprintf(&b, `<tr><td style="font-size:14px;font-weight:900;">TOTAL:</td><td style="font-size:14px;font-weight:900;text-align:right;">%s</td></tr>`+"\n", o.Total.BRL())
	b.WriteString("</table>\n<div class=\"sep\"></div>\n")
	b.WriteString(`<table><tr><td style="text-align:center;font-size:10px;">Obrigado pela preferencia!</td></tr>` + "\n")
	b.WriteString(`<tr><td style="text-align:center;font-size:10px;">Volte sempre!</td></tr></table>` + "\n")
	b.WriteString("</body></html>\n")

	return b.String()
}
