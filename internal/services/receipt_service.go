package services

import (
	"bytes"
	"context"
	"html/template"

	"paylink/internal/models/db_models"
)

type ReceiptServiceInterface interface {
	RenderReceipt(ctx context.Context, id string) ([]byte, error)
}

type receiptService struct {
	invoiceService InvoiceServiceInterface
	tpl            *template.Template
}

func NewReceiptService(invoiceService InvoiceServiceInterface) ReceiptServiceInterface {
	return &receiptService{
		invoiceService: invoiceService,
		tpl:            template.Must(template.New("receipt").Parse(receiptPageTemplate)),
	}
}

type receiptPageData struct {
	Invoice    *db_models.Invoice
	IssuedDate string
	PaidDate   string
	Total      string
}

const receiptPageTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Invoice {{.Invoice.Slug}}</title>
  <style>
    body { font-family: Georgia, serif; color: #111827; margin: 0; padding: 48px; }
    .sheet { max-width: 680px; margin: 0 auto; }
    .head { display: flex; justify-content: space-between; border-bottom: 2px solid #111827; padding-bottom: 16px; }
    h1 { font-size: 28px; margin: 0; }
    .meta { text-align: right; font-size: 14px; color: #4b5563; }
    table { width: 100%; border-collapse: collapse; margin-top: 32px; }
    th { text-align: left; font-size: 12px; text-transform: uppercase; letter-spacing: 1px; color: #6b7280; border-bottom: 1px solid #d1d5db; padding: 8px 0; }
    th.amount, td.amount { text-align: right; }
    td { padding: 10px 0; border-bottom: 1px solid #f3f4f6; }
    .total td { font-weight: bold; font-size: 18px; border-bottom: none; padding-top: 16px; }
    .stamp { display: inline-block; margin-top: 24px; padding: 6px 18px; border: 3px solid #16a34a; color: #16a34a; font-weight: bold; transform: rotate(-4deg); font-size: 20px; }
    .notes { margin-top: 32px; font-size: 13px; color: #6b7280; }
  </style>
</head>
<body>
  <div class="sheet">
    <div class="head">
      <div>
        <h1>Invoice</h1>
        <p>{{.Invoice.Client.Name}}{{if .Invoice.Client.Email}}<br>{{.Invoice.Client.Email}}{{end}}{{if .Invoice.Client.Phone}}<br>{{.Invoice.Client.Phone}}{{end}}</p>
      </div>
      <div class="meta">
        <p>Ref: {{.Invoice.Slug}}<br>Issued: {{.IssuedDate}}</p>
      </div>
    </div>
    <table>
      <tr><th>Description</th><th class="amount">Amount</th></tr>
      {{range .Invoice.Services}}
      <tr><td>{{.Description}}</td><td class="amount">{{.Amount}}</td></tr>
      {{end}}
      <tr class="total"><td>Total</td><td class="amount">{{.Total}} {{.Invoice.Currency}}</td></tr>
    </table>
    {{if eq .Invoice.Status "paid"}}<div class="stamp">PAID {{.PaidDate}}</div>{{end}}
  </div>
</body>
</html>`

func (r *receiptService) RenderReceipt(ctx context.Context, id string) ([]byte, error) {
	inv, err := r.invoiceService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data := receiptPageData{
		Invoice:    inv,
		IssuedDate: inv.CreatedAt.Format("January 2, 2006"),
		Total:      inv.Total.StringFixed(2),
	}
	if inv.PaidAt != nil {
		data.PaidDate = inv.PaidAt.Format("January 2, 2006")
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
