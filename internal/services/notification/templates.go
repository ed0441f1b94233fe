package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Template names the dispatcher knows how to render.
const (
	TemplateEftPaymentInstructions = "eft-payment-instructions"
	TemplateWelcome                = "welcome"
)

type emailTemplate struct {
	subject *template.Template
	body    *template.Template
}

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"money": func(amount, currency interface{}) string {
		minor, _ := toFloat(amount)
		code, _ := currency.(string)
		return fmt.Sprintf("%s %.2f", strings.ToUpper(code), minor/100)
	},
}

func mustTemplate(name, subject, body string) *emailTemplate {
	return &emailTemplate{
		subject: template.Must(template.New(name + ":subject").Funcs(funcs).Parse(subject)),
		body:    template.Must(template.New(name).Funcs(funcs).Parse(body)),
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

var emailTemplates = map[string]*emailTemplate{
	TemplateEftPaymentInstructions: mustTemplate(
		TemplateEftPaymentInstructions,
		`EFT Payment Instructions - Reference: {{.reference}}`,
		`<h1>Payment Instructions</h1>
<p>Dear {{with .customer}}{{or .first_name .email "Valued Customer"}}{{else}}Valued Customer{{end}},</p>
<p>Thank you for your order! To complete your payment, please follow the instructions below:</p>
<h2>Payment Details</h2>
<p><strong>Payment Reference:</strong> {{.reference}}</p>
<p><strong>Amount:</strong> {{money .amount .currency_code}}</p>
{{with .order}}{{with .display_id}}<p><strong>Order Number:</strong> {{.}}</p>{{end}}{{end}}
{{with .bank_details}}
<h2>Bank Details</h2>
<p><strong>Account Name:</strong> {{.account_name}}</p>
<p><strong>Account Number:</strong> {{.account_number}}</p>
<p><strong>Bank Name:</strong> {{.bank_name}}</p>
<p><strong>Branch Code:</strong> {{.branch_code}}</p>
{{end}}
<h2>How to Pay</h2>
<p>1. Log into your online banking or visit your bank branch</p>
<p>2. Make a transfer{{if .bank_details}} to the account details above{{end}}</p>
<p>3. Use the payment reference: <strong>{{.reference}}</strong></p>
<p>4. Transfer the exact amount: <strong>{{money .amount .currency_code}}</strong></p>
<p>Your order will be processed once the payment reflects in our account.</p>`,
	),
	TemplateWelcome: mustTemplate(
		TemplateWelcome,
		`Welcome to Hairven Beauty`,
		`<h1>Welcome{{with .first_name}}, {{.}}{{end}}!</h1>
<p>Thank you for creating an account with Hairven Beauty.</p>`,
	),
}

// renderTemplate renders the named template's subject and body with data.
func renderTemplate(name string, data map[string]interface{}) (subject, body string, err error) {
	tmpl, ok := emailTemplates[name]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}

	var subjectBuf, bodyBuf bytes.Buffer
	if err := tmpl.subject.Execute(&subjectBuf, data); err != nil {
		return "", "", fmt.Errorf("render subject %q: %w", name, err)
	}
	if err := tmpl.body.Execute(&bodyBuf, data); err != nil {
		return "", "", fmt.Errorf("render body %q: %w", name, err)
	}
	return subjectBuf.String(), bodyBuf.String(), nil
}
