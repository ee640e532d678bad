package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/deanb221/caravan/internal/usecase/shared"
)

// Email is the message handed to a Publisher.
type Email struct {
	To      string          `json:"to"`
	Subject string          `json:"subject"`
	Body    string          `json:"body"`
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data"`
}

var subjects = map[string]string{
	shared.EventBookingRequested: "New Caravan Booking Request",
	shared.EventBookingConfirmed: "Caravan Booking Confirmed",
	shared.EventBookingCancelled: "Caravan Booking Cancelled",
}

var bodyTemplate = template.Must(template.New("booking").Funcs(template.FuncMap{
	"pounds": func(pence int64) string { return fmt.Sprintf("£%d.%02d", pence/100, pence%100) },
}).Parse(`{{.Heading}}

Caravan: {{.N.CaravanName}}
Check-in: {{.N.CheckIn}} ({{.N.CollectionWindow}})
Check-out: {{.N.CheckOut}} ({{.N.ReturnWindow}})
Booking type: {{.N.BookingType}}
Total Price: {{pounds .N.TotalPence}}

Customer Details:
Name: {{.N.CustomerName}}
Email: {{.N.CustomerEmail}}
Phone: {{.N.CustomerPhone}}

Booking reference: {{.N.BookingID}}
{{- if eq .N.Event "booking_requested"}}

Please confirm this booking.
{{- end}}
`))

type Renderer struct {
	staffEmail string
}

func NewRenderer(staffEmail string) *Renderer {
	return &Renderer{staffEmail: staffEmail}
}

// Render turns a queued job payload into the staff email.
func (r *Renderer) Render(job shared.NotificationJob) (Email, error) {
	var n shared.BookingNotification
	if err := json.Unmarshal(job.Payload, &n); err != nil {
		return Email{}, fmt.Errorf("decode notification %s: %w", job.ID, err)
	}

	subject, ok := subjects[n.Event]
	if !ok {
		return Email{}, fmt.Errorf("unknown notification event %q", n.Event)
	}

	var body bytes.Buffer
	err := bodyTemplate.Execute(&body, struct {
		Heading string
		N       shared.BookingNotification
	}{Heading: subject, N: n})
	if err != nil {
		return Email{}, fmt.Errorf("render notification %s: %w", job.ID, err)
	}

	return Email{
		To:      r.staffEmail,
		Subject: subject,
		Body:    body.String(),
		Event:   n.Event,
		Data:    json.RawMessage(job.Payload),
	}, nil
}
