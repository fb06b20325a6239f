package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// EventSummary is the slice of catalog data the confirmation email needs.
type EventSummary struct {
	ID       string
	Title    string
	Date     string
	Time     string
	Location string
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #667eea; color: white; padding: 30px; border-radius: 10px; text-align: center;">
    <h1 style="margin: 0;">Welcome to EventFlow!</h1>
    <p style="margin: 10px 0 0 0;">Hi {{.FirstName}}, we're excited to have you on board!</p>
  </div>
  <div style="padding: 30px; background: #f8f9fa;">
    <h2 style="color: #333;">Getting Started</h2>
    <ul>
      <li><a href="{{.FrontendURL}}">Browse Events</a></li>
      <li><a href="{{.FrontendURL}}/my-events">My Events</a></li>
      <li><a href="{{.FrontendURL}}/login">Sign In</a></li>
    </ul>
    <p style="color: #555;">Discover school events, register with one click, and track
    your registrations in your personal dashboard.</p>
  </div>
</div>`))

var registrationTmpl = template.Must(template.New("registration").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: #667eea; color: white; padding: 30px; border-radius: 10px; text-align: center;">
    <h1 style="margin: 0;">Registration Confirmed!</h1>
    <p style="margin: 10px 0 0 0;">Hi {{.FirstName}}, your event registration has been confirmed.</p>
  </div>
  <div style="padding: 30px; background: #f8f9fa;">
    <div style="background: white; padding: 20px; border-left: 4px solid #667eea;">
      <h3 style="color: #667eea; margin: 0 0 15px 0;">{{.Event.Title}}</h3>
      <div><strong>Date:</strong> {{.Event.Date}}</div>
      <div><strong>Time:</strong> {{.Event.Time}}</div>
      <div><strong>Location:</strong> {{.Event.Location}}</div>
      <p style="margin-top: 20px;"><a href="{{.FrontendURL}}/events/{{.Event.ID}}">View Event Details</a></p>
    </div>
    <p style="color: #666;">Thank you for registering! We look forward to seeing you at the event.</p>
  </div>
</div>`))

// WelcomeMessage renders the signup welcome email.
func WelcomeMessage(to, firstName, frontendURL string) (Message, error) {
	var buf bytes.Buffer
	err := welcomeTmpl.Execute(&buf, struct {
		FirstName   string
		FrontendURL string
	}{firstName, frontendURL})
	if err != nil {
		return Message{}, fmt.Errorf("render welcome email: %w", err)
	}
	return Message{
		To:       to,
		Subject:  "Welcome to EventFlow!",
		BodyHTML: buf.String(),
		Tag:      "welcome",
	}, nil
}

// RegistrationMessage renders the event registration confirmation email.
func RegistrationMessage(to, firstName, frontendURL string, ev EventSummary) (Message, error) {
	var buf bytes.Buffer
	err := registrationTmpl.Execute(&buf, struct {
		FirstName   string
		FrontendURL string
		Event       EventSummary
	}{firstName, frontendURL, ev})
	if err != nil {
		return Message{}, fmt.Errorf("render registration email: %w", err)
	}
	return Message{
		To:       to,
		Subject:  "Event Registration Confirmation - " + ev.Title,
		BodyHTML: buf.String(),
		Tag:      "event-registration",
	}, nil
}
