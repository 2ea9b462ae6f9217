package helper

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendResetCode(to, code string) error
	SendReservationConfirmation(to string, data ReservationMail) error
}

type ReservationMail struct {
	Code       string
	MovieTitle string
	HallName   string
	StartTime  time.Time
	Seats      []string
	TotalPrice float64
}

type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

var resetCodeTemplate = template.Must(template.New("reset").Parse(
	`<p>You are receiving this because you (or someone else) have requested the reset of the password for your account.</p>` +
		`<p>Here is your 6 digit reset code: <strong>{{.}}</strong></p>`))

var confirmationTemplate = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"join": func(s []string) string { return strings.Join(s, ", ") },
}).Parse(
	`<p>Your reservation <strong>{{.Code}}</strong> is confirmed.</p>` +
		`<p>{{.MovieTitle}} in {{.HallName}}, {{.StartTime.Format "Mon 02 Jan 2006 15:04 MST"}}</p>` +
		`<p>Seats: {{join .Seats}}</p>` +
		`<p>Total: {{printf "%.2f" .TotalPrice}}</p>`))

func (m *SMTPMailer) SendResetCode(to, code string) error {
	var body bytes.Buffer
	if err := resetCodeTemplate.Execute(&body, code); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset Password")
	msg.SetBody("text/html", body.String())

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return d.DialAndSend(msg)
}

func (m *SMTPMailer) SendReservationConfirmation(to string, data ReservationMail) error {
	var body bytes.Buffer
	if err := confirmationTemplate.Execute(&body, data); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = m.From
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Reservation %s confirmed", data.Code)
	e.HTML = body.Bytes()
	return e.Send(fmt.Sprintf("%s:%d", m.Host, m.Port), smtp.PlainAuth("", m.Username, m.Password, m.Host))
}
