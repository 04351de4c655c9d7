package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"matchgo-backend/config"
)

// EmailService handles sending transactional emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

// InterviewEmailData holds the data for interview invitation emails
type InterviewEmailData struct {
	CandidateEmail string
	JobTitle       string
	Date           time.Time
	MeetLink       string
	Message        string
}

// QuizPublishedData holds the data for quiz publication confirmations
type QuizPublishedData struct {
	OwnerEmail      string
	Title           string
	QuestionCount   int
	DurationSeconds int
	TotalScore      int
	CreatedAt       time.Time
}

// NewEmailService creates a new email service from SMTP configuration
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

const interviewEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Interview Scheduled</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1f2937; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .cta { display: inline-block; background: #10b981; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #10b981; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>You have been selected for an interview</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">Position:</div>
                <div>{{.JobTitle}}</div>
            </div>
            <div class="field">
                <div class="label">Date &amp; Time:</div>
                <div>{{.Date.Format "Monday, January 2, 2006 at 15:04"}}</div>
            </div>
            <div class="field">
                <a class="cta" href="{{.MeetLink}}">Join the interview</a>
            </div>
            {{if .Message}}
            <div class="field">
                <div class="label">Message from the team:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
            {{end}}
        </div>
        <div class="footer">
            <p>Good luck with your interview! — The Match&amp;Go Team</p>
        </div>
    </div>
</body>
</html>`

const quizPublishedTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Quiz Published</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2a9d8f; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Your quiz has been published</h1>
        </div>
        <div class="content">
            <p>Your quiz <b>"{{.Title}}"</b> is now live and candidates can start answering it.</p>
            <ul>
                <li>Number of questions: {{.QuestionCount}}</li>
                <li>Duration: {{.DurationMinutes}} minutes</li>
                <li>Total score: {{.TotalScore}}</li>
                <li>Created on: {{.CreatedAt.Format "January 2, 2006"}}</li>
            </ul>
        </div>
        <div class="footer">
            <p>Thank you for using Match&amp;Go.</p>
        </div>
    </div>
</body>
</html>`

// SendInterviewScheduled sends the interview invitation to the candidate.
func (s *EmailService) SendInterviewScheduled(data InterviewEmailData) error {
	body, err := render("interview", interviewEmailTemplate, data)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Interview Scheduled for %q", data.JobTitle)
	return s.send(data.CandidateEmail, subject, body)
}

// SendQuizPublished sends a publication confirmation to the quiz owner.
func (s *EmailService) SendQuizPublished(data QuizPublishedData) error {
	body, err := render("quiz_published", quizPublishedTemplate, struct {
		QuizPublishedData
		DurationMinutes int
	}{data, data.DurationSeconds / 60})
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Your quiz %q has been published", data.Title)
	return s.send(data.OwnerEmail, subject, body)
}

func render(name, text string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *EmailService) send(to, subject, htmlBody string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		subject,
		htmlBody,
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
