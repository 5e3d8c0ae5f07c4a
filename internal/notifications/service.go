package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-resty/resty/v2"
	"github.com/quickdrop/quickdrop/internal/config"
	"github.com/quickdrop/quickdrop/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// maxListed caps how many files a digest message spells out.
const maxListed = 10

// Service handles sending notifications via various channels
type Service struct {
	config *config.Config
	client *resty.Client
	dialer *gomail.Dialer
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle string      `json:"activityTitle,omitempty"`
	ActivityText  string      `json:"activityText,omitempty"`
	Facts         []TeamsFact `json:"facts,omitempty"`
	Markdown      bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// SendDigest sends a digest via every configured channel
func (s *Service) SendDigest(digest *models.Digest) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(digest); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent digest to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(digest); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent digest via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(digest *models.Digest) error {
	message := s.buildTeamsMessage(digest)

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsMessage(digest *models.Digest) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("%s upload digest - %s", s.config.Title, periodLabel(digest.Period)),
		Text:    fmt.Sprintf("%d files uploaded in the last %s", digest.TotalFiles, periodWindow(digest.Period)),
	}

	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts: []TeamsFact{
			{Name: "Files", Value: fmt.Sprintf("%d", digest.TotalFiles)},
			{Name: "Total size", Value: formatBytes(digest.TotalBytes)},
			{Name: "Generated", Value: digest.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
		},
		Markdown: true,
	})

	if len(digest.Files) > 0 {
		var lines []string
		for i, f := range digest.Files {
			if i >= maxListed {
				break
			}
			lines = append(lines, fmt.Sprintf("**[%s](%s)** - %s (%s)",
				f.Name, s.fileURL(f.Name), formatBytes(f.Size), f.ModTime.Format("Jan 2 15:04")))
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Recent Uploads",
			ActivityText:  strings.Join(lines, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) sendEmail(digest *models.Digest) error {
	subject := fmt.Sprintf("%s upload digest - %s (%d files)",
		s.config.Title, periodLabel(digest.Period), digest.TotalFiles)

	htmlBody, err := s.buildEmailHTML(digest)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", s.buildEmailText(digest))
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

const emailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}} upload digest</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #0078d4; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .file { border-left: 4px solid #0078d4; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .file-meta { color: #666; font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Title}} upload digest</h1>
        <p>{{.Period}} digest generated on {{.Digest.GeneratedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <div class="summary">
        <p><strong>Files:</strong> {{.Digest.TotalFiles}}</p>
        <p><strong>Total size:</strong> {{bytes .Digest.TotalBytes}}</p>
    </div>

    {{range $index, $file := .Digest.Files}}
    {{if lt $index $.Limit}}
    <div class="file">
        <a href="{{url $file.Name}}">{{$file.Name}}</a>
        <div class="file-meta">{{bytes $file.Size}} | {{$file.ModTime.Format "Jan 2, 2006 15:04"}}</div>
    </div>
    {{end}}
    {{end}}

    <hr>
    <p><small>This digest was generated automatically by {{.Title}}.</small></p>
</body>
</html>
`

func (s *Service) buildEmailHTML(digest *models.Digest) (string, error) {
	t := template.New("email").Funcs(template.FuncMap{
		"bytes": formatBytes,
		"url":   s.fileURL,
	})

	t, err := t.Parse(emailTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		Title  string
		Period string
		Limit  int
		Digest *models.Digest
	}{
		Title:  s.config.Title,
		Period: periodLabel(digest.Period),
		Limit:  maxListed,
		Digest: digest,
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildEmailText(digest *models.Digest) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("%s upload digest - %s\n", s.config.Title, periodLabel(digest.Period)))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", digest.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Files: %d\n", digest.TotalFiles))
	text.WriteString(fmt.Sprintf("Total size: %s\n", formatBytes(digest.TotalBytes)))

	if len(digest.Files) > 0 {
		text.WriteString("\nRECENT UPLOADS\n")
		text.WriteString("==============\n")

		for i, f := range digest.Files {
			if i >= maxListed {
				text.WriteString(fmt.Sprintf("\n... and %d more\n", len(digest.Files)-maxListed))
				break
			}
			text.WriteString(fmt.Sprintf("\n%d. %s (%s, %s)\n", i+1, f.Name, formatBytes(f.Size), f.ModTime.Format("Jan 2, 2006 15:04")))
			text.WriteString(fmt.Sprintf("   URL: %s\n", s.fileURL(f.Name)))
		}
	}

	text.WriteString(fmt.Sprintf("\n---\nThis digest was generated automatically by %s.\n", s.config.Title))

	return text.String()
}

func (s *Service) fileURL(name string) string {
	return s.config.UserURL + "/" + url.PathEscape(name)
}

func periodLabel(period string) string {
	switch period {
	case "daily":
		return "Daily"
	case "weekly":
		return "Weekly"
	default:
		return period
	}
}

func periodWindow(period string) string {
	if period == "weekly" {
		return "7 days"
	}
	return "24 hours"
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
