package services

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/l3montree-dev/dashcase/database/models"
)

//go:embed templates/*.html.gotmpl
var notificationTemplateFiles embed.FS

var notificationTemplates = template.Must(template.ParseFS(notificationTemplateFiles, "templates/*.html.gotmpl"))

type notificationView struct {
	FrontendURL string

	RequestID          string
	RequestTitle       string
	RequestDescription string
	ApplicationName    string
	RequesterName      string
	PreviousStatus     string
	NewStatus          string

	Branch      string
	PipelineID  string
	WebURL      string
	FailedCount string

	Raw string
}

// lookup walks nested maps and renders the leaf, missing keys yield an empty string.
func lookup(data map[string]any, path ...string) string {
	var current any = data
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current, ok = m[key]
		if !ok || current == nil {
			return ""
		}
	}
	switch v := current.(type) {
	case string:
		return v
	case float64:
		// numbers decoded from json
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

func statusLabel(status string) string {
	if status == "" {
		return ""
	}
	return models.TestRequestStatus(status).Label()
}

// renderNotification returns the subject and html body for the notification type.
func renderNotification(notificationType models.NotificationType, data map[string]any, frontendURL string) (string, string, error) {
	view := notificationView{FrontendURL: frontendURL}
	var subject, name string

	switch notificationType {
	case models.NotificationTypeRequestNew:
		name = "request_new.html.gotmpl"
		view.RequestID = lookup(data, "request", "id")
		view.RequestTitle = lookup(data, "request", "title")
		view.RequestDescription = lookup(data, "request", "description")
		view.ApplicationName = lookup(data, "application", "name")
		view.RequesterName = strings.TrimSpace(lookup(data, "requester", "firstName") + " " + lookup(data, "requester", "lastName"))
		subject = fmt.Sprintf("[DashCase] New test case request: %s", view.RequestTitle)
	case models.NotificationTypeRequestStatusChange:
		name = "request_status_change.html.gotmpl"
		view.RequestID = lookup(data, "request", "id")
		view.RequestTitle = lookup(data, "request", "title")
		view.PreviousStatus = statusLabel(lookup(data, "previousStatus"))
		view.NewStatus = statusLabel(lookup(data, "newStatus"))
		subject = fmt.Sprintf("[DashCase] Status changed for request: %s", view.RequestTitle)
	case models.NotificationTypePipelineFailed:
		name = "pipeline_failed.html.gotmpl"
		view.Branch = lookup(data, "pipeline", "branch")
		view.PipelineID = lookup(data, "pipeline", "gitlabPipelineId")
		view.WebURL = lookup(data, "pipeline", "webUrl")
		view.FailedCount = lookup(data, "failedCount")
		if view.FailedCount == "" {
			view.FailedCount = "0"
		}
		subject = fmt.Sprintf("[DashCase] Pipeline failed on %s", view.Branch)
	default:
		name = "generic.html.gotmpl"
		raw, err := json.Marshal(data)
		if err != nil {
			return "", "", err
		}
		view.Raw = string(raw)
		subject = "[DashCase] Notification"
	}

	var body bytes.Buffer
	if err := notificationTemplates.ExecuteTemplate(&body, name, view); err != nil {
		return "", "", fmt.Errorf("could not render %s notification: %w", notificationType, err)
	}
	return subject, body.String(), nil
}
