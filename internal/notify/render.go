package notify

import (
	"html/template"
	"strings"

	"github.com/tablecreole/contact-api/internal/models"
)

// emailView is the data handed to the notification template. Labels are
// resolved here so the template stays dumb.
type emailView struct {
	models.CleanSubmission
	ServiceLabel string
	SubjectLabel string
}

var emailTmpl = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Georgia, serif; color: #2b2b2b; max-width: 560px;">
  {{if .Booking}}<h2>Nouvelle réservation</h2>{{else}}<h2>Nouvelle demande de contact</h2>{{end}}
  <table cellpadding="6">
    <tr><td><strong>Nom</strong></td><td>{{.Name}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>
    <tr><td><strong>Téléphone</strong></td><td>{{.Phone}}</td></tr>
    {{if .Booking}}
    <tr><td><strong>Date souhaitée</strong></td><td>{{.Date}}</td></tr>
    <tr><td><strong>Prestation</strong></td><td>{{.ServiceLabel}}</td></tr>
    <tr><td><strong>Convives</strong></td><td>{{.Guests}}</td></tr>
    {{else if .SubjectLabel}}
    <tr><td><strong>Objet</strong></td><td>{{.SubjectLabel}}</td></tr>
    {{end}}
  </table>
  {{if .Message}}<p><strong>Message :</strong></p><p>{{.Message}}</p>{{end}}
</body>
</html>`))

// renderHTML produces the notification email body for an accepted
// submission. html/template escapes every field, so whatever survived the
// classifiers still cannot inject markup into the chef's inbox.
func renderHTML(sub models.CleanSubmission) (string, error) {
	view := emailView{
		CleanSubmission: sub,
		ServiceLabel:    models.ServiceTypeLabel(sub.ServiceType),
	}
	if sub.Subject != "" {
		view.SubjectLabel = models.SubjectLabel(sub.Subject)
	}

	var buf strings.Builder
	if err := emailTmpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
