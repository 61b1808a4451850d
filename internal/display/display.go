// Package display renders checkout section headings and persisted registration data.
package display

import (
	"html/template"
	"io"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
)

// Section headings shown above the billing form
const (
	ContactHeading = "Contact Information"
	TicketsHeading = "Ticket Information"
	MetaBoxTitle   = "Registration Details"
)

var headingTmpl = template.Must(template.New("heading").Parse(
	`<div class="wccc-section wccc-section--{{.Section}}"><h3>{{.Title}}</h3></div>`,
))

var metaBoxTmpl = template.Must(template.New("metabox").Parse(
	`<div class="order-registration"><h3>{{.Title}}</h3>` +
		`{{range .Entries}}<p><strong>{{.Key}}:</strong> {{.Value}}</p>{{end}}</div>`,
))

// WriteHeading writes an escaped section heading fragment.
func WriteHeading(w io.Writer, section, title string) error {
	return headingTmpl.Execute(w, struct{ Section, Title string }{section, title})
}

// WriteMetaBox writes the admin order panel listing entries in order.
// Nothing is written when entries is empty.
func WriteMetaBox(w io.Writer, title string, entries []models.MetaEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return metaBoxTmpl.Execute(w, struct {
		Title   string
		Entries []models.MetaEntry
	}{title, entries})
}

// EmailFields converts metadata entries into email label/value pairs.
func EmailFields(entries []models.MetaEntry) []models.EmailField {
	out := make([]models.EmailField, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.EmailField{Label: e.Key, Value: e.Value})
	}
	return out
}
