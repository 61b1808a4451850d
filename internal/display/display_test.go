package display

import (
	"bytes"
	"testing"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHeading(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeading(&buf, "contact", ContactHeading))
	assert.Equal(t, `<div class="wccc-section wccc-section--contact"><h3>Contact Information</h3></div>`, buf.String())
}

func TestWriteMetaBox_EscapesValues(t *testing.T) {
	entries := []models.MetaEntry{
		{Key: "Contact: Payer Type", Value: "self"},
		{Key: "Ticket 1 — Pass (1 of 1): Delegate Name", Value: "<script>alert(1)</script>"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMetaBox(&buf, MetaBoxTitle, entries))

	out := buf.String()
	assert.Contains(t, out, "<h3>Registration Details</h3>")
	assert.Contains(t, out, "<strong>Contact: Payer Type:</strong> self")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestWriteMetaBox_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMetaBox(&buf, MetaBoxTitle, nil))
	assert.Empty(t, buf.String())
}

func TestEmailFields(t *testing.T) {
	fields := EmailFields([]models.MetaEntry{{Key: "Contact: Newsletter Consent", Value: "No"}})
	assert.Equal(t, []models.EmailField{{Label: "Contact: Newsletter Consent", Value: "No"}}, fields)
}
