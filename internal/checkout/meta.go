package checkout

import (
	"strings"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
)

// Order metadata keys for the contact section
const (
	MetaPayerType         = "Contact: Payer Type"
	MetaPayeeEmail        = "Contact: Payee Email"
	MetaNewsletterConsent = "Contact: Newsletter Consent"
	metaContactPrefix     = "Contact: "
	metaTicketPrefix      = "Ticket "
)

// Per-ticket metadata key suffixes, appended to the block label
const (
	MetaDelegateName  = ": Delegate Name"
	MetaDelegateEmail = ": Delegate Email"
	MetaDelegatePhone = ": Delegate Phone"
	MetaPresenting    = ": Presenting"
	MetaWaitlisted    = ": Waitlisted"
)

type metaMapping struct {
	fieldSuffix string
	metaSuffix  string
	normalize   func(string) string
}

var ticketMeta = []metaMapping{
	{SuffixName, MetaDelegateName, SanitizeText},
	{SuffixEmail, MetaDelegateEmail, SanitizeEmail},
	{SuffixPhone, MetaDelegatePhone, SanitizeText},
	{SuffixPresenting, MetaPresenting, YesNo},
	{SuffixWaitlisted, MetaWaitlisted, YesNo},
}

// WriteMeta copies the submitted registration data onto the order.
// Fields missing from the submission are skipped; newsletter consent is always written.
func WriteMeta(order *models.Order, form models.Submission, blocks []models.TicketBlock) {
	if v, ok := form.Lookup(FieldPayerType); ok {
		order.Meta.Set(MetaPayerType, SanitizeText(v))
	}
	if v, ok := form.Lookup(FieldPayeeEmail); ok {
		order.Meta.Set(MetaPayeeEmail, SanitizeEmail(v))
	}
	order.Meta.Set(MetaNewsletterConsent, YesNo(form[FieldNewsletterOptIn]))

	for _, b := range blocks {
		for _, m := range ticketMeta {
			v, ok := form.Lookup(b.Key + m.fieldSuffix)
			if !ok {
				continue
			}
			order.Meta.Set(b.Label+m.metaSuffix, m.normalize(v))
		}
	}
}

// IsRegistrationMeta reports whether key was written by WriteMeta.
func IsRegistrationMeta(key string) bool {
	return strings.HasPrefix(key, metaContactPrefix) || strings.HasPrefix(key, metaTicketPrefix)
}
