package checkout

import (
	"github.com/Lixing-Zhang/conference-checkout/internal/models"
)

// Field keys owned by the conference checkout form.
const (
	FieldFirstName       = "billing_first_name"
	FieldLastName        = "billing_last_name"
	FieldCountry         = "billing_country"
	FieldAddress1        = "billing_address_1"
	FieldPayerType       = "contact_payer_type"
	FieldPayeeEmail      = "contact_payee_email"
	FieldNewsletterOptIn = "newsletter_optin"
)

// Per-ticket field suffixes, appended to the block key.
const (
	SuffixHeading    = "_heading"
	SuffixName       = "_name"
	SuffixEmail      = "_email"
	SuffixPhone      = "_phone"
	SuffixPresenting = "_presenting"
	SuffixWaitlisted = "_waitlisted"
)

const (
	firstTicketPriority = 70
	optInPriority       = 9999
)

// keptBillingFields are the only host billing fields that survive the rebuild.
var keptBillingFields = map[string]bool{
	FieldFirstName: true,
	FieldLastName:  true,
	FieldCountry:   true,
	FieldAddress1:  true,
}

// PayerTypeOptions are the choices of the "who are you paying for" select, in render order.
var PayerTypeOptions = []models.FieldOption{
	{Value: "", Label: "— Please choose —"},
	{Value: "self", Label: "I am paying for myself in order to attend or present at the conference"},
	{Value: "behalf", Label: "I am paying on behalf of someone else attending / presenting at the conference"},
	{Value: "multiple", Label: "I am paying for multiple people to attend or present at the conference"},
}

// BuildFields rebuilds the billing group of base for the given ticket blocks.
// Billing fields outside the allow-list are dropped; other groups pass through.
func BuildFields(base models.FieldSchema, blocks []models.TicketBlock, opts models.Options) models.FieldSchema {
	fields := base.Clone()

	billing := models.FieldSet{}
	for k, def := range fields[models.GroupBilling] {
		if keptBillingFields[k] {
			billing[k] = def
		}
	}
	fields[models.GroupBilling] = billing

	billing[FieldFirstName] = models.Field{
		Label:    "First name",
		Required: true,
		Class:    []string{"form-row-first"},
		Priority: 10,
	}
	billing[FieldLastName] = models.Field{
		Label:    "Last name",
		Required: true,
		Class:    []string{"form-row-last"},
		Priority: 20,
	}
	billing[FieldCountry] = models.Field{
		Type:     models.FieldTypeCountry,
		Label:    "Country / Region",
		Required: true,
		Class:    []string{"form-row-wide"},
		Priority: 30,
	}
	billing[FieldPayerType] = models.Field{
		Type:     models.FieldTypeSelect,
		Label:    "Who are you paying for?",
		Required: true,
		Options:  append([]models.FieldOption(nil), PayerTypeOptions...),
		Class:    []string{"form-row-wide"},
		Priority: 40,
	}
	billing[FieldPayeeEmail] = models.Field{
		Type:        models.FieldTypeEmail,
		Label:       "Email address of payee",
		Required:    true,
		Class:       []string{"form-row-wide"},
		Priority:    50,
		Validate:    []string{"email"},
		Placeholder: "payee@example.com",
	}
	billing[FieldAddress1] = models.Field{
		Label:       "Street address",
		Required:    true,
		Class:       []string{"form-row-wide"},
		Priority:    60,
		Placeholder: "House number and street name",
	}

	priority := firstTicketPriority
	for _, b := range blocks {
		for _, f := range ticketFields(b) {
			f.def.Priority = priority
			billing[b.Key+f.suffix] = f.def
			priority++
		}
	}

	last := optInPriority
	if priority > last {
		last = priority
	}
	billing[FieldNewsletterOptIn] = models.Field{
		Type:     models.FieldTypeCheckbox,
		Label:    opts.NewsletterLabel,
		Required: false,
		Class:    []string{"form-row-wide", "wccc-newsletter-optin"},
		Priority: last,
	}

	return fields
}

type ticketField struct {
	suffix string
	def    models.Field
}

// ticketFields returns the per-block fields in render order.
func ticketFields(b models.TicketBlock) []ticketField {
	return []ticketField{
		{SuffixHeading, models.Field{
			Type:    models.FieldTypeText,
			Label:   b.Label,
			Class:   []string{"form-row-wide", "wccc-ticket-heading"},
			Default: b.Label,
			CustomAttributes: map[string]string{
				"readonly":    "readonly",
				"tabindex":    "-1",
				"aria-hidden": "true",
			},
		}},
		{SuffixName, models.Field{
			Type:     models.FieldTypeText,
			Label:    "Full Name of Delegate / Attendee",
			Required: true,
			Class:    []string{"form-row-first"},
		}},
		{SuffixEmail, models.Field{
			Type:     models.FieldTypeEmail,
			Label:    "Email Address",
			Required: true,
			Class:    []string{"form-row-last"},
			Validate: []string{"email"},
		}},
		{SuffixPhone, models.Field{
			Type:     models.FieldTypeTel,
			Label:    "Phone Number",
			Required: true,
			Class:    []string{"form-row-wide"},
		}},
		{SuffixPresenting, models.Field{
			Type:  models.FieldTypeCheckbox,
			Label: "I am presenting at the conference",
			Class: []string{"form-row-wide"},
		}},
		{SuffixWaitlisted, models.Field{
			Type:  models.FieldTypeCheckbox,
			Label: "I have a paper that is currently waitlisted",
			Class: []string{"form-row-wide"},
		}},
	}
}

// DefaultBillingFields is the stock billing form the host starts from.
func DefaultBillingFields() models.FieldSchema {
	return models.FieldSchema{
		models.GroupBilling: {
			FieldFirstName:      {Label: "First name", Required: true, Priority: 10},
			FieldLastName:       {Label: "Last name", Required: true, Priority: 20},
			"billing_company":   {Label: "Company name", Priority: 30},
			FieldCountry:        {Type: models.FieldTypeCountry, Label: "Country / Region", Required: true, Priority: 40},
			FieldAddress1:       {Label: "Street address", Required: true, Priority: 50},
			"billing_address_2": {Label: "Apartment, suite, unit, etc.", Priority: 60},
			"billing_city":      {Label: "Town / City", Required: true, Priority: 70},
			"billing_state":     {Label: "State / County", Priority: 80},
			"billing_postcode":  {Label: "Postcode / ZIP", Required: true, Priority: 90},
			"billing_phone":     {Type: models.FieldTypeTel, Label: "Phone", Required: true, Priority: 100},
			"billing_email":     {Type: models.FieldTypeEmail, Label: "Email address", Required: true, Priority: 110},
		},
		models.GroupOrder: {
			"order_comments": {Label: "Order notes", Priority: 10},
		},
	}
}
