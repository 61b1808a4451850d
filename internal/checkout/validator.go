package checkout

import (
	"fmt"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validation notices shown to the shopper
const (
	MsgPayerType     = "Please choose who you are paying for."
	MsgPayeeEmail    = "Please enter a valid Email address of payee."
	MsgDelegateName  = "Please enter the Full Name for %s."
	MsgDelegateEmail = "Please enter a valid Email Address for %s."
	MsgDelegatePhone = "Please enter the Phone Number for %s."
)

// Validator checks checkout submissions against the ticket blocks of the cart
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a submission validator. A nil validate gets a fresh instance.
func NewValidator(validate *validator.Validate) *Validator {
	if validate == nil {
		validate = validator.New()
	}
	return &Validator{validate: validate}
}

// IsEmail reports whether s is a syntactically valid email address that is stored unchanged.
// Addresses the sanitizer would shorten or rewrite are rejected.
func (v *Validator) IsEmail(s string) bool {
	if v.validate.Var(s, "required,email") != nil {
		return false
	}
	return SanitizeEmail(s) == s
}

// Validate returns every applicable notice; an empty slice means the submission is accepted.
func (v *Validator) Validate(form models.Submission, blocks []models.TicketBlock) []string {
	errs := []string{}

	if !Truthy(form[FieldPayerType]) {
		errs = append(errs, MsgPayerType)
	}
	if email := form[FieldPayeeEmail]; !Truthy(email) || !v.IsEmail(email) {
		errs = append(errs, MsgPayeeEmail)
	}

	for _, b := range blocks {
		if !Truthy(form[b.Key+SuffixName]) {
			errs = append(errs, fmt.Sprintf(MsgDelegateName, b.Label))
		}
		if email := form[b.Key+SuffixEmail]; !Truthy(email) || !v.IsEmail(email) {
			errs = append(errs, fmt.Sprintf(MsgDelegateEmail, b.Label))
		}
		if !Truthy(form[b.Key+SuffixPhone]) {
			errs = append(errs, fmt.Sprintf(MsgDelegatePhone, b.Label))
		}
	}

	return errs
}
