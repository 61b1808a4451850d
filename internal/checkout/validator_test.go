package checkout

import (
	"fmt"
	"testing"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/Lixing-Zhang/conference-checkout/internal/tickets"
	"github.com/stretchr/testify/assert"
)

func validSubmission(blocks []models.TicketBlock) models.Submission {
	form := models.Submission{
		FieldFirstName:  "Ada",
		FieldLastName:   "Lovelace",
		FieldPayerType:  "multiple",
		FieldPayeeEmail: "ada@example.com",
	}
	for i, b := range blocks {
		form[b.Key+SuffixName] = fmt.Sprintf("Delegate %d", i+1)
		form[b.Key+SuffixEmail] = fmt.Sprintf("delegate%d@example.org", i+1)
		form[b.Key+SuffixPhone] = "+44 20 7946 0000"
	}
	return form
}

func TestValidate_ValidSubmission(t *testing.T) {
	blocks := tickets.ListTicketBlocks(cartWithQuantities(2, 1))
	errs := NewValidator(nil).Validate(validSubmission(blocks), blocks)
	assert.NotNil(t, errs)
	assert.Empty(t, errs)
}

func TestValidate_EmptySubmission(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		var blocks []models.TicketBlock
		if n > 0 {
			blocks = tickets.ListTicketBlocks(cartWithQuantities(n))
		}
		errs := NewValidator(nil).Validate(models.Submission{}, blocks)
		assert.Len(t, errs, 2+3*n, "tickets=%d", n)
	}
}

func TestValidate_MessageOrder(t *testing.T) {
	blocks := tickets.ListTicketBlocks(cartWithQuantities(1))
	errs := NewValidator(nil).Validate(models.Submission{}, blocks)

	label := blocks[0].Label
	assert.Equal(t, []string{
		MsgPayerType,
		MsgPayeeEmail,
		fmt.Sprintf(MsgDelegateName, label),
		fmt.Sprintf(MsgDelegateEmail, label),
		fmt.Sprintf(MsgDelegatePhone, label),
	}, errs)
}

func TestValidate_FieldRules(t *testing.T) {
	blocks := tickets.ListTicketBlocks(cartWithQuantities(1))
	label := blocks[0].Label
	key := blocks[0].Key

	tests := []struct {
		name   string
		mutate func(models.Submission)
		want   []string
	}{
		{
			name:   "payer type zero counts as empty",
			mutate: func(f models.Submission) { f[FieldPayerType] = "0" },
			want:   []string{MsgPayerType},
		},
		{
			name:   "malformed payee email",
			mutate: func(f models.Submission) { f[FieldPayeeEmail] = "not-an-email" },
			want:   []string{MsgPayeeEmail},
		},
		{
			name:   "missing delegate name",
			mutate: func(f models.Submission) { delete(f, key+SuffixName) },
			want:   []string{fmt.Sprintf(MsgDelegateName, label)},
		},
		{
			name:   "malformed delegate email",
			mutate: func(f models.Submission) { f[key+SuffixEmail] = "delegate@" },
			want:   []string{fmt.Sprintf(MsgDelegateEmail, label)},
		},
		{
			name:   "empty delegate phone",
			mutate: func(f models.Submission) { f[key+SuffixPhone] = "" },
			want:   []string{fmt.Sprintf(MsgDelegatePhone, label)},
		},
		{
			name: "errors accumulate",
			mutate: func(f models.Submission) {
				f[FieldPayerType] = ""
				f[key+SuffixPhone] = ""
			},
			want: []string{MsgPayerType, fmt.Sprintf(MsgDelegatePhone, label)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validSubmission(blocks)
			tt.mutate(form)
			assert.Equal(t, tt.want, NewValidator(nil).Validate(form, blocks))
		})
	}
}

func TestValidator_IsEmail(t *testing.T) {
	v := NewValidator(nil)
	assert.True(t, v.IsEmail("payee@example.com"))
	assert.True(t, v.IsEmail("first.last+tag@sub.example.co.uk"))
	assert.False(t, v.IsEmail(""))
	assert.False(t, v.IsEmail("payee"))
	assert.False(t, v.IsEmail("payee@@example.com"))
}

func TestValidator_AcceptedEmailsAreStoredUnchanged(t *testing.T) {
	blocks := tickets.ListTicketBlocks(cartWithQuantities(1))
	key := blocks[0].Key
	v := NewValidator(nil)

	tests := []struct {
		email  string
		accept bool
	}{
		{"payee@example.com", true},
		{"first.last+tag@sub.example.co.uk", true},
		{"a@b.c", false},
		{"jörg@example.com", false},
		{`"j d"@example.com`, false},
		{" payee@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			form := validSubmission(blocks)
			form[FieldPayeeEmail] = tt.email
			form[key+SuffixEmail] = tt.email

			errs := v.Validate(form, blocks)
			if !tt.accept {
				assert.Equal(t, []string{MsgPayeeEmail, fmt.Sprintf(MsgDelegateEmail, blocks[0].Label)}, errs)
				return
			}
			assert.Empty(t, errs)

			order := &models.Order{}
			WriteMeta(order, form, blocks)
			payee, _ := order.Meta.Get(MetaPayeeEmail)
			delegate, _ := order.Meta.Get(blocks[0].Label + MetaDelegateEmail)
			assert.Equal(t, tt.email, payee)
			assert.Equal(t, tt.email, delegate)
		})
	}
}
