// Package options loads the checkout configuration record merged over defaults.
package options

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/conference-checkout/internal/models"
	"github.com/shopspring/decimal"
)

// OptionName is the key the configuration record is persisted under.
const OptionName = "conference_checkout_options"

var (
	ErrInvalidOptions = errors.New("invalid options")
)

// Repository persists raw option records. GetOption returns nil when nothing is saved.
type Repository interface {
	GetOption(ctx context.Context, name string) ([]byte, error)
	SaveOption(ctx context.Context, name string, value []byte) error
}

// Defaults returns the options used when nothing has been saved.
func Defaults() models.Options {
	return models.Options{
		FeeEnabled:      true,
		FeeTitle:        "Pay on the Door Surcharge",
		FeeAmount:       decimal.NewFromInt(10),
		FeeTaxable:      false,
		FeeTaxClass:     "",
		FeeOnlyCOD:      true,
		NewsletterLabel: "I agree to be added to the newsletter and receive conference updates (optional)",
	}
}

// Store reads and updates the options record
type Store struct {
	repo Repository
	log  *slog.Logger
}

// NewStore creates a new options store
func NewStore(repo Repository, log *slog.Logger) *Store {
	return &Store{
		repo: repo,
		log:  log,
	}
}

// Get loads the saved record and merges it over the defaults.
func (s *Store) Get(ctx context.Context) (models.Options, error) {
	saved, err := s.load(ctx)
	if err != nil {
		return models.Options{}, err
	}
	return s.merge(saved), nil
}

// Update merges patch into the saved record, persists it and returns the effective options.
func (s *Store) Update(ctx context.Context, patch []byte) (models.Options, error) {
	var incoming map[string]json.RawMessage
	if err := json.Unmarshal(patch, &incoming); err != nil {
		return models.Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	saved, err := s.load(ctx)
	if err != nil {
		return models.Options{}, err
	}
	for k, v := range incoming {
		saved[k] = v
	}

	opts := s.merge(saved)
	if opts.FeeAmount.IsNegative() {
		return models.Options{}, fmt.Errorf("%w: fee_amount must not be negative", ErrInvalidOptions)
	}

	raw, err := json.Marshal(saved)
	if err != nil {
		return models.Options{}, fmt.Errorf("failed to encode options: %w", err)
	}
	if err := s.repo.SaveOption(ctx, OptionName, raw); err != nil {
		return models.Options{}, fmt.Errorf("failed to save options: %w", err)
	}
	return opts, nil
}

// load returns the saved record as raw fields. Records that are not JSON objects count as empty.
func (s *Store) load(ctx context.Context) (map[string]json.RawMessage, error) {
	raw, err := s.repo.GetOption(ctx, OptionName)
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}

	saved := make(map[string]json.RawMessage)
	if len(raw) == 0 {
		return saved, nil
	}
	if err := json.Unmarshal(raw, &saved); err != nil || saved == nil {
		s.log.Warn("ignoring malformed options record", "error", err)
		return make(map[string]json.RawMessage), nil
	}
	return saved, nil
}

func (s *Store) merge(saved map[string]json.RawMessage) models.Options {
	opts := Defaults()
	for key, raw := range saved {
		var err error
		switch key {
		case "fee_enabled":
			err = decodeBool(raw, &opts.FeeEnabled)
		case "fee_title":
			err = json.Unmarshal(raw, &opts.FeeTitle)
		case "fee_amount":
			var amount decimal.Decimal
			if err = amount.UnmarshalJSON(raw); err == nil {
				opts.FeeAmount = amount
			}
		case "fee_taxable":
			err = decodeBool(raw, &opts.FeeTaxable)
		case "fee_tax_class":
			err = json.Unmarshal(raw, &opts.FeeTaxClass)
		case "fee_only_cod":
			err = decodeBool(raw, &opts.FeeOnlyCOD)
		case "newsletter_label":
			err = json.Unmarshal(raw, &opts.NewsletterLabel)
		}
		if err != nil {
			s.log.Warn("ignoring invalid option value", "option", key, "error", err)
		}
	}
	return opts
}

// decodeBool accepts JSON booleans, numbers and numeric or boolean strings.
func decodeBool(raw json.RawMessage, dst *bool) error {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*dst = t
	case float64:
		*dst = t != 0
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			*dst = false
			return nil
		}
		b, err := strconv.ParseBool(t)
		if err != nil {
			return fmt.Errorf("not a boolean: %q", t)
		}
		*dst = b
	case nil:
		*dst = false
	default:
		return fmt.Errorf("not a boolean: %s", raw)
	}
	return nil
}
