package service

import (
	"errors"
	"strings"

	apperrors "github.com/Georgesib05/comming-soon/pkg/errors"
	"github.com/Georgesib05/comming-soon/pkg/i18n"
	"github.com/Georgesib05/comming-soon/pkg/validator"
)

// CheckoutInput is the delivery form submitted at checkout. Phone is the
// local number without the country code. Floor is optional.
type CheckoutInput struct {
	FirstName string `json:"first_name" validate:"notblank"`
	LastName  string `json:"last_name" validate:"notblank"`
	Phone     string `json:"phone" validate:"notblank,local_phone"`
	Email     string `json:"email" validate:"notblank,email_address"`
	Address   string `json:"address" validate:"notblank"`
	Building  string `json:"building" validate:"notblank"`
	Floor     string `json:"floor"`
	Language  string `json:"language"`
}

func (in CheckoutInput) normalized() CheckoutInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.Building = strings.TrimSpace(in.Building)
	in.Floor = strings.TrimSpace(in.Floor)
	return in
}

// formFields lists the checkout fields in form order.
var formFields = []string{"first_name", "last_name", "phone", "email", "address", "building"}

var fieldMessages = map[string]map[string]i18n.Key{
	"first_name": {"notblank": i18n.MsgFirstNameRequired},
	"last_name":  {"notblank": i18n.MsgLastNameRequired},
	"phone":      {"notblank": i18n.MsgPhoneRequired, "local_phone": i18n.MsgPhoneInvalid},
	"email":      {"notblank": i18n.MsgEmailRequired, "email_address": i18n.MsgEmailInvalid},
	"address":    {"notblank": i18n.MsgAddressRequired},
	"building":   {"notblank": i18n.MsgBuildingRequired},
}

// validateForm checks the checkout form and reports every failing field with
// a message in lang.
func validateForm(lang i18n.Lang, in CheckoutInput) error {
	err := validator.Validate(in)
	if err == nil {
		return nil
	}
	var valErr *validator.ValidationError
	if !errors.As(err, &valErr) {
		return apperrors.InvalidInput(err.Error())
	}
	return localizedValidation(lang, valErr.Tags())
}

func localizedValidation(lang i18n.Lang, tags map[string]string) *apperrors.AppError {
	fields := make(map[string]string, len(tags))
	missing := false
	first := ""
	for _, field := range formFields {
		tag, ok := tags[field]
		if !ok {
			continue
		}
		key, ok := fieldMessages[field][tag]
		if !ok {
			key = i18n.MsgFieldInvalid
		}
		fields[field] = i18n.T(lang, key)
		if first == "" {
			first = fields[field]
		}
		if tag == "notblank" {
			missing = true
		}
	}
	for field := range tags {
		if _, ok := fields[field]; !ok {
			fields[field] = i18n.T(lang, i18n.MsgFieldInvalid)
		}
	}

	msg := first
	if missing || msg == "" {
		msg = i18n.T(lang, i18n.MsgRequiredFields)
	}
	return apperrors.Validation(msg, fields)
}
