package domain

import (
	"strings"
	"time"

	"github.com/Georgesib05/comming-soon/pkg/i18n"
)

// Subscription is a request to be told when the store launches. It is not
// stored; it lives only while the notification is being sent.
type Subscription struct {
	Email       string    `json:"email"`
	Language    i18n.Lang `json:"language"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewSubscription normalizes the email address and falls back to the
// default language when lang is not supported.
func NewSubscription(email string, lang i18n.Lang, at time.Time) Subscription {
	if !lang.Valid() {
		lang = i18n.Default
	}
	return Subscription{
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Language:    lang,
		RequestedAt: at.UTC(),
	}
}
