package stripe

import (
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/courtvision/internal/domain/billing"
	"github.com/stripe/stripe-go/v82/webhook"
)

// WebhookVerifier checks Stripe-Signature headers against the endpoint
// secret and reduces events to the fields billing acts on.
type WebhookVerifier struct {
	secret    string
	tolerance time.Duration
}

func NewWebhookVerifier(secret string, tolerance time.Duration) *WebhookVerifier {
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &WebhookVerifier{secret: strings.TrimSpace(secret), tolerance: tolerance}
}

type eventObject struct {
	ClientReferenceID string            `json:"client_reference_id"`
	Metadata          map[string]string `json:"metadata"`
	Customer          any               `json:"customer"`
}

func (v *WebhookVerifier) VerifyEvent(payload []byte, signature string) (billing.Event, error) {
	if v == nil || v.secret == "" {
		return billing.Event{}, billing.ErrWebhookNotConfigured
	}
	if strings.TrimSpace(signature) == "" {
		return billing.Event{}, billing.ErrMissingSignature
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return billing.Event{}, fmt.Errorf("verify stripe webhook: %w: %w", billing.ErrInvalidSignature, err)
	}

	out := billing.Event{
		ID:        event.ID,
		Type:      string(event.Type),
		CreatedAt: time.Unix(event.Created, 0).UTC(),
	}
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return out, nil
	}

	var obj eventObject
	if err := sonic.Unmarshal(event.Data.Raw, &obj); err != nil {
		return billing.Event{}, fmt.Errorf("decode stripe %s object: %w: %w", event.Type, billing.ErrMalformedEvent, err)
	}
	out.CustomerID = customerID(obj.Customer)
	out.UserID = strings.TrimSpace(obj.Metadata["userId"])
	if out.UserID == "" {
		out.UserID = strings.TrimSpace(obj.ClientReferenceID)
	}
	return out, nil
}

// customerID accepts both the bare id and an expanded customer object.
func customerID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		if id, ok := t["id"].(string); ok {
			return strings.TrimSpace(id)
		}
	}
	return ""
}
