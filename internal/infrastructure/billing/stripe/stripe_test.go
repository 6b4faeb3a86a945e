package stripe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/riskibarqy/courtvision/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testWebhookSecret = "whsec_courtvision_test"

func signed(t *testing.T, payload string) string {
	t.Helper()
	out := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    testWebhookSecret,
		Timestamp: time.Now(),
	})
	return out.Header
}

func TestWebhookVerifier_CheckoutCompleted(t *testing.T) {
	t.Parallel()

	payload := `{"id":"evt_123","object":"event","type":"checkout.session.completed","created":1761955200,
"data":{"object":{"id":"cs_1","object":"checkout.session","customer":"cus_42","metadata":{"userId":"user_abc"}}}}`

	event, err := NewWebhookVerifier(testWebhookSecret, 0).VerifyEvent([]byte(payload), signed(t, payload))
	require.NoError(t, err)
	assert.Equal(t, "evt_123", event.ID)
	assert.Equal(t, billing.EventCheckoutCompleted, event.Type)
	assert.Equal(t, "user_abc", event.UserID)
	assert.Equal(t, "cus_42", event.CustomerID)
	assert.Equal(t, time.Unix(1761955200, 0).UTC(), event.CreatedAt)
}

func TestWebhookVerifier_SubscriptionDeletedWithExpandedCustomer(t *testing.T) {
	t.Parallel()

	payload := `{"id":"evt_9","object":"event","type":"customer.subscription.deleted","created":1761955200,
"data":{"object":{"id":"sub_1","object":"subscription","customer":{"id":"cus_7","object":"customer"}}}}`

	event, err := NewWebhookVerifier(testWebhookSecret, 0).VerifyEvent([]byte(payload), signed(t, payload))
	require.NoError(t, err)
	assert.Equal(t, billing.EventSubscriptionDeleted, event.Type)
	assert.Equal(t, "cus_7", event.CustomerID)
	assert.Empty(t, event.UserID)
}

func TestWebhookVerifier_Rejections(t *testing.T) {
	t.Parallel()

	payload := `{"id":"evt_1","object":"event","type":"invoice.paid","created":1761955200,"data":{"object":{}}}`

	_, err := NewWebhookVerifier("", 0).VerifyEvent([]byte(payload), "t=1,v1=abc")
	assert.ErrorIs(t, err, billing.ErrWebhookNotConfigured)

	verifier := NewWebhookVerifier(testWebhookSecret, 0)
	_, err = verifier.VerifyEvent([]byte(payload), "")
	assert.ErrorIs(t, err, billing.ErrMissingSignature)

	_, err = verifier.VerifyEvent([]byte(payload), "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, billing.ErrInvalidSignature)

	tampered := signed(t, payload)
	_, err = verifier.VerifyEvent([]byte(payload+" "), tampered)
	assert.ErrorIs(t, err, billing.ErrInvalidSignature)
}

func TestWebhookVerifier_MalformedObject(t *testing.T) {
	t.Parallel()

	payload := `{"id":"evt_2","object":"event","type":"checkout.session.completed","created":1761955200,"data":{"object":{"metadata":"user_1"}}}`

	_, err := NewWebhookVerifier(testWebhookSecret, 0).VerifyEvent([]byte(payload), signed(t, payload))
	assert.ErrorIs(t, err, billing.ErrMalformedEvent)
	assert.NotErrorIs(t, err, billing.ErrInvalidSignature)
}

func TestNewCheckoutClient_DisabledWithoutCredentials(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewCheckoutClient(CheckoutConfig{PriceID: "price_1"}))
	assert.Nil(t, NewCheckoutClient(CheckoutConfig{SecretKey: "sk_test_1"}))
}

func TestCheckoutClient_CreateCheckoutSession(t *testing.T) {
	t.Parallel()

	var form url.Values
	var gotPath, gotAuth, gotIdempotency string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotIdempotency = r.Header.Get("Idempotency-Key")
		raw, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(raw))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.test/cs_test_1"}`))
	}))
	defer srv.Close()

	client := NewCheckoutClient(CheckoutConfig{SecretKey: "sk_test_1", PriceID: "price_premium", APIURL: srv.URL})
	require.NotNil(t, client)

	out, err := client.CreateCheckoutSession(context.Background(), billing.CheckoutRequest{
		UserID:         "user_abc",
		Email:          "fan@example.com",
		SuccessURL:     "https://app.test/checkout-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      "https://app.test/checkout-cancel",
		IdempotencyKey: "idem-1",
	})
	require.NoError(t, err)
	assert.Equal(t, billing.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, out)

	assert.Equal(t, "/v1/checkout/sessions", gotPath)
	assert.Equal(t, "Bearer sk_test_1", gotAuth)
	assert.Equal(t, "idem-1", gotIdempotency)
	assert.Equal(t, "subscription", form.Get("mode"))
	assert.Equal(t, "price_premium", form.Get("line_items[0][price]"))
	assert.Equal(t, "1", form.Get("line_items[0][quantity]"))
	assert.Equal(t, "user_abc", form.Get("metadata[userId]"))
	assert.Equal(t, "fan@example.com", form.Get("customer_email"))
}

func TestCheckoutClient_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"No such price"}}`))
	}))
	defer srv.Close()

	client := NewCheckoutClient(CheckoutConfig{SecretKey: "sk_test_1", PriceID: "price_missing", APIURL: srv.URL})
	_, err := client.CreateCheckoutSession(context.Background(), billing.CheckoutRequest{UserID: "user_abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such price")
}
