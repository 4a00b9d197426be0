package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/example/pizzeria/internal/config"
	"github.com/example/pizzeria/internal/models"
	"github.com/example/pizzeria/internal/realtime"
)

type fakeMail struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeMail) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func pickupOrder(withUser bool) *models.Order {
	order := &models.Order{
		Items:         []models.OrderItem{{Name: "Margherita", Price: 10, Quantity: 1}},
		TotalAmount:   12,
		OrderStatus:   models.StatusReadyForPickup,
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
	}
	order.ID = uuid.New()
	if withUser {
		order.UserID = uuid.New()
		order.User = &models.User{Name: "Alice", Phone: "+4915200000000"}
	}
	return order
}

func resultFor(t *testing.T, results []ChannelResult, channel string) ChannelResult {
	t.Helper()
	for _, r := range results {
		if r.Channel == channel {
			return r
		}
	}
	t.Fatalf("no result for channel %s", channel)
	return ChannelResult{}
}

func TestNotifyPickupReady_RealtimeAlwaysPublishes(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub, &config.Config{})
	order := pickupOrder(true)

	results := n.NotifyPickupReady(order)

	assert.Equal(t, ChannelDelivered, resultFor(t, results, "realtime").Status)

	events := pub.byEvent("pickupReady")
	require.Len(t, events, 2)
	assert.Equal(t, realtime.OrderRoom(order.ID.String()), events[0].Room)
	assert.Equal(t, realtime.UserRoom(order.UserID.String()), events[1].Room)

	payload, ok := events[0].Payload.(pickupReadyEvent)
	require.True(t, ok)
	assert.Equal(t, order.ShortNumber(), payload.OrderNumber)
	assert.Equal(t, "Your order is ready for pickup!", payload.Message)
	assert.Same(t, order, payload.Order)
}

func TestNotifyPickupReady_NoUserRoomForAnonymousOrder(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub, &config.Config{})

	n.NotifyPickupReady(pickupOrder(false))

	require.Len(t, pub.byEvent("pickupReady"), 1)
}

func TestNotifyPickupReady_EmailDisabledIsSkipped(t *testing.T) {
	pub := &recordingPublisher{}
	mail := &fakeMail{}
	n := NewNotifier(pub, &config.Config{EmailEnabled: false})
	n.mail = mail

	results := n.NotifyPickupReady(pickupOrder(true))

	assert.Equal(t, ChannelSkipped, resultFor(t, results, "email").Status)
	assert.Empty(t, mail.sent)
	// The realtime publish still completed.
	assert.Equal(t, ChannelDelivered, resultFor(t, results, "realtime").Status)
}

func TestNotifyPickupReady_EmailEnabledSends(t *testing.T) {
	pub := &recordingPublisher{}
	mail := &fakeMail{}
	n := NewNotifier(pub, &config.Config{
		EmailEnabled: true,
		EmailHost:    "smtp.example.com",
		EmailUser:    "noreply@example.com",
		FrontendURL:  "https://pizza.example.com",
	})
	n.mail = mail

	results := n.NotifyPickupReady(pickupOrder(true))

	assert.Equal(t, ChannelDelivered, resultFor(t, results, "email").Status)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, []string{"alice@example.com"}, mail.sent[0].GetHeader("To"))
}

func TestNotifyPickupReady_EmailFailureIsAbsorbed(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub, &config.Config{
		EmailEnabled: true,
		EmailHost:    "smtp.example.com",
		EmailUser:    "noreply@example.com",
	})
	n.mail = &fakeMail{err: errors.New("smtp connection refused")}

	results := n.NotifyPickupReady(pickupOrder(true))

	emailResult := resultFor(t, results, "email")
	assert.Equal(t, ChannelFailed, emailResult.Status)
	assert.Error(t, emailResult.Err)
	// Other channels are unaffected.
	assert.Equal(t, ChannelDelivered, resultFor(t, results, "realtime").Status)
}

func TestNotifyPickupReady_EmailEnabledButUnconfigured(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub, &config.Config{EmailEnabled: true})

	results := n.NotifyPickupReady(pickupOrder(true))

	emailResult := resultFor(t, results, "email")
	assert.Equal(t, ChannelSkipped, emailResult.Status)
	assert.Error(t, emailResult.Err)
}

func TestNotifyPickupReady_SMSGating(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		n := NewNotifier(&recordingPublisher{}, &config.Config{})
		results := n.NotifyPickupReady(pickupOrder(true))
		assert.Equal(t, ChannelSkipped, resultFor(t, results, "sms").Status)
	})

	t.Run("enabled without provider credentials", func(t *testing.T) {
		n := NewNotifier(&recordingPublisher{}, &config.Config{SMSEnabled: true})
		results := n.NotifyPickupReady(pickupOrder(true))
		result := resultFor(t, results, "sms")
		assert.Equal(t, ChannelSkipped, result.Status)
		assert.Error(t, result.Err)
	})

	t.Run("enabled without phone number", func(t *testing.T) {
		n := NewNotifier(&recordingPublisher{}, &config.Config{
			SMSEnabled:  true,
			TwilioSID:   "AC0000",
			TwilioToken: "token",
		})
		results := n.NotifyPickupReady(pickupOrder(false))
		assert.Equal(t, ChannelSkipped, resultFor(t, results, "sms").Status)
	})
}

func TestNotifyPickupReady_SMSSendsThroughProvider(t *testing.T) {
	var captured *http.Request
	n := NewNotifier(&recordingPublisher{}, &config.Config{
		SMSEnabled:      true,
		TwilioSID:       "AC0000",
		TwilioToken:     "token",
		TwilioFromPhone: "+1000000",
	})
	n.httpPost = func(req *http.Request) (*http.Response, error) {
		captured = req
		return &http.Response{StatusCode: http.StatusCreated, Body: http.NoBody}, nil
	}

	results := n.NotifyPickupReady(pickupOrder(true))

	assert.Equal(t, ChannelDelivered, resultFor(t, results, "sms").Status)
	require.NotNil(t, captured)
	assert.Contains(t, captured.URL.String(), "AC0000")
}

func TestNotifyPickupReady_SMSProviderFailureIsAbsorbed(t *testing.T) {
	n := NewNotifier(&recordingPublisher{}, &config.Config{
		SMSEnabled:      true,
		TwilioSID:       "AC0000",
		TwilioToken:     "token",
		TwilioFromPhone: "+1000000",
	})
	n.httpPost = func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}

	results := n.NotifyPickupReady(pickupOrder(true))

	result := resultFor(t, results, "sms")
	assert.Equal(t, ChannelFailed, result.Status)
	assert.Error(t, result.Err)
	assert.Equal(t, ChannelDelivered, resultFor(t, results, "realtime").Status)
}
