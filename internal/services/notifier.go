package services

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/example/pizzeria/internal/config"
	"github.com/example/pizzeria/internal/models"
	"github.com/example/pizzeria/internal/realtime"
)

// Notification channel outcomes.
const (
	ChannelDelivered = "delivered"
	ChannelSkipped   = "skipped"
	ChannelFailed    = "failed"
)

// ChannelResult records what happened on a single notification channel.
// Failures are carried here for logging; they never propagate to callers.
type ChannelResult struct {
	Channel string
	Status  string
	Err     error
}

type pickupReadyEvent struct {
	OrderID     string        `json:"orderId"`
	OrderNumber string        `json:"orderNumber"`
	Message     string        `json:"message"`
	Order       *models.Order `json:"order"`
}

// mailSender sends a composed message. Satisfied by gomail.Dialer; tests
// substitute a recorder.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Notifier delivers pickup-ready notifications across the realtime, email
// and SMS channels. Every channel is attempted independently and every
// failure is absorbed: callers never observe an error from Notifier.
type Notifier struct {
	publisher realtime.Publisher
	cfg       *config.Config
	mail      mailSender
	httpPost  func(req *http.Request) (*http.Response, error)
}

// NewNotifier constructs a Notifier over the given publish handle.
func NewNotifier(publisher realtime.Publisher, cfg *config.Config) *Notifier {
	n := &Notifier{publisher: publisher, cfg: cfg}
	if cfg.EmailHost != "" && cfg.EmailUser != "" {
		n.mail = gomail.NewDialer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPass)
	}
	n.httpPost = http.DefaultClient.Do
	return n
}

// NotifyPickupReady tells the customer their order is ready, on every
// enabled channel. The realtime publish always runs; email and SMS are
// gated by configuration. Returns the per-channel outcomes for logging.
func (n *Notifier) NotifyPickupReady(order *models.Order) []ChannelResult {
	results := []ChannelResult{
		n.sendRealtime(order),
		n.sendEmail(order),
		n.sendSMS(order),
	}

	for _, r := range results {
		if r.Err != nil {
			log.Printf("[Notify] %s %s for order %s: %v", r.Channel, r.Status, order.ShortNumber(), r.Err)
		} else {
			log.Printf("[Notify] %s %s for order %s", r.Channel, r.Status, order.ShortNumber())
		}
	}

	return results
}

func (n *Notifier) sendRealtime(order *models.Order) (result ChannelResult) {
	result = ChannelResult{Channel: "realtime", Status: ChannelDelivered}
	defer func() {
		if r := recover(); r != nil {
			result.Status = ChannelFailed
			result.Err = fmt.Errorf("publish panicked: %v", r)
		}
	}()

	orderID := order.ID.String()
	event := pickupReadyEvent{
		OrderID:     orderID,
		OrderNumber: order.ShortNumber(),
		Message:     "Your order is ready for pickup!",
		Order:       order,
	}

	n.publisher.ToRoom(realtime.OrderRoom(orderID), "pickupReady", event)

	if order.UserID != uuid.Nil {
		n.publisher.ToRoom(realtime.UserRoom(order.UserID.String()), "pickupReady", event)
	}

	return result
}

func (n *Notifier) sendEmail(order *models.Order) ChannelResult {
	result := ChannelResult{Channel: "email"}

	if !n.cfg.EmailEnabled {
		result.Status = ChannelSkipped
		return result
	}
	if n.mail == nil {
		result.Status = ChannelSkipped
		result.Err = fmt.Errorf("mail transport not configured")
		return result
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.cfg.EmailUser, "American Pizza")
	m.SetHeader("To", order.CustomerEmail)
	m.SetHeader("Subject", "Your Order is Ready for Pickup!")
	m.SetBody("text/html", n.pickupEmailBody(order))

	if err := n.mail.DialAndSend(m); err != nil {
		result.Status = ChannelFailed
		result.Err = err
		return result
	}

	result.Status = ChannelDelivered
	return result
}

func (n *Notifier) pickupEmailBody(order *models.Order) string {
	trackingURL := ""
	if n.cfg.FrontendURL != "" {
		base := strings.TrimSpace(strings.Split(n.cfg.FrontendURL, ",")[0])
		trackingURL = fmt.Sprintf(`<p><a href="%s/tracking/%s">Track your order</a></p>`, base, order.ID)
	}

	return fmt.Sprintf(`<div>
<h2>Your order is ready for pickup!</h2>
<p>Hello %s,</p>
<p>Great news! Your order <strong>#%s</strong> is ready for pickup.</p>
<p>Total: %.2f &middot; %d item(s)</p>
<p>Pickup location: Bahnhof str.119, 47137 Duisburg</p>
%s
<p>Thank you for choosing American Pizza!</p>
</div>`,
		order.CustomerName, order.ShortNumber(), order.TotalAmount, len(order.Items), trackingURL)
}

func (n *Notifier) sendSMS(order *models.Order) ChannelResult {
	result := ChannelResult{Channel: "sms"}

	if !n.cfg.SMSEnabled {
		result.Status = ChannelSkipped
		return result
	}
	if n.cfg.TwilioSID == "" || n.cfg.TwilioToken == "" {
		result.Status = ChannelSkipped
		result.Err = fmt.Errorf("sms provider not configured")
		return result
	}

	phone := ""
	if order.User != nil {
		phone = order.User.Phone
	}
	if phone == "" {
		result.Status = ChannelSkipped
		result.Err = fmt.Errorf("no phone number on order %s", order.ShortNumber())
		return result
	}

	form := url.Values{}
	form.Set("From", n.cfg.TwilioFromPhone)
	form.Set("To", phone)
	form.Set("Body", fmt.Sprintf("Your American Pizza order #%s is ready for pickup! Visit us at Bahnhof str.119, 47137 Duisburg", order.ShortNumber()))

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", n.cfg.TwilioSID)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		result.Status = ChannelFailed
		result.Err = err
		return result
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(n.cfg.TwilioSID, n.cfg.TwilioToken)

	resp, err := n.httpPost(req)
	if err != nil {
		result.Status = ChannelFailed
		result.Err = err
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		result.Status = ChannelFailed
		result.Err = fmt.Errorf("sms provider returned status %d", resp.StatusCode)
		return result
	}

	result.Status = ChannelDelivered
	return result
}
