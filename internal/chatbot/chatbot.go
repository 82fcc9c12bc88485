// Package chatbot is the support assistant's response engine: an ordered
// pattern table answered locally, with an optional best-effort remote API
// fallback for anything unmatched.
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ashirarif0999-sketch/blueember/internal/logger"
)

// Fallback when nothing matches and no remote API answers.
const fallbackReply = "I'm not sure about that one. Try asking about products, orders, shipping, or returns!"

type rule struct {
	patterns []string
	response string
}

// First match wins, so more specific entries sit above generic small talk.
var rules = []rule{
	// Contact & support
	{[]string{"contact", "reach you", "get in touch", "help desk"}, "You can reach us through the Contact page. We're here to help!"},
	{[]string{"email", "mail address", "send an email"}, "Email us at support@blueember.com or use the Contact page."},
	{[]string{"phone", "call", "telephone"}, "Call us at +1-800-EMBER, Monday-Friday 9 AM - 6 PM EST."},
	{[]string{"office hours", "when open", "business hours"}, "We're available Monday-Friday, 9 AM - 6 PM EST."},
	{[]string{"location", "where are you"}, "We're located in New York. Full details on the Contact page."},

	// Product categories
	{[]string{"laptop", "notebook"}, "Check out our Laptops collection!"},
	{[]string{"smartphone", "mobile"}, "Browse our Smartphones!"},
	{[]string{"tablet", "ipad"}, "Explore our Tablets!"},
	{[]string{"headphone", "earbuds", "airpods"}, "Discover our Audio products!"},
	{[]string{"smartwatch", "wearable"}, "See our Wearables!"},
	{[]string{"camera", "photography"}, "View our Cameras!"},
	{[]string{"gaming", "console", "playstation", "xbox"}, "Check out our Gaming gear!"},
	{[]string{"accessor", "charger", "case"}, "Browse our Accessories!"},
	{[]string{"desktop", "computer"}, "Explore our Computers!"},
	{[]string{"television", "monitor"}, "See our Displays & TVs!"},

	// Shopping & orders
	{[]string{"track order", "order status", "where is my order", "track my order", "tracking"}, "You can track your order from your account dashboard."},
	{[]string{"return", "refund", "cancel order"}, "Orders can be cancelled within 24 hours while still processing. For returns, contact support."},
	{[]string{"free shipping"}, "Free shipping on orders over $50!"},
	{[]string{"shipping", "delivery", "how long"}, "Standard shipping takes 3-5 business days. Express is available!"},
	{[]string{"discount", "coupon", "promo code"}, "Check the Deals page for current promotions!"},
	{[]string{"deals", "sale", "offers"}, "See all current deals on the Deals page!"},
	{[]string{"warranty", "guarantee"}, "All products come with a 1-year warranty."},
	{[]string{"cart", "basket"}, "Your shopping cart is one click away in the top bar."},
	{[]string{"checkout", "payment methods", "how to pay", "credit card"}, "We accept Visa, Mastercard, PayPal, and cash on delivery. Secure checkout guaranteed!"},

	// Business info
	{[]string{"who are you", "about", "company", "your name"}, "I'm the Blue Ember shopping assistant - here to help with your trusted tech marketplace!"},
	{[]string{"privacy", "personal information"}, "Your privacy matters. See our Privacy Policy."},
	{[]string{"terms", "conditions", "legal"}, "Please review our Terms & Conditions."},
	{[]string{"career", "job", "hiring"}, "We're hiring! Check the Careers page for openings."},
	{[]string{"newsletter", "subscribe"}, "Subscribe to our newsletter for exclusive deals!"},

	// Small talk
	{[]string{"hello", "hi", "hey", "greetings"}, "Hi there! How can I help you today?"},
	{[]string{"thanks", "thank you", "appreciate"}, "You're welcome! Let me know if you need anything else."},
	{[]string{"goodbye", "bye", "see you"}, "Goodbye! Come back anytime."},
	{[]string{"how are you"}, "I'm doing great! Ready to help you find what you need."},
	{[]string{"what can you do", "help me", "help"}, "I can help you navigate products, answer questions, or point you to support. Ask me anything!"},
	{[]string{"joke", "funny", "make me laugh"}, "Why did the computer go to the doctor? Because it had a virus!"},
	{[]string{"recommend", "suggestion", "best product"}, "That depends on your needs! Tell me what you're looking for."},
	{[]string{"price", "cost", "how much"}, "Prices vary by product. Browse the catalog for details!"},
	{[]string{"gift card", "voucher"}, "Gift cards are available - perfect for tech lovers."},
	{[]string{"student discount", "education"}, "Students get 10% off! Verify with your .edu email at checkout."},
	{[]string{"bulk order", "wholesale"}, "For bulk orders, please contact our B2B team."},
	{[]string{"international", "ship abroad", "worldwide"}, "Yes! We ship to 50+ countries."},
	{[]string{"products", "browse"}, "Sure! Browse the full product catalog, or tell me what you're looking for."},
}

// Responder answers chat messages. apiURL may be empty, in which case only
// the local table answers.
type Responder struct {
	apiURL string
	client *http.Client
}

func New(apiURL string) *Responder {
	return &Responder{
		apiURL: apiURL,
		client: &http.Client{Timeout: 3 * time.Second},
	}
}

// Reply returns the response for a message. Local rules win; the remote API
// is best effort and any failure degrades to the canned fallback.
func (r *Responder) Reply(ctx context.Context, message string) string {
	if resp, ok := localResponse(message); ok {
		return resp
	}
	if r.apiURL == "" {
		return fallbackReply
	}
	if resp, err := r.remote(ctx, message); err == nil {
		return resp
	} else {
		logger.Warn("chat api call failed", "err", err)
	}
	return fallbackReply
}

func localResponse(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, entry := range rules {
		for _, p := range entry.patterns {
			if strings.Contains(lower, p) {
				return entry.response, true
			}
		}
	}
	return "", false
}

func (r *Responder) remote(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Reply == "" {
		return fallbackReply, nil
	}
	return out.Reply, nil
}
