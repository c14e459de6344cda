package whatsapp

import (
	"net/url"
	"strings"
)

const deepLinkBase = "https://wa.me/"

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// DeepLink builds the click-to-chat URL that opens a prefilled conversation
// with countryCode+phone.
func DeepLink(countryCode, phone, text string) string {
	return deepLinkBase + countryCode + phone + "?text=" + EncodeComponent(text)
}

// EncodeComponent percent-encodes s the way browsers encode a URI component:
// spaces become %20 and the marks !'()* are left as is.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
