package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, "notification.generic.subject", defaultGenericSubject)
	message.SetString(lang, "notification.generic.body", defaultGenericBody)
	message.SetString(lang, "notification.delivery.asap", defaultASAP)
	message.SetString(lang, "notification.order_placed.sms", "%s: thanks %s, we have your order %s (%s). Delivery %s.")
	message.SetString(lang, "notification.order_placed.email_subject", "Your %s order %s")
	message.SetString(lang, "notification.order_placed.email_body", "Hi %s,\n\nWe have received order %s:\n%s\n\nTotal: %s\nDelivery: %s\n\nThank you for ordering from %s.")
	message.SetString(lang, "notification.order_in_queue.sms", "%s: order %s is now in the kitchen queue for delivery at %s.")
	message.SetString(lang, "notification.order_in_queue.email_subject", "Order %s is being prepared")
	message.SetString(lang, "notification.request_submitted.email_subject", "New %s request from %s")
	message.SetString(lang, "notification.request_submitted.email_body", "%s (phone %s, email %s) sent a %s request.\n\nEvent date: %s\nGuests: %s\n\n%s")
}
