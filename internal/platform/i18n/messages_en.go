package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BritishEnglish

	// Chrome
	message.SetString(lang, "nav.menu", "Menu")
	message.SetString(lang, "nav.order", "Order")
	message.SetString(lang, "nav.subscribe", "Meal plans")
	message.SetString(lang, "nav.catering", "Catering")
	message.SetString(lang, "nav.special_order", "Special orders")
	message.SetString(lang, "nav.dashboard", "My meals")
	message.SetString(lang, "nav.admin", "Admin")
	message.SetString(lang, "nav.login", "Sign in")
	message.SetString(lang, "nav.register", "Create account")
	message.SetString(lang, "nav.logout", "Sign out")

	// Public pages
	message.SetString(lang, "home.tagline", "Home-style curries, delivered across town.")
	message.SetString(lang, "menu.heading", "Our menu")
	message.SetString(lang, "menu.empty", "The menu is being prepared. Check back soon.")
	message.SetString(lang, "order.heading", "Place an order")
	message.SetString(lang, "order.placed", "Thanks %s, your order %s has been received.")
	message.SetString(lang, "catering.heading", "Catering enquiry")
	message.SetString(lang, "special_order.heading", "Special order request")
	message.SetString(lang, "request.received", "Thanks, we have your request and will be in touch.")
	message.SetString(lang, "subscribe.heading", "Weekly meal plans")
	message.SetString(lang, "subscribe.active", "Your plan (%s) is active from %s.")
	message.SetString(lang, "login.heading", "Sign in")
	message.SetString(lang, "register.heading", "Create an account")

	// Subscriber dashboard
	message.SetString(lang, "dashboard.heading", "Choose tomorrow's meal")
	message.SetString(lang, "dashboard.window_open", "Choices for %s are open until 23:59 tonight.")
	message.SetString(lang, "dashboard.window_closed", "Choices are closed for tonight. Come back after midnight.")
	message.SetString(lang, "dashboard.current_choice", "Your choice for %s: %s")
	message.SetString(lang, "dashboard.no_options", "No meals are offered on %s.")
	message.SetString(lang, "dashboard.saved", "Saved. You will get %s on %s.")

	// Admin
	message.SetString(lang, "admin.menu.heading", "Menu items")
	message.SetString(lang, "admin.weekly.heading", "Weekly subscription menu")
	message.SetString(lang, "admin.orders.heading", "Orders")
	message.SetString(lang, "admin.riders.heading", "Riders")
	message.SetString(lang, "admin.requests.heading", "Catering and special requests")
	message.SetString(lang, "admin.settings.heading", "Settings")
	message.SetString(lang, "admin.saved", "Saved.")
	message.SetString(lang, "admin.selections_confirmed", "%d selections confirmed for %s.")

	// Banners for ?notice= redirects
	message.SetString(lang, "notice.saved", "Saved.")
	message.SetString(lang, "notice.selection_saved", "Your meal for tomorrow is saved.")
	message.SetString(lang, "notice.subscribed", "Welcome to your meal plan. Choose tomorrow's meal below.")
	message.SetString(lang, "notice.cancelled", "Your meal plan has been cancelled.")
	message.SetString(lang, "notice.signed_out", "You have signed out.")
	message.SetString(lang, "notice.registered", "Your account is ready. Pick a meal plan to get started.")
	message.SetString(lang, "notice.subscription_required", "Choose a meal plan to pick daily meals.")

	// Catalog labels
	message.SetString(lang, "category.starter", "Starters")
	message.SetString(lang, "category.main", "Mains")
	message.SetString(lang, "category.side", "Sides")
	message.SetString(lang, "category.dessert", "Desserts")
	message.SetString(lang, "category.drink", "Drinks")
	message.SetString(lang, "plan.weekly_5", "Five meals a week")
	message.SetString(lang, "plan.weekly_3", "Three meals a week")
	message.SetString(lang, "order.status.pending", "Pending")
	message.SetString(lang, "order.status.in_queue", "In the kitchen queue")
	message.SetString(lang, "order.status.preparing", "Preparing")
	message.SetString(lang, "order.status.out_for_delivery", "Out for delivery")
	message.SetString(lang, "order.status.delivered", "Delivered")
	message.SetString(lang, "order.status.cancelled", "Cancelled")
	message.SetString(lang, "selection.status.pending", "Pending")
	message.SetString(lang, "selection.status.confirmed", "Confirmed")

	// Forms
	message.SetString(lang, "form.name", "Name")
	message.SetString(lang, "form.email", "Email")
	message.SetString(lang, "form.phone", "Phone")
	message.SetString(lang, "form.password", "Password")
	message.SetString(lang, "form.address", "Delivery address")
	message.SetString(lang, "form.delivery_date", "Delivery date")
	message.SetString(lang, "form.delivery_time", "Delivery time")
	message.SetString(lang, "form.notes", "Notes for the kitchen")
	message.SetString(lang, "form.event_date", "Event date")
	message.SetString(lang, "form.guests", "Guests")
	message.SetString(lang, "form.details", "Tell us what you need")
	message.SetString(lang, "form.plan", "Plan")
	message.SetString(lang, "form.starts_on", "Start date")
	message.SetString(lang, "order.submit", "Place order")
	message.SetString(lang, "order.total", "Total: %s")
	message.SetString(lang, "order.delivery_fee", "Delivery fee: %s")
	message.SetString(lang, "subscribe.submit", "Start my plan")
	message.SetString(lang, "subscribe.cancel", "Cancel plan")
	message.SetString(lang, "dashboard.submit", "Save my choice")
	message.SetString(lang, "login.submit", "Sign in")
	message.SetString(lang, "register.submit", "Create account")
	message.SetString(lang, "admin.save", "Save")
	message.SetString(lang, "admin.notifications.heading", "Notifications")
	message.SetString(lang, "admin.notifications.empty", "No notifications queued yet.")
	message.SetString(lang, "error.back_home", "Back to the home page")

	// Errors
	message.SetString(lang, "error.unknown", "Something went wrong. Please try again.")
	message.SetString(lang, "error.invalid_argument", "Please check the %s field.")
	message.SetString(lang, "error.not_found", "We could not find what you were looking for.")
	message.SetString(lang, "error.conflict", "That already exists.")
	message.SetString(lang, "error.selection_invalid_date", "Meals can only be chosen for tomorrow.")
	message.SetString(lang, "error.selection_window_closed", "Meal choices closed at 23:59. Please choose after midnight.")
	message.SetString(lang, "error.selection_item_unavailable_for_day", "That meal is not on the menu for that day.")
	message.SetString(lang, "error.order_invalid_status_transition", "That order cannot move to the requested status.")
	message.SetString(lang, "error.sweep_in_progress", "Another order sweep is already running.")
	message.SetString(lang, "error.invalid_credentials", "Email or password is incorrect.")
	message.SetString(lang, "error.unauthenticated", "Please sign in to continue.")
	message.SetString(lang, "error.permission_denied", "You do not have access to that page.")
	message.SetString(lang, "error.subscription_required", "An active meal plan is required.")
}
