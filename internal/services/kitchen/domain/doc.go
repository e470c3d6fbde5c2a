// Package domain holds the kitchen rules: the daily meal selection window,
// the order workflow and its pending-order sweep, the menu, subscriptions,
// catering enquiries, riders and restaurant settings.
package domain
