package templates

import (
	"context"
	"net/url"

	"github.com/a-h/templ"

	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
)

// Login renders the sign-in form.
func Login(loc i18n.Localizer, values url.Values) templ.Component {
	return component(func(_ context.Context, h *writer) {
		h.postForm(routepath.Login, "login", func() {
			h.hidden("next", values.Get("next"))
			h.field(field{Label: tr(loc, "form.email", "Email"), Name: "email", Type: "email", Value: values.Get("email"), Required: true})
			h.field(field{Label: tr(loc, "form.password", "Password"), Name: "password", Type: "password", Required: true})
			h.submit(tr(loc, "login.submit", "Sign in"))
		})
		h.open("p")
		h.link(routepath.Register, tr(loc, "login.register_cta", "New here? Create an account"))
		h.close("p")
	})
}

// Register renders the account creation form.
func Register(loc i18n.Localizer, values url.Values) templ.Component {
	return component(func(_ context.Context, h *writer) {
		h.postForm(routepath.Register, "register", func() {
			h.field(field{Label: tr(loc, "form.name", "Name"), Name: "name", Value: values.Get("name"), Required: true})
			h.field(field{Label: tr(loc, "form.email", "Email"), Name: "email", Type: "email", Value: values.Get("email"), Required: true})
			h.field(field{Label: tr(loc, "form.phone", "Phone"), Name: "phone", Type: "tel", Value: values.Get("phone")})
			h.field(field{Label: tr(loc, "form.password", "Password (8 characters or more)"), Name: "password", Type: "password", Required: true})
			h.submit(tr(loc, "register.submit", "Create account"))
		})
	})
}

// SubscribeView is the meal plan page model.
type SubscribeView struct {
	SignedIn bool
	Active   *kitchen.Subscription
	Values   url.Values
}

// Subscribe renders the plan chooser or the active plan.
func Subscribe(loc i18n.Localizer, view SubscribeView) templ.Component {
	return component(func(_ context.Context, h *writer) {
		if view.Active != nil {
			h.el("p", "", trf(loc, "subscribe.active", "Your plan (%s) is active from %s.", PlanLabel(loc, view.Active.Plan), view.Active.StartsOn.String()))
			h.open("p")
			h.link(routepath.Dashboard, tr(loc, "subscribe.choose_cta", "Choose tomorrow's meal"))
			h.close("p")
			h.postForm(routepath.Subscribe, "cancel", func() {
				h.hidden("action", "cancel")
				h.submit(tr(loc, "subscribe.cancel", "Cancel plan"))
			})
			return
		}
		h.el("p", "", tr(loc, "subscribe.intro", "Pick a plan and choose one meal each weekday from our rotating menu."))
		if !view.SignedIn {
			h.open("p")
			h.link(routepath.Login+"?next="+url.QueryEscape(routepath.Subscribe), tr(loc, "subscribe.login_cta", "Sign in to subscribe"))
			h.close("p")
			return
		}
		options := make([]option, 0, len(kitchen.Plans))
		for _, plan := range kitchen.Plans {
			options = append(options, option{Value: string(plan), Label: PlanLabel(loc, plan), Selected: view.Values.Get("plan") == string(plan)})
		}
		h.postForm(routepath.Subscribe, "subscribe", func() {
			h.field(field{Label: tr(loc, "form.plan", "Plan"), Name: "plan", Options: options, Required: true})
			h.field(field{Label: tr(loc, "form.starts_on", "Start date (defaults to tomorrow)"), Name: "starts_on", Type: "date", Value: view.Values.Get("starts_on")})
			h.submit(tr(loc, "subscribe.submit", "Start plan"))
		})
	})
}

// PlanLabel names a plan for display.
func PlanLabel(loc i18n.Localizer, plan kitchen.Plan) string {
	switch plan {
	case kitchen.PlanWeekly5:
		return tr(loc, "plan.weekly_5", "Five meals a week")
	case kitchen.PlanWeekly3:
		return tr(loc, "plan.weekly_3", "Three meals a week")
	default:
		return string(plan)
	}
}
