package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/wsaeed77/spice-loop/internal/platform/i18n"
	kitchen "github.com/wsaeed77/spice-loop/internal/services/kitchen/domain"
	"github.com/wsaeed77/spice-loop/internal/services/web/routepath"
)

// SelectionRow is one upcoming choice shown on the dashboard.
type SelectionRow struct {
	Date     kitchen.Date
	ItemName string
	Status   kitchen.SelectionStatus
}

// DashboardView is the subscriber dashboard model.
type DashboardView struct {
	Plan        kitchen.Plan
	Window      kitchen.WindowState
	Options     []kitchen.MenuItem
	CurrentID   string
	CurrentName string
	Upcoming    []SelectionRow
}

// Dashboard renders tomorrow's choice form and upcoming selections.
func Dashboard(loc i18n.Localizer, view DashboardView) templ.Component {
	return component(func(_ context.Context, h *writer) {
		target := view.Window.TargetDate
		h.el("p", "", PlanLabel(loc, view.Plan))
		if view.CurrentName != "" {
			h.el("p", "", trf(loc, "dashboard.current_choice", "Your choice for %s: %s", target.String(), view.CurrentName))
		}
		if !view.Window.IsOpen {
			h.el("p", "", tr(loc, "dashboard.window_closed", "Choices are closed for tonight. Come back after midnight."))
		} else if len(view.Options) == 0 {
			h.el("p", "", trf(loc, "dashboard.no_options", "No meals are offered on %s.", target.String()))
		} else {
			h.el("p", "", trf(loc, "dashboard.window_open", "Choices for %s are open until 23:59 tonight.", target.String()))
			h.postForm(routepath.Selection, "selection", func() {
				h.hidden("date", target.String())
				for _, item := range view.Options {
					h.open("label", "class", "field")
					checked := ""
					if item.ID == view.CurrentID {
						checked = "checked"
					}
					h.open("input", "type", "radio", "name", "menu_item_id", "value", item.ID, "checked", checked, "required", "required")
					h.text(" " + item.Name)
					if item.Description != "" {
						h.el("small", "", " "+item.Description)
					}
					h.close("label")
				}
				h.submit(tr(loc, "dashboard.submit", "Save my choice"))
			})
		}

		if len(view.Upcoming) == 0 {
			return
		}
		h.el("h2", "", tr(loc, "dashboard.upcoming", "Upcoming meals"))
		h.raw("<table><tbody>")
		for _, row := range view.Upcoming {
			h.raw("<tr>")
			h.el("td", "", row.Date.String())
			h.el("td", "", row.ItemName)
			h.el("td", "", tr(loc, "selection.status."+string(row.Status), titleCase(string(row.Status))))
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")
	})
}
