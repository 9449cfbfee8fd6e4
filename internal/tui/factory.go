package tui

import (
	"context"

	"github.com/tinytelemetry/chuckle/internal/apiclient"
	"github.com/tinytelemetry/chuckle/internal/model"
	"github.com/tinytelemetry/chuckle/internal/viewmodel"
)

// CategoryPages returns a PageFactory that backs every category route with
// a fresh view model sharing session.
func CategoryPages(session apiclient.Session, endpoints apiclient.Endpoints, opts ...viewmodel.Option) PageFactory {
	return func(ctx context.Context, route model.Route) (Page, bool) {
		switch route.Kind {
		case model.RouteCategory:
			vm := viewmodel.NewCategory(route.Name, session, endpoints, opts...)
			return NewCategoryPage(ctx, vm), true
		}
		return nil, false
	}
}
