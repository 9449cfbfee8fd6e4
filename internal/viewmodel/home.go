// Package viewmodel issues joke API requests for each screen and feeds the
// outcomes into that screen's store as effects.
package viewmodel

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tinytelemetry/chuckle/internal/apiclient"
	"github.com/tinytelemetry/chuckle/internal/model"
	"github.com/tinytelemetry/chuckle/internal/state"
	"github.com/tinytelemetry/chuckle/internal/store"
)

// Home orchestrates the home screen: a random joke and the category list,
// fetched independently of each other.
type Home struct {
	session   apiclient.Session
	router    model.Pusher
	endpoints apiclient.Endpoints
	logger    *zap.Logger
	store     *store.Store[state.HomeState, state.HomeEffect]

	mu       sync.Mutex
	ctx      context.Context
	inflight sync.WaitGroup
}

// NewHome creates the home view model. Nothing is fetched until Start.
func NewHome(session apiclient.Session, router model.Pusher, endpoints apiclient.Endpoints, opts ...Option) *Home {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Home{
		session:   session,
		router:    router,
		endpoints: endpoints,
		logger:    o.logger.Named("home"),
		store:     store.New(state.NewHomeState(), state.ReduceHome),
		ctx:       context.Background(),
	}
}

// Start activates the screen. Requests issued from now on use ctx.
func (h *Home) Start(ctx context.Context) {
	h.mu.Lock()
	h.ctx = ctx
	h.mu.Unlock()
	h.fetchData()
}

// Send handles an intent from the presentation layer.
func (h *Home) Send(event HomeEvent) {
	switch e := event.(type) {
	case HomeRefresh:
		h.fetchData()
	case HomeSelectCategory:
		h.logger.Debug("category selected", zap.String("category", e.Name))
		h.router.Push(model.CategoryRoute(e.Name))
	case HomeSearchTextChanged:
		h.store.DispatchWait(state.FilterCategories{Text: e.Text})
	}
}

// State returns the current snapshot.
func (h *Home) State() state.HomeState { return h.store.State() }

// Subscribe streams snapshots; see store.Store.Subscribe.
func (h *Home) Subscribe() (<-chan state.HomeState, func()) { return h.store.Subscribe() }

// Wait blocks until every request issued so far has settled and its effect
// has been applied.
func (h *Home) Wait() { h.inflight.Wait() }

// Close tears the screen down. Requests still in flight complete, but their
// results are dropped.
func (h *Home) Close() { h.store.Close() }

func (h *Home) context() context.Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ctx
}

// fetchData starts one fetch cycle. The two requests race; each settles
// its own field whether or not the other succeeds.
func (h *Home) fetchData() {
	h.store.Dispatch(state.LoadingRandomJoke{})

	ctx := h.context()
	h.inflight.Add(2)
	go func() {
		defer h.inflight.Done()
		h.store.DispatchWait(h.fetchRandomJoke(ctx))
	}()
	go func() {
		defer h.inflight.Done()
		h.store.DispatchWait(h.fetchCategories(ctx))
	}()
}

func (h *Home) fetchRandomJoke(ctx context.Context) state.HomeEffect {
	joke, err := apiclient.Get[model.Joke](ctx, h.session, h.endpoints.RandomJoke())
	if err != nil {
		h.logger.Warn("random joke fetch failed", zap.Error(err))
		return state.RandomJokeResult{Err: apiclient.AsRequestError(err)}
	}
	return state.RandomJokeResult{Joke: joke}
}

func (h *Home) fetchCategories(ctx context.Context) state.HomeEffect {
	categories, err := apiclient.Get[[]string](ctx, h.session, h.endpoints.Categories())
	if err != nil {
		h.logger.Warn("categories fetch failed", zap.Error(err))
		return state.CategoriesResult{Err: apiclient.AsRequestError(err)}
	}
	return state.CategoriesResult{Categories: categories}
}
