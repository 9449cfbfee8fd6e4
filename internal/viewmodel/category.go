package viewmodel

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/tinytelemetry/chuckle/internal/apiclient"
	"github.com/tinytelemetry/chuckle/internal/model"
	"github.com/tinytelemetry/chuckle/internal/state"
	"github.com/tinytelemetry/chuckle/internal/store"
)

// Category orchestrates the category screen: a fixed number of random jokes
// from one category, requested one after another.
type Category struct {
	name      string
	jokeCount int
	session   apiclient.Session
	endpoints apiclient.Endpoints
	logger    *zap.Logger
	store     *store.Store[state.CategoryState, state.CategoryEffect]

	mu       sync.Mutex
	ctx      context.Context
	inflight sync.WaitGroup
}

// NewCategory creates the view model for the named category.
func NewCategory(name string, session apiclient.Session, endpoints apiclient.Endpoints, opts ...Option) *Category {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Category{
		name:      name,
		jokeCount: o.jokeCount,
		session:   session,
		endpoints: endpoints,
		logger:    o.logger.Named("category").With(zap.String("category", name)),
		store:     store.New(state.NewCategoryState(name), state.ReduceCategory),
		ctx:       context.Background(),
	}
}

// Name is the category this view model fetches.
func (c *Category) Name() string { return c.name }

// Start activates the screen. Requests issued from now on use ctx.
func (c *Category) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()
	c.fetchRandomJokes()
}

// Send handles an intent from the presentation layer.
func (c *Category) Send(event CategoryEvent) {
	switch event.(type) {
	case CategoryRefresh:
		c.fetchRandomJokes()
	}
}

// State returns the current snapshot.
func (c *Category) State() state.CategoryState { return c.store.State() }

// Subscribe streams snapshots; see store.Store.Subscribe.
func (c *Category) Subscribe() (<-chan state.CategoryState, func()) { return c.store.Subscribe() }

// Wait blocks until every fetch cycle started so far has been applied.
func (c *Category) Wait() { c.inflight.Wait() }

// Close tears the screen down; late results are dropped.
func (c *Category) Close() { c.store.Close() }

func (c *Category) context() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctx
}

func (c *Category) fetchRandomJokes() {
	c.store.Dispatch(state.CategoryLoading{})

	ctx := c.context()
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		c.store.DispatchWait(c.collectJokes(ctx))
	}()
}

// collectJokes requests jokeCount jokes strictly in sequence, dropping
// repeats by text. The first failure ends the cycle.
func (c *Category) collectJokes(ctx context.Context) state.CategoryEffect {
	url := c.endpoints.RandomJokeInCategory(c.name)
	jokes := make([]model.Joke, 0, c.jokeCount)

	for i := 0; i < c.jokeCount; i++ {
		joke, err := apiclient.Get[model.Joke](ctx, c.session, url)
		if err != nil {
			c.logger.Warn("joke fetch failed", zap.Int("attempt", i+1), zap.Error(err))
			return state.CategoryJokesResult{Err: apiclient.AsRequestError(err)}
		}
		if slices.ContainsFunc(jokes, func(j model.Joke) bool { return j.Value == joke.Value }) {
			continue
		}
		jokes = append(jokes, joke)
	}

	c.logger.Debug("fetch result", zap.Int("requested", c.jokeCount), zap.Int("unique", len(jokes)))
	return state.CategoryJokesResult{Jokes: jokes}
}
