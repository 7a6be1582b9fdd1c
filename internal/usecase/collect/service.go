package collect

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/account-intel/internal/domain/sources"
	"github.com/johnquangdev/account-intel/pkg/jobcontext"
)

// DefaultSourceTimeout bounds each individual provider call
const DefaultSourceTimeout = 30 * time.Second

// DefaultLookbackDays is how far back source history is requested
const DefaultLookbackDays = 90

// Observer receives per-fetch outcomes; the metrics layer implements it
type Observer interface {
	ObserveFetch(source string, duration time.Duration, err error)
}

// Result holds the resolved source collections for one account. A failed
// or absent source leaves its collection empty and is listed in Failures;
// collection itself never fails.
type Result struct {
	Calls    []sources.CallRecord
	Chats    []sources.ChatMessage
	Events   []sources.CalendarEvent
	Failures []string
}

// Options tunes a collection round
type Options struct {
	LookbackDays  int
	SourceTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.LookbackDays <= 0 {
		o.LookbackDays = DefaultLookbackDays
	}
	if o.SourceTimeout <= 0 {
		o.SourceTimeout = DefaultSourceTimeout
	}
	return o
}

// Collector fans out to all configured sources concurrently. Any source
// may be nil, which simply skips it.
type Collector struct {
	calls      sources.CallSource
	chats      sources.ChatSource
	calendar   sources.CalendarSource
	enrichment sources.EnrichmentSource
	observer   Observer
	logger     *zap.Logger
	now        func() time.Time
}

// NewCollector creates a Collector over the configured sources
func NewCollector(
	calls sources.CallSource,
	chats sources.ChatSource,
	calendar sources.CalendarSource,
	enrichment sources.EnrichmentSource,
	observer Observer,
	logger *zap.Logger,
) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		calls:      calls,
		chats:      chats,
		calendar:   calendar,
		enrichment: enrichment,
		observer:   observer,
		logger:     logger,
		now:        time.Now,
	}
}

// Collect fetches call, chat, and calendar records for the account in
// parallel, one bounded context per source. A provider error degrades
// that source to an empty collection with a warning; it never aborts
// the round.
func (c *Collector) Collect(ctx context.Context, accountName, accountDomain string, opts Options) *Result {
	opts = opts.withDefaults()
	now := c.now()
	since := now.AddDate(0, 0, -opts.LookbackDays)

	res := &Result{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	run := func(source string, fetch func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fctx, cancel := jobcontext.FetchBegin(ctx, source, opts.SourceTimeout)
			defer cancel()

			start := c.now()
			err := jobcontext.FetchRun(fctx, fetch)
			if c.observer != nil {
				c.observer.ObserveFetch(source, c.now().Sub(start), err)
			}
			if err != nil {
				c.logger.Warn("source fetch failed, continuing with empty collection",
					zap.String("source", source),
					zap.String("account", accountName),
					zap.Error(err))
				mu.Lock()
				res.Failures = append(res.Failures, source)
				mu.Unlock()
			}
		}()
	}

	if c.calls != nil {
		run("calls", func(fctx context.Context) error {
			records, err := c.calls.FetchCalls(fctx, accountDomain, since)
			if err != nil {
				return err
			}
			mu.Lock()
			res.Calls = records
			mu.Unlock()
			return nil
		})
	}
	if c.chats != nil {
		run("chat", func(fctx context.Context) error {
			messages, err := c.chats.FetchMessages(fctx, accountName, since)
			if err != nil {
				return err
			}
			mu.Lock()
			res.Chats = messages
			mu.Unlock()
			return nil
		})
	}
	if c.calendar != nil {
		run("calendar", func(fctx context.Context) error {
			events, err := c.calendar.FetchEvents(fctx, since, now)
			if err != nil {
				return err
			}
			mu.Lock()
			res.Events = events
			mu.Unlock()
			return nil
		})
	}

	wg.Wait()

	c.logger.Info("source collection finished",
		zap.String("account", accountName),
		zap.Int("calls", len(res.Calls)),
		zap.Int("chat_messages", len(res.Chats)),
		zap.Int("calendar_events", len(res.Events)),
		zap.Strings("failed_sources", res.Failures))

	return res
}

// Enrich looks up external research for each email. Lookups run
// sequentially; a miss or provider error just leaves that email out.
func (c *Collector) Enrich(ctx context.Context, emails []string, timeout time.Duration) map[string]*sources.EnrichmentRecord {
	out := make(map[string]*sources.EnrichmentRecord)
	if c.enrichment == nil {
		return out
	}
	if timeout <= 0 {
		timeout = DefaultSourceTimeout
	}

	for _, email := range emails {
		fctx, cancel := jobcontext.FetchBegin(ctx, "enrichment", timeout)
		rec, err := c.enrichment.Lookup(fctx, email)
		cancel()
		if err != nil {
			c.logger.Warn("enrichment lookup failed",
				zap.String("email", email),
				zap.Error(err))
			continue
		}
		if rec != nil {
			out[email] = rec
		}
	}
	return out
}
