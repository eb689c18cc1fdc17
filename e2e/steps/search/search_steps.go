package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"

	searchpkg "formgate/internal/search"
)

// RegisterSteps registers search-as-you-type step definitions. Each scenario
// gets its own source and session.
func RegisterSteps(ctx *godog.ScenarioContext) {
	steps := &searchSteps{}

	ctx.Step(`^a search box over "([^"]*)"$`, steps.searchBoxOver)
	ctx.Step(`^I type "([^"]*)" quickly$`, steps.typeQuickly)
	ctx.Step(`^I close the search box while typing "([^"]*)"$`, steps.closeWhileTyping)
	ctx.Step(`^the source is queried (\d+) times?$`, steps.sourceQueriedTimes)
	ctx.Step(`^the source last received "([^"]*)"$`, steps.sourceLastReceived)
	ctx.Step(`^the results are "([^"]*)"$`, steps.resultsAre)
	ctx.Step(`^every earlier keystroke was cancelled$`, steps.earlierCancelled)

	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if steps.session != nil {
			steps.session.Close()
			steps.session = nil
		}
		return ctx, err
	})
}

type listSource struct {
	mu      sync.Mutex
	items   []string
	queries []string
}

func (l *listSource) Search(_ context.Context, term string) ([]searchpkg.Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queries = append(l.queries, term)

	var out []searchpkg.Result
	for _, item := range l.items {
		if strings.HasPrefix(strings.ToLower(item), strings.ToLower(term)) {
			out = append(out, searchpkg.Result{ID: strings.ToLower(item), Label: item})
		}
	}
	return out, nil
}

type searchSteps struct {
	source    *listSource
	session   *searchpkg.Session
	results   []searchpkg.Result
	cancelled int
	typed     int
}

func (s *searchSteps) searchBoxOver(items string) error {
	s.source = &listSource{items: strings.Split(items, ",")}
	session, err := searchpkg.New(s.source, searchpkg.WithDelay(40*time.Millisecond))
	if err != nil {
		return err
	}
	s.session = session
	return nil
}

// typeQuickly issues one query per prefix of text, each a few milliseconds
// after the last, and waits for all of them to settle.
func (s *searchSteps) typeQuickly(text string) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	runes := []rune(text)
	s.typed = len(runes)
	s.cancelled = 0
	for i := 1; i <= len(runes); i++ {
		term := string(runes[:i])
		wg.Add(1)
		go func(last bool) {
			defer wg.Done()
			results, err := s.session.Query(context.Background(), term)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case searchpkg.IsCancelled(err):
				s.cancelled++
			case err != nil:
				errs = append(errs, err)
			case last:
				s.results = results
			}
		}(i == len(runes))
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (s *searchSteps) closeWhileTyping(text string) error {
	done := make(chan error, 1)
	go func() {
		_, err := s.session.Query(context.Background(), text)
		done <- err
	}()
	time.Sleep(5 * time.Millisecond)
	s.session.Close()

	select {
	case err := <-done:
		if !searchpkg.IsCancelled(err) {
			return fmt.Errorf("expected cancelled query, got %v", err)
		}
		return nil
	case <-time.After(time.Second):
		return fmt.Errorf("pending query never settled")
	}
}

func (s *searchSteps) sourceQueriedTimes(n int) error {
	s.source.mu.Lock()
	defer s.source.mu.Unlock()
	if len(s.source.queries) != n {
		return fmt.Errorf("expected %d source queries, got %v", n, s.source.queries)
	}
	return nil
}

func (s *searchSteps) sourceLastReceived(term string) error {
	s.source.mu.Lock()
	defer s.source.mu.Unlock()
	if len(s.source.queries) == 0 {
		return fmt.Errorf("source was never queried")
	}
	if got := s.source.queries[len(s.source.queries)-1]; got != term {
		return fmt.Errorf("expected last query %q, got %q", term, got)
	}
	return nil
}

func (s *searchSteps) resultsAre(labels string) error {
	got := make([]string, 0, len(s.results))
	for _, r := range s.results {
		got = append(got, r.Label)
	}
	if strings.Join(got, ",") != labels {
		return fmt.Errorf("expected results %q, got %q", labels, strings.Join(got, ","))
	}
	return nil
}

// Terms below the minimum length settle immediately without results, so only
// keystrokes that reached the debouncer can be cancelled.
func (s *searchSteps) earlierCancelled() error {
	want := s.typed - searchpkg.DefaultMinLength
	if s.cancelled != want {
		return fmt.Errorf("expected %d cancelled keystrokes, got %d", want, s.cancelled)
	}
	return nil
}
