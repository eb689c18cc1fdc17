package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"formgate/internal/search"
	"formgate/internal/search/mocks"
	dErrors "formgate/pkg/domain-errors"
	"formgate/pkg/platform/sentinel"
)

// =============================================================================
// Search Session Test Suite
// =============================================================================
// Justification for unit tests: the session is the search-as-you-type
// consumer of the debouncer. Tests verify that only the latest term reaches
// the source and that teardown never lets a pending query through.

type SessionSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockSource *mocks.MockSource
	session    *search.Session
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSource = mocks.NewMockSource(s.ctrl)
	var err error
	s.session, err = search.New(s.mockSource, search.WithDelay(50*time.Millisecond))
	s.Require().NoError(err)
}

func (s *SessionSuite) TearDownTest() {
	s.session.Close()
	s.ctrl.Finish()
}

func (s *SessionSuite) TestNew() {
	s.Run("nil source returns error", func() {
		_, err := search.New(nil)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("negative min length returns error", func() {
		_, err := search.New(s.mockSource, search.WithMinLength(-1))
		s.Error(err)
	})
}

func (s *SessionSuite) TestQueryReachesSource() {
	want := []search.Result{{ID: "1", Label: "Mumbai"}}
	s.mockSource.EXPECT().Search(gomock.Any(), "mum bai").Return(want, nil)

	got, err := s.session.Query(context.Background(), "  mum   bai ")
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *SessionSuite) TestShortTermSkipsSource() {
	got, err := s.session.Query(context.Background(), " m ")
	s.NoError(err)
	s.Nil(got)
}

func (s *SessionSuite) TestOnlyLatestTermIsSearched() {
	s.mockSource.EXPECT().Search(gomock.Any(), "pune").Return([]search.Result{{ID: "p"}}, nil).Times(1)

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = s.session.Query(context.Background(), "pu")
	}()
	time.Sleep(10 * time.Millisecond)

	got, err := s.session.Query(context.Background(), "pune")
	s.Require().NoError(err)
	s.Len(got, 1)

	wg.Wait()
	s.ErrorIs(firstErr, sentinel.ErrCancelled)
	s.True(search.IsCancelled(firstErr))
}

func (s *SessionSuite) TestShorteningTermDropsPendingQuery() {
	done := make(chan error, 1)
	go func() {
		_, err := s.session.Query(context.Background(), "delhi")
		done <- err
	}()
	time.Sleep(10 * time.Millisecond)

	_, err := s.session.Query(context.Background(), "d")
	s.NoError(err)

	select {
	case err := <-done:
		s.ErrorIs(err, sentinel.ErrCancelled)
	case <-time.After(time.Second):
		s.Fail("pending query was not settled")
	}
}

func (s *SessionSuite) TestSourceErrorIsWrapped() {
	s.mockSource.EXPECT().Search(gomock.Any(), "goa").Return(nil, errors.New("lookup down"))

	_, err := s.session.Query(context.Background(), "goa")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.False(search.IsCancelled(err))
}

func (s *SessionSuite) TestContextCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.mockSource.EXPECT().Search(gomock.Any(), "agra").Return(nil, context.Canceled).AnyTimes()

	_, err := s.session.Query(ctx, "agra")
	s.ErrorIs(err, context.Canceled)
}

func (s *SessionSuite) TestCloseRejectsQueries() {
	s.session.Close()

	_, err := s.session.Query(context.Background(), "chennai")
	s.ErrorIs(err, sentinel.ErrDisposed)
	s.True(search.IsCancelled(err))
}
