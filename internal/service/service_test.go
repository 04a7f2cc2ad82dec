package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/spaggo/internal/config"
	"github.com/five82/spaggo/internal/datewin"
	"github.com/five82/spaggo/internal/portal"
	"github.com/five82/spaggo/internal/session"
)

const (
	loginOK      = `{"expire":"2026-10-17T20:00:00+02:00","firstName":"Ada","ident":"S12345S","lastName":"L","release":"r","showPwdChangeReminder":false,"token":"fresh","tokenAP":"ap"}`
	loginBad     = `{"statusCode":422,"error":"422 Unprocessable Entity","info":"AuthenticationFailed","message":"username or password wrong"}`
	expired      = `{"statusCode":401,"error":"auth token expired","message":"expired"}`
	gradesBody   = `{"grades":[{"subjectDesc":"MATEMATICA","evtId":1,"evtDate":"2026-10-01","decimalValue":8,"weightFactor":1}]}`
	agendaBody   = `{"agenda":[{"evtId":4,"evtCode":"AGHW","evtDatetimeBegin":"2026-10-05T08:00:00+02:00","notes":"p. 12"}]}`
	lessonsBody  = `{"lessons":[]}`
	absencesBody = `{"events":[{"evtId":3,"evtCode":"ABA0","evtDate":"2026-10-02","isJustified":true}]}`
)

type getCall struct {
	path  string
	token string
}

type fakeFetcher struct {
	loginBodies []string
	getBodies   []string
	loginErr    error
	getErr      error

	logins int
	gets   []getCall
}

func (f *fakeFetcher) Login(_ context.Context, _ portal.LoginRequest) ([]byte, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	body := f.loginBodies[min(f.logins, len(f.loginBodies)-1)]
	f.logins++
	return []byte(body), nil
}

func (f *fakeFetcher) Get(_ context.Context, path, token string) ([]byte, error) {
	f.gets = append(f.gets, getCall{path: path, token: token})
	if f.getErr != nil {
		return nil, f.getErr
	}
	return []byte(f.getBodies[min(len(f.gets)-1, len(f.getBodies)-1)]), nil
}

type fakeStore struct {
	saved   []session.Token
	removed int
	saveErr error
}

func (s *fakeStore) Save(tok session.Token) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, tok)
	return nil
}

func (s *fakeStore) Remove() error {
	s.removed++
	return nil
}

func newService(t *testing.T, f *fakeFetcher, store *fakeStore, state *session.State, maxRelogins int) *Service {
	t.Helper()
	svc, err := New(Options{
		Fetcher:     f,
		Store:       store,
		State:       state,
		Credentials: config.Credentials{Username: "S12345S", Password: "pw"},
		MaxRelogins: maxRelogins,
	})
	require.NoError(t, err)
	return svc
}

func heldToken() *session.State {
	return session.NewState(session.Token{Token: "stale", StudentID: "12345"}, true)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{Store: &fakeStore{}})
	assert.Error(t, err)
	_, err = New(Options{Fetcher: &fakeFetcher{}})
	assert.Error(t, err)
	_, err = New(Options{Fetcher: &fakeFetcher{}, Store: &fakeStore{}, MaxRelogins: -1})
	assert.Error(t, err)
}

func TestLogin_SuccessPersistsAndDerivesStudentID(t *testing.T) {
	f := &fakeFetcher{loginBodies: []string{loginOK}}
	store := &fakeStore{}
	state := session.NewState(session.Token{}, false)
	svc := newService(t, f, store, state, 1)

	tok, err := svc.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.Token{Token: "fresh", TokenAP: "ap", StudentID: "12345"}, tok)
	require.Len(t, store.saved, 1)
	assert.Equal(t, tok, store.saved[0])

	cur, ok := state.Current()
	assert.True(t, ok)
	assert.Equal(t, tok, cur)
}

func TestLogin_RejectedRemovesTokenAndClearsState(t *testing.T) {
	f := &fakeFetcher{loginBodies: []string{loginBad}}
	store := &fakeStore{}
	state := heldToken()
	svc := newService(t, f, store, state, 1)

	_, err := svc.Login(context.Background())
	var rejected *LoginRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "username or password wrong", rejected.Message)
	assert.Equal(t, 422, rejected.StatusCode)
	assert.Contains(t, err.Error(), "username or password wrong")
	assert.Equal(t, 1, store.removed)
	assert.Empty(t, store.saved)

	_, ok := state.Current()
	assert.False(t, ok)
}

func TestLogin_ShortIdentRejected(t *testing.T) {
	for _, ident := range []string{"S", "SS"} {
		t.Run(ident, func(t *testing.T) {
			f := &fakeFetcher{loginBodies: []string{`{"ident":"` + ident + `","token":"t","tokenAP":"a"}`}}
			store := &fakeStore{}
			svc := newService(t, f, store, nil, 1)

			_, err := svc.Login(context.Background())
			assert.ErrorIs(t, err, session.ErrMalformedIdent)
			assert.Empty(t, store.saved)
		})
	}
}

func TestLogin_UnparseableBody(t *testing.T) {
	f := &fakeFetcher{loginBodies: []string{"<html>oops</html>"}}
	svc := newService(t, f, &fakeStore{}, nil, 1)

	_, err := svc.Login(context.Background())
	var unexpected *UnexpectedResponseError
	require.ErrorAs(t, err, &unexpected)
	assert.ErrorIs(t, err, portal.ErrInvalidJSON)
	assert.Contains(t, err.Error(), "<html>oops</html>")
}

func TestLogin_UnknownShape(t *testing.T) {
	f := &fakeFetcher{loginBodies: []string{`{"hello":"world"}`}}
	svc := newService(t, f, &fakeStore{}, nil, 1)

	_, err := svc.Login(context.Background())
	var unexpected *UnexpectedResponseError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, portal.KindUnknown, unexpected.Got)
}

func TestLogin_TransportError(t *testing.T) {
	f := &fakeFetcher{loginErr: errors.New("dial tcp: refused")}
	svc := newService(t, f, &fakeStore{}, nil, 1)

	_, err := svc.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refused")
}

func TestLogin_SaveErrorIsFatal(t *testing.T) {
	f := &fakeFetcher{loginBodies: []string{loginOK}}
	state := session.NewState(session.Token{}, false)
	svc := newService(t, f, &fakeStore{saveErr: errors.New("disk full")}, state, 1)

	_, err := svc.Login(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist token")
	_, ok := state.Current()
	assert.False(t, ok)
}

func TestGrades_LogsInWhenNoToken(t *testing.T) {
	f := &fakeFetcher{loginBodies: []string{loginOK}, getBodies: []string{gradesBody}}
	svc := newService(t, f, &fakeStore{}, nil, 1)

	grades, err := svc.Grades(context.Background())
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, "MATEMATICA", grades[0].SubjectDesc)
	assert.Equal(t, 1, f.logins)
	require.Len(t, f.gets, 1)
	assert.Equal(t, getCall{path: "/students/12345/grades", token: "fresh"}, f.gets[0])
}

func TestGrades_UsesHeldTokenWithoutLogin(t *testing.T) {
	f := &fakeFetcher{getBodies: []string{gradesBody}}
	svc := newService(t, f, &fakeStore{}, heldToken(), 1)

	_, err := svc.Grades(context.Background())
	require.NoError(t, err)
	assert.Zero(t, f.logins)
	assert.Equal(t, "stale", f.gets[0].token)
}

func TestExpiredToken_RelogsInAndRetriesSamePath(t *testing.T) {
	f := &fakeFetcher{loginBodies: []string{loginOK}, getBodies: []string{expired, agendaBody}}
	store := &fakeStore{}
	svc := newService(t, f, store, heldToken(), 1)

	w := datewin.AgendaWindow(time.Date(2026, time.October, 14, 9, 0, 0, 0, time.Local))
	events, err := svc.Agenda(context.Background(), w)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, 1, f.logins)
	require.Len(t, f.gets, 2)
	assert.Equal(t, "/students/12345/agenda/all/20261014/20261016", f.gets[0].path)
	assert.Equal(t, f.gets[0].path, f.gets[1].path)
	assert.Equal(t, "stale", f.gets[0].token)
	assert.Equal(t, "fresh", f.gets[1].token)
	assert.Len(t, store.saved, 1)
}

func TestExpiredToken_BoundedRetries(t *testing.T) {
	f := &fakeFetcher{loginBodies: []string{loginOK}, getBodies: []string{expired}}
	svc := newService(t, f, &fakeStore{}, heldToken(), 1)

	_, err := svc.Grades(context.Background())
	assert.ErrorIs(t, err, ErrReloginLimit)
	assert.Equal(t, 1, f.logins)
	assert.Len(t, f.gets, 2)
}

func TestExpiredToken_ZeroReloginsFailsImmediately(t *testing.T) {
	f := &fakeFetcher{loginBodies: []string{loginOK}, getBodies: []string{expired}}
	svc := newService(t, f, &fakeStore{}, heldToken(), 0)

	_, err := svc.Grades(context.Background())
	assert.ErrorIs(t, err, ErrReloginLimit)
	assert.Zero(t, f.logins)
	assert.Len(t, f.gets, 1)
}

func TestExpiredToken_ReloginRejected(t *testing.T) {
	f := &fakeFetcher{loginBodies: []string{loginBad}, getBodies: []string{expired}}
	store := &fakeStore{}
	svc := newService(t, f, store, heldToken(), 3)

	_, err := svc.Absences(context.Background())
	var rejected *LoginRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, 1, store.removed)
	assert.Len(t, f.gets, 1)
}

func TestWrongVariantIsUnexpected(t *testing.T) {
	f := &fakeFetcher{getBodies: []string{agendaBody}}
	svc := newService(t, f, &fakeStore{}, heldToken(), 1)

	_, err := svc.Grades(context.Background())
	var unexpected *UnexpectedResponseError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, portal.KindGrades, unexpected.Want)
	assert.Equal(t, portal.KindAgenda, unexpected.Got)
	assert.Contains(t, err.Error(), `"agenda"`)
}

func TestUnknownShapeIsUnexpected(t *testing.T) {
	f := &fakeFetcher{getBodies: []string{`{"surprise":true}`}}
	svc := newService(t, f, &fakeStore{}, heldToken(), 1)

	_, err := svc.Lessons(context.Background(), datewin.DayWindow(time.Now()))
	var unexpected *UnexpectedResponseError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, portal.KindUnknown, unexpected.Got)
	assert.Contains(t, err.Error(), "surprise")
}

func TestInvalidJSONIsUnexpected(t *testing.T) {
	f := &fakeFetcher{getBodies: []string{"Bad Gateway"}}
	svc := newService(t, f, &fakeStore{}, heldToken(), 1)

	_, err := svc.Absences(context.Background())
	assert.ErrorIs(t, err, portal.ErrInvalidJSON)
	assert.Contains(t, err.Error(), "Bad Gateway")
}

func TestAnyNoticeTriggersRelogin(t *testing.T) {
	forbidden := `{"statusCode":403,"error":"403 Forbidden","message":"Auth token not valid"}`
	f := &fakeFetcher{loginBodies: []string{loginOK}, getBodies: []string{forbidden, gradesBody}}
	svc := newService(t, f, &fakeStore{}, heldToken(), 1)

	grades, err := svc.Grades(context.Background())
	require.NoError(t, err)
	assert.Len(t, grades, 1)
	assert.Equal(t, 1, f.logins)
	require.Len(t, f.gets, 2)
	assert.Equal(t, "fresh", f.gets[1].token)
}

func TestNoticeAfterReloginsIsAPIError(t *testing.T) {
	f := &fakeFetcher{loginBodies: []string{loginOK}, getBodies: []string{`{"statusCode":404,"error":"Not Found","message":"no student"}`}}
	svc := newService(t, f, &fakeStore{}, heldToken(), 1)

	_, err := svc.Grades(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "no student", apiErr.Message)
	assert.Equal(t, 1, apiErr.Relogins)
	assert.ErrorIs(t, err, ErrReloginLimit)
	assert.Equal(t, 1, f.logins)
}

func TestTransportErrorIsFatal(t *testing.T) {
	f := &fakeFetcher{getErr: errors.New("connection reset")}
	svc := newService(t, f, &fakeStore{}, heldToken(), 1)

	_, err := svc.Grades(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Len(t, f.gets, 1)
}

func TestLessonsAndAbsencesPaths(t *testing.T) {
	f := &fakeFetcher{getBodies: []string{lessonsBody, absencesBody}}
	svc := newService(t, f, &fakeStore{}, heldToken(), 1)

	w := datewin.LessonWindow(time.Date(2026, time.October, 15, 9, 0, 0, 0, time.Local))
	_, err := svc.Lessons(context.Background(), w)
	require.NoError(t, err)
	abs, err := svc.Absences(context.Background())
	require.NoError(t, err)
	require.Len(t, abs, 1)

	assert.Equal(t, "/students/12345/lessons/20261012/20261017", f.gets[0].path)
	assert.Equal(t, "/students/12345/absences/details", f.gets[1].path)
}

func TestEndToEnd_WithHTTPServerAndTokenFile(t *testing.T) {
	var gets atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/auth/login":
			_, _ = w.Write([]byte(loginOK))
		case strings.HasSuffix(r.URL.Path, "/grades"):
			if gets.Add(1) == 1 || r.Header.Get(portal.AuthHeader) != "fresh" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(expired))
				return
			}
			_, _ = w.Write([]byte(gradesBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client, err := portal.NewClient(portal.Options{BaseURL: server.URL})
	require.NoError(t, err)
	store, err := session.NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)

	svc, err := New(Options{
		Fetcher:     client,
		Store:       store,
		State:       heldToken(),
		Credentials: config.Credentials{Username: "S12345S", Password: "pw"},
		MaxRelogins: 1,
	})
	require.NoError(t, err)

	grades, err := svc.Grades(context.Background())
	require.NoError(t, err)
	assert.Len(t, grades, 1)

	persisted, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "fresh", persisted.Token)
	assert.Equal(t, "12345", persisted.StudentID)
}
