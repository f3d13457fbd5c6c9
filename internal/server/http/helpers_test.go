package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/reformguide/internal/common"
	"github.com/dmitrijs2005/reformguide/internal/logging"
	"github.com/dmitrijs2005/reformguide/internal/server/auth"
	"github.com/dmitrijs2005/reformguide/internal/server/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret = "test-secret"
	accessTTL  = 30 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeUsers is an in-memory UserService that also serves principal lookups
// for the real Authenticator.
type fakeUsers struct {
	mu      sync.Mutex
	hasher  *auth.PasswordHasher
	issuer  *auth.Issuer
	byLogin map[string]*models.User
	logs    map[int64][]*models.LogEntry
	nextID  int64
	lookups int
	err     error
}

func newFakeUsers(issuer *auth.Issuer) *fakeUsers {
	return &fakeUsers{
		hasher:  auth.NewPasswordHasher(bcrypt.MinCost),
		issuer:  issuer,
		byLogin: map[string]*models.User{},
		logs:    map[int64][]*models.LogEntry{},
	}
}

func (f *fakeUsers) Register(ctx context.Context, loginID, password, name string, disabilities []string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byLogin[loginID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	for _, u := range f.byLogin {
		if u.UserName == name {
			return nil, common.ErrorNameTaken
		}
	}
	hash, err := f.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	f.nextID++
	u := &models.User{
		ID:           f.nextID,
		LoginID:      loginID,
		Password:     hash,
		UserName:     name,
		Disabilities: append([]string{}, disabilities...),
	}
	f.byLogin[loginID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Login(ctx context.Context, loginID, password string) (*auth.TokenPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byLogin[loginID]
	if !ok || !f.hasher.Verify(password, u.Password) {
		return nil, common.ErrorUnauthorized
	}
	return f.issuer.IssuePair(loginID)
}

func (f *fakeUsers) IsLoginIDAvailable(ctx context.Context, loginID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.byLogin[loginID]
	return !ok, nil
}

func (f *fakeUsers) GetUserByLogin(ctx context.Context, loginID string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byLogin[loginID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	cp.Disabilities = append([]string{}, u.Disabilities...)
	return &cp, nil
}

func (f *fakeUsers) UpdateName(ctx context.Context, userID int64, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byLogin {
		if u.ID != userID && u.UserName == name {
			return common.ErrorAlreadyExists
		}
	}
	for _, u := range f.byLogin {
		if u.ID == userID {
			u.UserName = name
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeUsers) UpdateDisabilities(ctx context.Context, userID int64, disabilities []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byLogin {
		if u.ID == userID {
			u.Disabilities = append([]string{}, disabilities...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeUsers) ListLogs(ctx context.Context, userID int64) ([]*models.LogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.logs[userID], nil
}

func (f *fakeUsers) lookupCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookups
}

type fakeReforms struct {
	cloth  string
	err    error
	userID int64
	upload *models.Upload
}

func (f *fakeReforms) CreateGuide(ctx context.Context, userID int64, upload *models.Upload) (*models.Reform, error) {
	f.userID = userID
	f.upload = upload
	if f.err != nil {
		return nil, f.err
	}
	return &models.Reform{ID: 1, ReformType: models.DefaultReformType, Cloth: f.cloth}, nil
}

type testEnv struct {
	t        *testing.T
	srv      *HTTPServer
	users    *fakeUsers
	reforms  *fakeReforms
	clock    *testClock
	codec    *auth.Codec
	issuer   *auth.Issuer
	registry *prometheus.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clock := &testClock{t: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}
	codec := auth.NewCodec([]byte(testSecret), auth.WithClock(clock.Now))
	issuer := auth.NewIssuer(codec, accessTTL, refreshTTL)
	users := newFakeUsers(issuer)
	reforms := &fakeReforms{cloth: "short_sleeve_top"}
	registry := prometheus.NewRegistry()
	logger := logging.NewJSONLogger(io.Discard, slog.LevelError)

	srv := NewHTTPServer(":0", logger, users, reforms, auth.NewAuthenticator(issuer, users), registry, 1<<20)

	return &testEnv{
		t:        t,
		srv:      srv,
		users:    users,
		reforms:  reforms,
		clock:    clock,
		codec:    codec,
		issuer:   issuer,
		registry: registry,
	}
}

func (e *testEnv) do(method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	e.t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) upload(fileName string, data []byte, headers map[string]string) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if fileName != "" {
		fw, err := mw.CreateFormFile(imageFormField, fileName)
		require.NoError(e.t, err)
		_, err = fw.Write(data)
		require.NoError(e.t, err)
	}
	require.NoError(e.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/reform-guide", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	return rec
}

// signup registers a user and signs in, returning the issued pair.
func (e *testEnv) signup(loginID, password, name string, disabilities []string) *auth.TokenPair {
	e.t.Helper()

	if disabilities == nil {
		disabilities = []string{}
	}
	rec := e.do(http.MethodPost, "/signup", map[string]any{
		"loginId": loginID, "password": password, "name": name, "disabilities": disabilities,
	}, nil)
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(http.MethodPost, "/signin", map[string]any{"loginId": loginID, "password": password}, nil)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	return &auth.TokenPair{
		AccessToken:  rec.Header().Get(common.AccessTokenHeaderName),
		RefreshToken: rec.Header().Get(common.RefreshTokenHeaderName),
	}
}

func accessHeader(pair *auth.TokenPair) map[string]string {
	return map[string]string{common.AccessTokenHeaderName: pair.AccessToken}
}

func bothHeaders(pair *auth.TokenPair) map[string]string {
	return map[string]string{
		common.AccessTokenHeaderName:  pair.AccessToken,
		common.RefreshTokenHeaderName: pair.RefreshToken,
	}
}
