package chi

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/careatlas/orgconnect/internal/domain"
	healthuc "github.com/careatlas/orgconnect/internal/usecase/health"
)

type mockOrgStore struct {
	upsertFn func(ctx context.Context, org *domain.Organization) (bool, error)
	getFn    func(ctx context.Context, id string) (domain.Organization, error)
	listFn   func(ctx context.Context) ([]domain.Organization, error)
	countFn  func(ctx context.Context) (int, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockOrgStore) Upsert(ctx context.Context, org *domain.Organization) (bool, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, org)
	}
	return false, nil
}

func (m *mockOrgStore) Get(ctx context.Context, id string) (domain.Organization, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domain.Organization{}, nil
}

func (m *mockOrgStore) List(ctx context.Context) ([]domain.Organization, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockOrgStore) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockOrgStore) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockProximity struct {
	findFn func(ctx context.Context, lat, lon float64, radiusKm *float64) ([]domain.RankedOrganization, error)
}

func (m *mockProximity) FindNearby(
	ctx context.Context, lat, lon float64, radiusKm *float64,
) ([]domain.RankedOrganization, error) {
	if m.findFn != nil {
		return m.findFn(ctx, lat, lon, radiusKm)
	}
	return nil, nil
}

type mockDocChat struct {
	answerFn func(ctx context.Context, pdfData []byte, question string) (string, error)
}

func (m *mockDocChat) Answer(ctx context.Context, pdfData []byte, question string) (string, error) {
	if m.answerFn != nil {
		return m.answerFn(ctx, pdfData, question)
	}
	return "", nil
}

type okPinger struct{}

func (okPinger) Ping(_ context.Context) error { return nil }

type testServer struct {
	orgs      *mockOrgStore
	proximity *mockProximity
	docchat   *mockDocChat
	router    chirouter.Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		orgs:      &mockOrgStore{},
		proximity: &mockProximity{},
		docchat:   &mockDocChat{},
	}
	srv := NewServer(ts.orgs, ts.proximity, ts.docchat,
		healthuc.New(okPinger{}, nil), 1<<20, zap.NewNop())
	ts.router = chirouter.NewRouter()
	srv.Routes(ts.router)
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	ts.router.ServeHTTP(rr, req)
	return rr
}

// multipartPDF builds a multipart body with a file part and a question field.
func multipartPDF(t *testing.T, filename, question string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if question != "" {
		if err := w.WriteField("question", question); err != nil {
			t.Fatalf("write question field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}
