package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mavunaku/cvp3sea/internal/domain"
	"github.com/Mavunaku/cvp3sea/internal/middleware"
	"github.com/Mavunaku/cvp3sea/internal/service"
	"github.com/Mavunaku/cvp3sea/internal/tax"
	"github.com/Mavunaku/cvp3sea/internal/testutil"
	"github.com/Mavunaku/cvp3sea/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// testServer routes requests through RegisterRoutes over mock repositories
type testServer struct {
	e         *echo.Echo
	years     *testutil.MockFiscalYearRepository
	projects  *testutil.MockProjectRepository
	ledger    *testutil.MockLedgerRepository
	assets    *testutil.MockAssetRepository
	receipts  *testutil.MockReceiptStore
	publisher *testutil.MockEventPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		e:         echo.New(),
		years:     testutil.NewMockFiscalYearRepository(),
		receipts:  testutil.NewMockReceiptStore(),
		publisher: testutil.NewMockEventPublisher(),
	}
	s.projects = testutil.NewMockProjectRepository(s.years)
	s.ledger = testutil.NewMockLedgerRepository(s.projects)
	s.assets = testutil.NewMockAssetRepository(s.projects)

	projectService := service.NewProjectService(s.years, s.projects, s.ledger, s.assets)
	projectService.SetEventPublisher(s.publisher)
	ledgerService := service.NewLedgerService(s.ledger, s.projects, projectService)
	ledgerService.SetEventPublisher(s.publisher)
	ledgerService.SetReceiptStore(s.receipts)
	assetService := service.NewAssetService(s.assets, s.projects, projectService)
	assetService.SetEventPublisher(s.publisher)
	receiptService := service.NewReceiptService(s.receipts, s.ledger)
	receiptService.SetEventPublisher(s.publisher)
	taxService := service.NewTaxService(tax.NewEngine(tax.DefaultRates()), s.ledger, s.assets, s.projects, projectService)

	rateLimiter := middleware.NewRateLimiterWithConfig(1000, 1000)
	t.Cleanup(rateLimiter.Stop)

	RegisterRoutes(s.e, &middleware.AuthMiddleware{}, rateLimiter,
		NewProjectHandler(projectService),
		NewLedgerHandler(ledgerService),
		NewReceiptHandler(receiptService),
		NewAssetHandler(assetService),
		NewTaxHandler(taxService),
		NewWebSocketHandler(websocket.NewHub(), &middleware.AuthMiddleware{}, nil),
	)
	return s
}

// do sends a JSON request and returns the recorded response
func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// addProject seeds a year and a property project in it
func (s *testServer) addProject(year, name string) *domain.Project {
	if _, ok := s.years.Years[year]; !ok {
		s.years.AddYear(year)
	}
	return s.projects.AddProject(&domain.Project{Name: name, Type: domain.ProjectTypeProperty, YearID: year})
}

// decodeJSON unmarshals a response body into v
func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

// decodeProblem unmarshals a problem response
func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	var problem ProblemDetails
	decodeJSON(t, rec, &problem)
	return problem
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
