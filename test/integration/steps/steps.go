// Package steps provides step definitions for the BDD integration suite.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/subtrack/backend/config"
	"github.com/subtrack/backend/internal/domain/entity"
	"github.com/subtrack/backend/internal/infra/dependency"
	"github.com/subtrack/backend/internal/integration/persistence"
	"github.com/subtrack/backend/test/integration/mock"
)

var (
	providerOnce sync.Once
	syncProvider *mock.SyncProvider
)

func sharedSyncProvider() *mock.SyncProvider {
	providerOnce.Do(func() {
		syncProvider = mock.NewSyncProvider()
	})
	return syncProvider
}

// testContext holds the per-scenario state.
type testContext struct {
	db       *mock.Db
	injector *dependency.Injector
	server   *httptest.Server

	response     *http.Response
	responseBody []byte

	requestHeaders map[string]string
	token          string

	// seeded subscriptions by name, for {Name} path placeholders
	subscriptionIDs map[string]string
	// ids captured from responses, for {last_id} placeholders
	lastID string
}

type contextKey struct{}

func testContextFrom(ctx context.Context) *testContext {
	tc, _ := ctx.Value(contextKey{}).(*testContext)
	return tc
}

// InitializeTestSuite sets up suite-wide resources.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
	ctx.AfterSuite(func() {
		if syncProvider != nil {
			syncProvider.Close()
		}
	})
}

// InitializeScenario wires a fresh application stack and registers the steps.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		provider := sharedSyncProvider()
		provider.Reset()

		db := mock.NewDb()
		if err := db.Reset(); err != nil {
			return ctx, err
		}
		if err := mock.ClearRedis(); err != nil {
			return ctx, err
		}

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = "integration-test-secret"
		cfg.Sync.ProviderURL = provider.URL()
		cfg.Redis.URL = "redis://" + mock.RedisAddr()
		cfg.Reminder.WorkerEnabled = false

		tc := &testContext{
			db:              db,
			injector:        dependency.NewInjector(cfg, db.Conn),
			requestHeaders:  make(map[string]string),
			subscriptionIDs: make(map[string]string),
		}
		tc.server = httptest.NewServer(tc.injector.Router.Setup(cfg.Server.Environment))

		return context.WithValue(ctx, contextKey{}, tc), nil
	})

	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		if tc := testContextFrom(ctx); tc != nil {
			if tc.response != nil {
				tc.response.Body.Close()
			}
			tc.server.Close()
		}
		return ctx, nil
	})

	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I am authenticated$`, iAmAuthenticated)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)

	ctx.Step(`^the following subscriptions exist:$`, theFollowingSubscriptionsExist)
	ctx.Step(`^the sync provider returns status (\d+) with body:$`, theSyncProviderReturns)

	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response content type should be "([^"]*)"$`, theResponseContentTypeShouldBe)
	ctx.Step(`^the sync provider should have been called$`, theSyncProviderShouldHaveBeenCalled)
}

func theAPIServerIsRunning(ctx context.Context) error {
	if tc := testContextFrom(ctx); tc == nil || tc.server == nil {
		return fmt.Errorf("test server not running")
	}
	return nil
}

func iAmAuthenticated(ctx context.Context) error {
	tc := testContextFrom(ctx)

	body, _ := json.Marshal(map[string]string{"name": "Test Device", "platform": "web"})
	resp, err := http.Post(tc.server.URL+"/api/v1/auth/devices", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("device registration failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("device registration returned status %d", resp.StatusCode)
	}

	var registered struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		return fmt.Errorf("failed to decode registration response: %w", err)
	}
	if registered.Token == "" {
		return fmt.Errorf("registration response carried no token")
	}

	tc.token = registered.Token
	return nil
}

func iSetHeaderTo(ctx context.Context, name, value string) error {
	testContextFrom(ctx).requestHeaders[name] = value
	return nil
}

func iSendARequestTo(ctx context.Context, method, path string) error {
	return sendRequest(ctx, method, path, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	expanded := testContextFrom(ctx).expandPath(body.Content)
	return sendRequest(ctx, method, path, bytes.NewReader([]byte(expanded)))
}

// placeholderPattern matches identifier-like placeholders such as {Netflix}
// or {last_id}. It must not match JSON braces, so the first character inside
// the braces is restricted to a letter or underscore.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_ ]*)\}`)

// expandPath substitutes {Name} placeholders with seeded subscription IDs and
// {last_id} with the id captured from the previous response.
func (tc *testContext) expandPath(path string) string {
	return placeholderPattern.ReplaceAllStringFunc(path, func(match string) string {
		name := strings.Trim(match, "{}")
		if name == "last_id" {
			return tc.lastID
		}
		if id, ok := tc.subscriptionIDs[name]; ok {
			return id
		}
		return match
	})
}

func sendRequest(ctx context.Context, method, path string, body io.Reader) error {
	tc := testContextFrom(ctx)

	req, err := http.NewRequest(method, tc.server.URL+tc.expandPath(path), body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.token != "" {
		req.Header.Set("Authorization", "Bearer "+tc.token)
	}
	for name, value := range tc.requestHeaders {
		req.Header.Set(name, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// Capture a top-level id when one is present so later steps can refer to it.
	var payload map[string]any
	if json.Unmarshal(tc.responseBody, &payload) == nil {
		if id, ok := payload["id"].(string); ok {
			tc.lastID = id
		}
	}
	return nil
}

func theFollowingSubscriptionsExist(ctx context.Context, table *godog.Table) error {
	tc := testContextFrom(ctx)
	repo := persistence.NewSubscriptionRepository(tc.db.Conn)

	if len(table.Rows) < 2 {
		return fmt.Errorf("subscription table needs a header and at least one row")
	}

	columns := make(map[string]int, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}
	cell := func(row int, column string) string {
		if i, ok := columns[column]; ok {
			return table.Rows[row].Cells[i].Value
		}
		return ""
	}

	for row := 1; row < len(table.Rows); row++ {
		price, err := decimal.NewFromString(cell(row, "price"))
		if err != nil {
			return fmt.Errorf("row %d: bad price: %w", row, err)
		}

		nextBilling := time.Now().UTC().AddDate(0, 1, 0)
		if raw := cell(row, "next_billing_date"); raw != "" {
			if strings.HasPrefix(raw, "+") {
				days, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(raw, "+"), "d"))
				if err != nil {
					return fmt.Errorf("row %d: bad relative date %q", row, raw)
				}
				nextBilling = time.Now().UTC().AddDate(0, 0, days)
			} else {
				nextBilling, err = time.Parse("2006-01-02", raw)
				if err != nil {
					return fmt.Errorf("row %d: bad date %q", row, raw)
				}
			}
		}

		currency := cell(row, "currency")
		if currency == "" {
			currency = "USD"
		}
		cycle := cell(row, "billing_cycle")
		if cycle == "" {
			cycle = "monthly"
		}

		sub := entity.NewSubscription(
			cell(row, "name"),
			cell(row, "description"),
			entity.Category(cell(row, "category")),
			price,
			currency,
			entity.BillingCycle(cycle),
			nextBilling,
			false, "", nil,
		)
		if cell(row, "is_active") == "false" {
			sub.IsActive = false
		}

		if err := repo.Create(context.Background(), sub); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		tc.subscriptionIDs[sub.Name] = sub.ID.String()
	}
	return nil
}

func theSyncProviderReturns(_ context.Context, status int, body *godog.DocString) error {
	sharedSyncProvider().Respond(status, body.Content)
	return nil
}

func theSyncProviderShouldHaveBeenCalled(_ context.Context) error {
	if sharedSyncProvider().Requests() == 0 {
		return fmt.Errorf("sync provider received no requests")
	}
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, expected int) error {
	tc := testContextFrom(ctx)
	if tc.response == nil {
		return fmt.Errorf("no response captured")
	}
	if tc.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

// lookupField walks a dot-separated path through the decoded response. Numeric
// segments index into arrays: "subscriptions.0.name".
func (tc *testContext) lookupField(path string) (any, error) {
	var document any
	if err := json.Unmarshal(tc.responseBody, &document); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}

	current := document
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", path, tc.responseBody)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("bad array index %q in path %q", segment, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field %q not found in %s", path, tc.responseBody)
		}
	}
	return current, nil
}

func theResponseFieldShouldBe(ctx context.Context, path, expected string) error {
	value, err := testContextFrom(ctx).lookupField(path)
	if err != nil {
		return err
	}

	var actual string
	switch v := value.(type) {
	case string:
		actual = v
	case float64:
		actual = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		actual = strconv.FormatBool(v)
	case nil:
		actual = "null"
	default:
		raw, _ := json.Marshal(v)
		actual = string(raw)
	}

	if actual != expected {
		return fmt.Errorf("field %q: expected %q, got %q", path, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, path string) error {
	_, err := testContextFrom(ctx).lookupField(path)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, path string, expected int) error {
	value, err := testContextFrom(ctx).lookupField(path)
	if err != nil {
		return err
	}
	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field %q is not an array", path)
	}
	if len(list) != expected {
		return fmt.Errorf("field %q: expected %d items, got %d", path, expected, len(list))
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, substring string) error {
	tc := testContextFrom(ctx)
	if !strings.Contains(string(tc.responseBody), substring) {
		return fmt.Errorf("response does not contain %q: %s", substring, tc.responseBody)
	}
	return nil
}

func theResponseContentTypeShouldBe(ctx context.Context, expected string) error {
	tc := testContextFrom(ctx)
	actual := tc.response.Header.Get("Content-Type")
	if !strings.HasPrefix(actual, expected) {
		return fmt.Errorf("expected content type %q, got %q", expected, actual)
	}
	return nil
}
