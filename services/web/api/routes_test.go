package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/itemstack/pkg/app"
	"github.com/ghuser/itemstack/pkg/config"
	"github.com/ghuser/itemstack/pkg/database"
	"github.com/ghuser/itemstack/pkg/logger"
	"github.com/ghuser/itemstack/pkg/session"
	itemApi "github.com/ghuser/itemstack/services/item/application/api"
	"github.com/ghuser/itemstack/services/web/api"
	"github.com/ghuser/itemstack/services/web/client"
)

// mutationCounter counts item mutations reaching the API.
type mutationCounter struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *mutationCounter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			c.mu.Lock()
			c.calls[r.Method]++
			c.mu.Unlock()
		}
		next.ServeHTTP(w, r)
	})
}

func (c *mutationCounter) count(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[method]
}

// browser replays cookies between requests the way a real browser would.
type browser struct {
	t       *testing.T
	web     http.Handler
	api     *client.Client
	counter *mutationCounter
	cookies map[string]*http.Cookie
}

var (
	testAuthKey = []byte("test-auth-key-must-be-32-bytes!!")
	testEncKey  = []byte("test-enc-key-must-be-32-bytes!!!")
)

func newBrowser(t *testing.T) *browser {
	t.Helper()
	return newBrowserWithKeys(t, testAuthKey, testEncKey)
}

// newBrowserWithKeys runs the page against the real item API over a memory store,
// sealing sessions with the given cookie keys.
func newBrowserWithKeys(t *testing.T, authKey, encKey []byte) *browser {
	t.Helper()
	target, _ := database.ParseTarget("memory://")
	store := database.New(target, logger.Discard())
	if err := store.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	counter := &mutationCounter{calls: map[string]int{}}
	apiRouter := chi.NewRouter()
	apiRouter.Use(counter.middleware)
	apiRouter.Route("/api", func(r chi.Router) {
		itemApi.ItemRoutes(r, &app.Application{
			Store:             store,
			Logger:            logger.Discard(),
			AdminInterfaceURL: "http://localhost:8080",
		})
	})
	apiSrv := httptest.NewServer(apiRouter)
	t.Cleanup(apiSrv.Close)

	return newBrowserFor(t, client.New(apiSrv.URL), counter, authKey, encKey)
}

func newBrowserFor(t *testing.T, c *client.Client, counter *mutationCounter, authKey, encKey []byte) *browser {
	sessions := session.NewStore(nil, authKey, encKey, false)
	web := chi.NewRouter()
	api.WebRoutes(web, c, sessions, logger.Discard())

	return &browser{t: t, web: web, api: c, counter: counter, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.web.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) post(path string, form url.Values) {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := b.do(req)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		b.t.Fatalf("POST %s: expected 303 to /, got %d %q", path, w.Code, w.Header().Get("Location"))
	}
}

func (b *browser) page() string {
	b.t.Helper()
	w := b.do(httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		b.t.Fatalf("GET /: %d", w.Code)
	}
	return w.Body.String()
}

func (b *browser) itemID(name string) string {
	b.t.Helper()
	items, err := b.api.ListItems(context.Background())
	if err != nil {
		b.t.Fatalf("ListItems: %v", err)
	}
	for _, it := range items {
		if it.Name == name {
			return it.ID
		}
	}
	b.t.Fatalf("item %q not found", name)
	return ""
}

func name(v string) url.Values {
	return url.Values{"name": {v}}
}

func TestPage_EmptyListAndConnectionInfo(t *testing.T) {
	b := newBrowser(t)
	body := b.page()

	for _, want := range []string{
		"No items found. Add some!",
		`class="ok">Connected<`,
		"Available at http://localhost:8080",
		"memory",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestPage_AddItem(t *testing.T) {
	b := newBrowser(t)
	b.post("/items", name("milk"))

	body := b.page()
	if !strings.Contains(body, `<span class="name">milk</span>`) {
		t.Fatalf("expected milk in list:\n%s", body)
	}
	if strings.Contains(body, "No items found") {
		t.Error("empty message shown with items present")
	}
	if !strings.Contains(body, `name="name" value="" placeholder="New item"`) {
		t.Error("pending new-item text must clear after a successful create")
	}
}

func TestPage_BlankNameNotSubmitted(t *testing.T) {
	b := newBrowser(t)
	b.post("/items", name("   "))

	if n := b.counter.count(http.MethodPost); n != 0 {
		t.Fatalf("blank name reached the API %d times", n)
	}
	if !strings.Contains(b.page(), "No items found. Add some!") {
		t.Error("list should still be empty")
	}
}

func TestPage_EditAndSave(t *testing.T) {
	b := newBrowser(t)
	b.post("/items", name("milk"))
	id := b.itemID("milk")

	b.post("/items/"+id+"/edit", name("milk"))
	body := b.page()
	if !strings.Contains(body, `action="/items/`+id+`/save"`) || !strings.Contains(body, `value="milk"`) {
		t.Fatalf("expected edit form with draft:\n%s", body)
	}

	b.post("/items/"+id+"/save", name("oat milk"))
	body = b.page()
	if !strings.Contains(body, `<span class="name">oat milk</span>`) {
		t.Errorf("expected renamed item:\n%s", body)
	}
	if strings.Contains(body, "/save") {
		t.Error("edit mode must end after a successful save")
	}
}

func TestPage_BlankDraftStaysInEditMode(t *testing.T) {
	b := newBrowser(t)
	b.post("/items", name("milk"))
	id := b.itemID("milk")

	b.post("/items/"+id+"/edit", name("milk"))
	b.post("/items/"+id+"/save", name("  "))

	if n := b.counter.count(http.MethodPut); n != 0 {
		t.Fatalf("blank draft reached the API %d times", n)
	}
	if !strings.Contains(b.page(), `action="/items/`+id+`/save"`) {
		t.Error("expected to remain in edit mode")
	}
}

func TestPage_CancelEdit(t *testing.T) {
	b := newBrowser(t)
	b.post("/items", name("milk"))
	id := b.itemID("milk")

	b.post("/items/"+id+"/edit", name("milk"))
	b.post("/items/"+id+"/cancel-edit", nil)

	if strings.Contains(b.page(), "/save") {
		t.Error("cancel must leave edit mode")
	}
	if n := b.counter.count(http.MethodPut); n != 0 {
		t.Errorf("cancel must not update, got %d PUTs", n)
	}
}

func TestPage_DeleteNeedsConfirmation(t *testing.T) {
	b := newBrowser(t)
	b.post("/items", name("bread"))
	id := b.itemID("bread")

	b.post("/items/"+id+"/delete", nil)
	body := b.page()
	if !strings.Contains(body, `action="/items/`+id+`/confirm-delete"`) {
		t.Fatalf("expected confirmation prompt:\n%s", body)
	}
	if n := b.counter.count(http.MethodDelete); n != 0 {
		t.Fatal("requesting a delete must not delete")
	}

	b.post("/items/"+id+"/cancel-delete", nil)
	body = b.page()
	if strings.Contains(body, "confirm-delete") || !strings.Contains(body, "bread") {
		t.Fatalf("cancel must keep the item and drop the prompt:\n%s", body)
	}

	b.post("/items/"+id+"/delete", nil)
	b.post("/items/"+id+"/confirm-delete", nil)
	if !strings.Contains(b.page(), "No items found. Add some!") {
		t.Error("item should be gone after confirmation")
	}
	if n := b.counter.count(http.MethodDelete); n != 1 {
		t.Errorf("expected 1 DELETE, got %d", n)
	}
}

// TestPage_DefaultConfigKeys drives edit and two-step delete with the cookie
// keys a fresh checkout gets from config.Load.
func TestPage_DefaultConfigKeys(t *testing.T) {
	for _, k := range []string{"SESSION_AUTH_KEY", "SESSION_ENCRYPTION_KEY", "ENVIRONMENT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	b := newBrowserWithKeys(t, []byte(cfg.SessionAuthKey), []byte(cfg.SessionEncryptionKey))
	b.post("/items", name("bread"))
	id := b.itemID("bread")

	b.post("/items/"+id+"/edit", name("bread"))
	if len(b.cookies) == 0 {
		t.Fatal("expected a session cookie after entering edit mode")
	}
	if !strings.Contains(b.page(), `action="/items/`+id+`/save"`) {
		t.Fatal("edit mode was not kept across requests")
	}
	b.post("/items/"+id+"/cancel-edit", nil)

	b.post("/items/"+id+"/delete", nil)
	b.post("/items/"+id+"/confirm-delete", nil)
	if n := b.counter.count(http.MethodDelete); n != 1 {
		t.Fatalf("expected 1 DELETE to reach the API, got %d", n)
	}
	if !strings.Contains(b.page(), "No items found. Add some!") {
		t.Error("item should be gone after confirmation")
	}
}

func TestPage_ItemDeletedElsewhereEndsEditAndDelete(t *testing.T) {
	b := newBrowser(t)
	b.post("/items", name("milk"))
	b.post("/items", name("bread"))
	milk, bread := b.itemID("milk"), b.itemID("bread")

	b.post("/items/"+milk+"/edit", name("milk"))
	if err := b.api.DeleteItem(context.Background(), milk); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	b.post("/items/"+milk+"/save", name("oat milk"))
	if strings.Contains(b.page(), "/save") {
		t.Error("edit mode must end when the item is gone")
	}

	b.post("/items/"+bread+"/delete", nil)
	if err := b.api.DeleteItem(context.Background(), bread); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	b.post("/items/"+bread+"/confirm-delete", nil)
	body := b.page()
	if strings.Contains(body, "confirm-delete") {
		t.Error("confirmation prompt must be dropped for a vanished item")
	}
	if !strings.Contains(body, "No items found. Add some!") {
		t.Errorf("expected empty list:\n%s", body)
	}
}

func TestPage_ConfirmWithoutRequestIsIgnored(t *testing.T) {
	b := newBrowser(t)
	b.post("/items", name("bread"))
	id := b.itemID("bread")

	b.post("/items/"+id+"/confirm-delete", nil)
	if n := b.counter.count(http.MethodDelete); n != 0 {
		t.Fatalf("unrequested confirm deleted %d items", n)
	}
}

func TestPage_APIDownStillRenders(t *testing.T) {
	b := newBrowserFor(t, client.New("http://127.0.0.1:1"), &mutationCounter{calls: map[string]int{}}, testAuthKey, testEncKey)
	body := b.page()

	if !strings.Contains(body, "Connection info unavailable") {
		t.Error("expected connection info fallback")
	}
	if !strings.Contains(body, "No items found. Add some!") {
		t.Error("expected empty list fallback")
	}

	// Mutation failures are logged only; the browser still lands on the page.
	b.post("/items", name("milk"))
}
