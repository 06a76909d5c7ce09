package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/loadout/internal/catalog"
	"github.com/meur/loadout/internal/config"
	"github.com/meur/loadout/internal/models"
	"github.com/meur/loadout/internal/session"
	"github.com/meur/loadout/internal/view"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Weapon{
		{Name: "MCW", Type: "Assault Rifle", Game: "MW3", Rank: 2, Attachments: []models.Attachment{
			models.SlotAttachment("Optic", "VLK 3.0x"),
			models.PlainAttachment("Grip"),
		}},
		{Name: "XM4", Type: "Assault Rifle", Game: "BO6", Rank: 1, WeaponImg: "/assets/weapons/xm4.webp"},
		{Name: "KSV", Type: "SMG", Game: "BO6", Rank: 2},
		{Name: "Jackal PDW", Type: "smg", Game: "BO6", Rank: 1, Attachments: []models.Attachment{}},
		{Name: "KATT-AMR", Type: "Sniper", Game: "MW3", Rank: 1},
	})
}

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	sessions := session.New(time.Hour, 0, nil)
	t.Cleanup(sessions.Close)

	opts.Promo = config.PromoConfig{ImageURL: "https://ads.example/banner.png", LinkURL: "https://ads.example/", Alt: "Sponsored"}
	opts.Footer = config.FooterConfig{Author: "Jaren Burks", LinkURL: "https://example.com/me", IconURL: "/assets/LinkedIn.png"}

	srv := httptest.NewServer(New(testCatalog(), sessions, nil, opts))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func get(t *testing.T, c *http.Client, u string) string {
	t.Helper()
	resp, err := c.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func post(t *testing.T, c *http.Client, u string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := c.PostForm(u, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func state(t *testing.T, c *http.Client, base string) view.Snapshot {
	t.Helper()
	var snap view.Snapshot
	require.NoError(t, json.Unmarshal([]byte(get(t, c, base+"/api/state")), &snap))
	return snap
}

func TestIndex_DefaultPage(t *testing.T) {
	srv := newTestServer(t, Options{})
	c := newClient(t)

	body := get(t, c, srv.URL+"/")

	assert.Contains(t, body, `aria-current="page">Assault Rifle`)
	assert.Contains(t, body, "https://ads.example/banner.png")
	assert.Contains(t, body, "Jaren Burks")
	assert.Contains(t, body, `src="/assets/weapons/xm4.webp"`)
	assert.NotContains(t, body, "KSV")

	// ascending rank
	assert.Less(t, strings.Index(body, "XM4"), strings.Index(body, "MCW"))
}

func TestIndex_SetsSessionCookie(t *testing.T) {
	srv := newTestServer(t, Options{CookieName: "sid"})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()

	var found bool
	for _, ck := range resp.Cookies() {
		if ck.Name == "sid" {
			found = true
			assert.True(t, ck.HttpOnly)
			assert.NotEmpty(t, ck.Value)
		}
	}
	assert.True(t, found)
}

func TestSelectCategory(t *testing.T) {
	srv := newTestServer(t, Options{})
	c := newClient(t)

	resp, body := post(t, c, srv.URL+"/category", url.Values{"category": {"smg"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/", resp.Request.URL.Path, "form posts redirect back to the page")

	assert.Contains(t, body, `aria-current="page">SMG`)
	assert.Less(t, strings.Index(body, "Jackal PDW"), strings.Index(body, "KSV"))
	assert.NotContains(t, body, "XM4")

	assert.Equal(t, models.SMG, state(t, c, srv.URL).Category)
}

func TestSelectCategory_Unknown(t *testing.T) {
	srv := newTestServer(t, Options{})
	c := newClient(t)

	resp, _ := post(t, c, srv.URL+"/category", url.Values{"category": {"Pistol"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.DefaultCategory, state(t, c, srv.URL).Category)
}

func TestToggle(t *testing.T) {
	srv := newTestServer(t, Options{})
	c := newClient(t)

	_, body := post(t, c, srv.URL+"/expand/1", nil)
	assert.Contains(t, body, "<li>Optic: VLK 3.0x</li>")
	assert.Contains(t, body, "<li>Grip</li>")
	assert.Equal(t, []int{1}, state(t, c, srv.URL).Expanded)

	_, body = post(t, c, srv.URL+"/expand/1", nil)
	assert.NotContains(t, body, "Optic: VLK 3.0x")
	assert.Empty(t, state(t, c, srv.URL).Expanded)
}

func TestToggle_Placeholder(t *testing.T) {
	srv := newTestServer(t, Options{})
	c := newClient(t)

	post(t, c, srv.URL+"/category", url.Values{"category": {"SMG"}})
	_, body := post(t, c, srv.URL+"/expand/0", nil)
	assert.Contains(t, body, "<li>No attachments available</li>")
}

func TestToggle_BadPosition(t *testing.T) {
	srv := newTestServer(t, Options{})
	c := newClient(t)

	for _, pos := range []string{"2", "-1", "x"} {
		resp, _ := post(t, c, srv.URL+"/expand/"+pos, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "pos %s", pos)
	}
	assert.Empty(t, state(t, c, srv.URL).Expanded)
}

func TestExpansion_ReinterpretedAcrossCategories(t *testing.T) {
	srv := newTestServer(t, Options{})
	c := newClient(t)

	post(t, c, srv.URL+"/category", url.Values{"category": {"SMG"}})
	post(t, c, srv.URL+"/expand/1", nil)
	post(t, c, srv.URL+"/category", url.Values{"category": {"Sniper"}})
	_, body := post(t, c, srv.URL+"/category", url.Values{"category": {"Assault Rifle"}})

	// position 1 is MCW in the assault rifle list
	assert.Contains(t, body, "Optic: VLK 3.0x")
	assert.Contains(t, body, `id="card-1"`)
}

func TestDismissPromo(t *testing.T) {
	srv := newTestServer(t, Options{})
	c := newClient(t)

	_, body := post(t, c, srv.URL+"/promo/dismiss", nil)
	assert.NotContains(t, body, `id="promo"`)

	post(t, c, srv.URL+"/category", url.Values{"category": {"SMG"}})
	_, body = post(t, c, srv.URL+"/expand/0", nil)
	assert.NotContains(t, body, `id="promo"`)
	assert.False(t, state(t, c, srv.URL).PromoVisible)
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t, Options{})
	a, b := newClient(t), newClient(t)

	post(t, a, srv.URL+"/promo/dismiss", nil)
	post(t, a, srv.URL+"/category", url.Values{"category": {"Sniper"}})

	assert.Contains(t, get(t, b, srv.URL+"/"), `id="promo"`)
	assert.Equal(t, models.DefaultCategory, state(t, b, srv.URL).Category)
	assert.Equal(t, models.Sniper, state(t, a, srv.URL).Category)
}

func TestActions_JSON(t *testing.T) {
	srv := newTestServer(t, Options{})
	c := newClient(t)

	req, err := http.NewRequest("POST", srv.URL+"/category", strings.NewReader("category=Sniper"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap view.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, models.Sniper, snap.Category)
	assert.True(t, snap.PromoVisible)
}

func TestGetWeapons(t *testing.T) {
	srv := newTestServer(t, Options{})
	c := newClient(t)

	var body struct {
		Category   string          `json:"category"`
		Weapons    []models.Weapon `json:"weapons"`
		TotalCount int             `json:"total_count"`
	}

	require.NoError(t, json.Unmarshal([]byte(get(t, c, srv.URL+"/api/weapons?category=smg")), &body))
	assert.Equal(t, models.SMG, body.Category)
	assert.Equal(t, 2, body.TotalCount)
	require.Len(t, body.Weapons, 2)
	assert.Equal(t, "Jackal PDW", body.Weapons[0].Name)

	require.NoError(t, json.Unmarshal([]byte(get(t, c, srv.URL+"/api/weapons")), &body))
	assert.Equal(t, models.DefaultCategory, body.Category)
	assert.Equal(t, 2, body.TotalCount)

	require.NoError(t, json.Unmarshal([]byte(get(t, c, srv.URL+"/api/weapons?category=Pistol")), &body))
	assert.Equal(t, 0, body.TotalCount)
	assert.Empty(t, body.Weapons)
}

func TestGetCategories(t *testing.T) {
	srv := newTestServer(t, Options{})

	var counts []models.CategoryCount
	require.NoError(t, json.Unmarshal([]byte(get(t, newClient(t), srv.URL+"/api/categories")), &counts))
	require.Len(t, counts, 7)
	assert.Equal(t, models.CategoryCount{Name: "Assault Rifle", Count: 2}, counts[0])
	assert.Equal(t, models.CategoryCount{Name: "SMG", Count: 2}, counts[2])
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Options{})
	assert.JSONEq(t, `{"status":"ok"}`, get(t, newClient(t), srv.URL+"/health"))
}

func TestAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "LinkedIn.png"), []byte("png"), 0o644))

	srv := newTestServer(t, Options{StaticDir: dir})
	assert.Equal(t, "png", get(t, newClient(t), srv.URL+"/assets/LinkedIn.png"))

	resp, err := http.Get(srv.URL + "/assets/missing.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
