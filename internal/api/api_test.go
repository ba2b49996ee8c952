package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/popcornroulette/api/internal/config"
	"github.com/popcornroulette/api/internal/database"
	"github.com/popcornroulette/api/internal/models"
	"github.com/popcornroulette/api/internal/repository"
	testhelpers "github.com/popcornroulette/api/internal/testing"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.Set(&config.Config{
		API: config.APIConfig{SecretKey: testSecret, CORSOrigin: "*"},
	})

	db := testhelpers.TestDB(t)
	server := NewServer(repository.NewMovieRepository(db))
	return server, db
}

func request(t *testing.T, server *Server, method, path, apiKey, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if apiKey != "" {
		req.Header.Set("API-Key", apiKey)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func TestServiceInfo(t *testing.T) {
	server, _ := newTestServer(t)

	w := request(t, server, http.MethodGet, "/", "", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body["name"] != "Popcorn Roulette API" {
		t.Errorf("unexpected service name %v", body["name"])
	}
}

func TestHealthCheck(t *testing.T) {
	server, db := newTestServer(t)

	database.Set(db)
	defer database.Set(nil)

	w := request(t, server, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	server, _ := newTestServer(t)

	database.Set(nil)

	w := request(t, server, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestAuth_MissingKey(t *testing.T) {
	server, _ := newTestServer(t)

	w := request(t, server, http.MethodGet, "/movies/roulette", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_WrongKey(t *testing.T) {
	server, _ := newTestServer(t)

	w := request(t, server, http.MethodGet, "/movies/roulette", "wrong-secret", "")
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestAuth_SecretNotConfigured(t *testing.T) {
	server, _ := newTestServer(t)

	config.Set(&config.Config{})
	defer config.Set(&config.Config{API: config.APIConfig{SecretKey: testSecret}})

	w := request(t, server, http.MethodGet, "/movies/roulette", "any-key", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

func TestRoulette(t *testing.T) {
	server, db := newTestServer(t)

	created := testhelpers.CreateMovie(db)

	w := request(t, server, http.MethodGet, "/movies/roulette", testSecret, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var movie models.Movie
	if err := json.Unmarshal(w.Body.Bytes(), &movie); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if movie.Title != created.Title {
		t.Errorf("expected title '%s', got '%s'", created.Title, movie.Title)
	}
}

func TestRoulette_EmptyCatalog(t *testing.T) {
	server, _ := newTestServer(t)

	w := request(t, server, http.MethodGet, "/movies/roulette", testSecret, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for empty catalog, got %d", w.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Error != "the catalog is empty" {
		t.Errorf("expected empty-catalog message, got %q", body.Error)
	}
}

func TestRoulette_NoMatchForFilters(t *testing.T) {
	server, db := newTestServer(t)

	testhelpers.CreateMovie(db, func(m *models.Movie) {
		m.Genres = models.StringList{"Action"}
	})

	w := request(t, server, http.MethodGet, "/movies/roulette?genres=Horror", testSecret, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for filtered miss, got %d", w.Code)
	}

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Error != "no movies found matching your filters" {
		t.Errorf("expected filtered-miss message, got %q", body.Error)
	}
}

func TestRoulette_InvalidGenre(t *testing.T) {
	server, _ := newTestServer(t)

	w := request(t, server, http.MethodGet, "/movies/roulette?genres=Slasher", testSecret, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown genre, got %d", w.Code)
	}
}

func TestRoulette_InvalidAgeRating(t *testing.T) {
	server, _ := newTestServer(t)

	w := request(t, server, http.MethodGet, "/movies/roulette?ageRating=PG-13", testSecret, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown age rating, got %d", w.Code)
	}
}

func TestCountMovies(t *testing.T) {
	server, db := newTestServer(t)

	testhelpers.CreateMovie(db, func(m *models.Movie) {
		m.Genres = models.StringList{"Drama"}
	})
	testhelpers.CreateMovie(db, func(m *models.Movie) {
		m.Genres = models.StringList{"Comedy"}
	})

	w := request(t, server, http.MethodGet, "/movies/available-movies?genres=Drama", testSecret, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body CountResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Total != 1 {
		t.Errorf("expected total 1, got %d", body.Total)
	}
	if len(body.Filters.Genres) != 1 || body.Filters.Genres[0] != "Drama" {
		t.Errorf("expected filters echoed back, got %+v", body.Filters)
	}
}

func TestCountMovies_CommaSeparatedValues(t *testing.T) {
	server, db := newTestServer(t)

	testhelpers.CreateMovie(db, func(m *models.Movie) {
		m.Genres = models.StringList{"Drama"}
	})
	testhelpers.CreateMovie(db, func(m *models.Movie) {
		m.Genres = models.StringList{"Comedy"}
	})
	testhelpers.CreateMovie(db, func(m *models.Movie) {
		m.Genres = models.StringList{"Horror"}
	})

	w := request(t, server, http.MethodGet, "/movies/available-movies?genres=Drama,Comedy", testSecret, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body CountResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Total != 2 {
		t.Errorf("expected total 2, got %d", body.Total)
	}
}

func TestListMovies_Pagination(t *testing.T) {
	server, db := newTestServer(t)

	for i := 0; i < 45; i++ {
		testhelpers.CreateMovie(db)
	}

	w := request(t, server, http.MethodGet, "/movies?page=3&limit=20", testSecret, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body ListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Pagination.Total != 45 {
		t.Errorf("expected total 45, got %d", body.Pagination.Total)
	}
	if body.Pagination.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", body.Pagination.TotalPages)
	}
	if len(body.Movies) != 5 {
		t.Errorf("expected 5 movies on page 3, got %d", len(body.Movies))
	}
}

func TestListMovies_Defaults(t *testing.T) {
	server, db := newTestServer(t)

	for i := 0; i < 25; i++ {
		testhelpers.CreateMovie(db)
	}

	w := request(t, server, http.MethodGet, "/movies", testSecret, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body ListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Pagination.Page != 1 || body.Pagination.Limit != 20 {
		t.Errorf("expected default page 1 limit 20, got %+v", body.Pagination)
	}
	if len(body.Movies) != 20 {
		t.Errorf("expected 20 movies, got %d", len(body.Movies))
	}
}

func TestListMovies_InvalidPage(t *testing.T) {
	server, _ := newTestServer(t)

	w := request(t, server, http.MethodGet, "/movies?page=0", testSecret, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for page=0, got %d", w.Code)
	}

	w = request(t, server, http.MethodGet, "/movies?limit=abc", testSecret, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric limit, got %d", w.Code)
	}
}

func TestGetMovie(t *testing.T) {
	server, db := newTestServer(t)

	created := testhelpers.CreateMovie(db)

	w := request(t, server, http.MethodGet, "/movies/1", testSecret, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var movie models.Movie
	if err := json.Unmarshal(w.Body.Bytes(), &movie); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if movie.Title != created.Title {
		t.Errorf("expected title '%s', got '%s'", created.Title, movie.Title)
	}

	w = request(t, server, http.MethodGet, "/movies/9999", testSecret, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing movie, got %d", w.Code)
	}

	w = request(t, server, http.MethodGet, "/movies/abc", testSecret, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", w.Code)
	}
}

func TestUpdateMovie(t *testing.T) {
	server, db := newTestServer(t)

	testhelpers.CreateMovie(db)

	w := request(t, server, http.MethodPatch, "/movies/1", testSecret, `{"age_rating": "18+"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var movie models.Movie
	if err := json.Unmarshal(w.Body.Bytes(), &movie); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if string(movie.AgeRating) != "18+" {
		t.Errorf("expected age rating 18+, got %s", movie.AgeRating)
	}
}

func TestUpdateMovie_InvalidVocabulary(t *testing.T) {
	server, db := newTestServer(t)

	testhelpers.CreateMovie(db)

	w := request(t, server, http.MethodPatch, "/movies/1", testSecret, `{"age_rating": "PG-13"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid age rating, got %d", w.Code)
	}

	w = request(t, server, http.MethodPatch, "/movies/1", testSecret, `{"countries": ["Atlantis"]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid country, got %d", w.Code)
	}
}

func TestUpdateMovie_EmptyBody(t *testing.T) {
	server, db := newTestServer(t)

	testhelpers.CreateMovie(db)

	w := request(t, server, http.MethodPatch, "/movies/1", testSecret, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty update, got %d", w.Code)
	}
}

func TestDeleteMovie(t *testing.T) {
	server, db := newTestServer(t)

	testhelpers.CreateMovie(db)

	w := request(t, server, http.MethodDelete, "/movies/1", testSecret, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	w = request(t, server, http.MethodDelete, "/movies/1", testSecret, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for already deleted movie, got %d", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	server, _ := newTestServer(t)

	w := request(t, server, http.MethodGet, "/", "", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header to be set")
	}
}
