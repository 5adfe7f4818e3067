package overpass

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/disaster-response-advisor/internal/domain"
)

var brooklyn = domain.Geo{Lat: 40.6782, Lon: -73.9442}

func testClient(endpoint string) *Client {
	return NewClient(endpoint, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const parksResponse = `{
  "elements": [
    {"type": "node", "id": 1, "lat": 40.66, "lon": -73.97, "tags": {"leisure": "park", "name": "Prospect Park"}},
    {"type": "way", "id": 2, "center": {"lat": 40.67, "lon": -73.96}, "tags": {"leisure": "park"}},
    {"type": "relation", "id": 3, "tags": {"leisure": "park", "name": "No Center"}},
    {"type": "node", "id": 4, "lat": 40.1, "lon": -73.1}
  ]
}`

func TestClient_FindPlaces_ParsesElements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		query := r.PostForm.Get("data")
		assert.Contains(t, query, `node["leisure"="park"](around:5000,40.678200,-73.944200);`)
		assert.Contains(t, query, `way["leisure"="common"]`)
		assert.Contains(t, query, `relation["leisure"="park"]`)
		assert.Contains(t, query, "out center;")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(parksResponse))
	}))
	defer srv.Close()

	places, err := testClient(srv.URL).FindPlaces(context.Background(), brooklyn, 5000, domain.CategoryOpenSpace)
	require.NoError(t, err)

	require.Len(t, places, 3, "untagged elements are skipped")
	assert.Equal(t, domain.Place{Name: "Prospect Park", Tag: "park", Position: &domain.Geo{Lat: 40.66, Lon: -73.97}}, places[0])
	assert.Equal(t, domain.Place{Name: "", Tag: "park", Position: &domain.Geo{Lat: 40.67, Lon: -73.96}}, places[1])
	assert.Equal(t, "No Center", places[2].Name)
	assert.Nil(t, places[2].Position)
}

func TestClient_FindPlaces_Selectors(t *testing.T) {
	for category, filters := range selectors {
		t.Run(string(category), func(t *testing.T) {
			query := buildQuery(brooklyn, 100, filters)
			for _, f := range filters {
				assert.Contains(t, query, "node"+f)
				assert.Contains(t, query, "way"+f)
				assert.Contains(t, query, "relation"+f)
			}
		})
	}
}

func TestClient_FindPlaces_UnsupportedCategory(t *testing.T) {
	_, err := testClient("http://unused").FindPlaces(context.Background(), brooklyn, 100, domain.CategoryUnknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported category")
}

func TestClient_FindPlaces_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
		_, _ = w.Write([]byte("runtime error: Query timed out"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FindPlaces(context.Background(), brooklyn, 5000, domain.CategoryHospital)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "504")
}

func TestClient_FindPlaces_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := testClient(srv.URL).FindPlaces(ctx, brooklyn, 5000, domain.CategoryHospital)
	require.Error(t, err)
}
