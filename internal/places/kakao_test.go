package places

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", 2*time.Second)
}

func TestSearchCategorySendsQueryAndParsesDocuments(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/local/search/category.json" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "KakaoAK test-key" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		q := r.URL.Query()
		if q.Get("category_group_code") != "CE7" || q.Get("sort") != "distance" || q.Get("radius") != "1500" || q.Get("size") != "15" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("x") != "127.0269" || q.Get("y") != "37.5017" {
			t.Fatalf("unexpected coordinates %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"documents":[
			{"id":"1","place_name":" Cafe A ","address_name":"서울 강남구 역삼동 1","road_address_name":"서울 강남구 테헤란로 1","x":"127.03","y":"37.50","distance":"120","place_url":"http://place/1"},
			{"id":"2","place_name":"Cafe B","address_name":"서울 강남구 역삼동 2","road_address_name":"","x":"127.02","y":"37.49","distance":"300"},
			{"id":"3","place_name":"Broken","x":"not-a-number","y":"37.49"}
		]}`))
	})

	places, err := client.SearchCategory(context.Background(), CategoryQuery{Lat: 37.5017, Lng: 127.0269, Radius: 1500, Size: 15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(places))
	}
	if places[0].Name != "Cafe A" || places[0].Address != "서울 강남구 테헤란로 1" {
		t.Fatalf("unexpected first place %+v", places[0])
	}
	if places[1].Address != "서울 강남구 역삼동 2" {
		t.Fatalf("expected lot address fallback, got %q", places[1].Address)
	}
	if places[0].Distance != 120 || places[0].PlaceURL != "http://place/1" {
		t.Fatalf("unexpected distance or url %+v", places[0])
	}
}

func TestSearchKeywordRequiresQuery(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "key", time.Second)
	if _, err := client.SearchKeyword(context.Background(), KeywordQuery{Query: "  "}); err == nil {
		t.Fatalf("expected error for empty query")
	}
}

func TestSearchKeywordNon2xxReturnsAPIError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorType":"AccessDeniedError"}`))
	})

	_, err := client.SearchKeyword(context.Background(), KeywordQuery{Query: "스타벅스"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", apiErr.Status)
	}
}

func TestSearchKeywordMalformedJSON(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"documents":`))
	})

	_, err := client.SearchKeyword(context.Background(), KeywordQuery{Query: "cafe"})
	if err == nil {
		t.Fatalf("expected decode error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("decode failure should not be an APIError")
	}
}

func TestReverseGeocode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "structured region",
			body: `{"documents":[{"address":{"address_name":"서울 강남구 역삼동 1","region_2depth_name":"강남구","region_3depth_name":"역삼동"}}]}`,
			want: "강남구 역삼동",
		},
		{
			name: "address name fallback",
			body: `{"documents":[{"address":{"address_name":"서울 서초구 서초동 1316"}}]}`,
			want: "서초구 서초동",
		},
		{
			name: "road address fallback",
			body: `{"documents":[{"address":null,"road_address":{"address_name":"세종 한누리대로"}}]}`,
			want: "세종 한누리대로",
		},
		{
			name: "no documents",
			body: `{"documents":[]}`,
			want: "내 위치",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v2/local/geo/coord2address.json" {
					t.Fatalf("unexpected path %s", r.URL.Path)
				}
				_, _ = w.Write([]byte(tt.body))
			})
			got, err := client.ReverseGeocode(context.Background(), 37.5, 127.0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
