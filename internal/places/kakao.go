package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CafeCategory is the Kakao category group code for cafes.
const CafeCategory = "CE7"

// Locality labels used when the precise district is not known.
const (
	DefaultLocality = "내 위치"
	UnknownLocality = "위치 정보 없음"
)

// Place is a single live search hit.
type Place struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Distance float64 `json:"distance"`
	PlaceURL string  `json:"placeUrl"`
}

type KeywordQuery struct {
	Query  string
	Lat    float64
	Lng    float64
	Radius int
	Size   int
}

type CategoryQuery struct {
	Category string
	Lat      float64
	Lng      float64
	Radius   int
	Size     int
}

// Searcher is the live places capability used by the aggregation routine.
type Searcher interface {
	SearchKeyword(ctx context.Context, q KeywordQuery) ([]Place, error)
	SearchCategory(ctx context.Context, q CategoryQuery) ([]Place, error)
}

// Geocoder turns coordinates into a human-readable locality.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// APIError is returned for any non-2xx answer from the Kakao API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kakao api returned %d: %s", e.Status, e.Body)
}

// Client talks to the Kakao Local REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://dapi.kakao.com"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type placeDocument struct {
	ID              string `json:"id"`
	PlaceName       string `json:"place_name"`
	AddressName     string `json:"address_name"`
	RoadAddressName string `json:"road_address_name"`
	X               string `json:"x"`
	Y               string `json:"y"`
	Distance        string `json:"distance"`
	PlaceURL        string `json:"place_url"`
}

type placeResponse struct {
	Documents []placeDocument `json:"documents"`
}

func (c *Client) SearchKeyword(ctx context.Context, q KeywordQuery) ([]Place, error) {
	if strings.TrimSpace(q.Query) == "" {
		return nil, fmt.Errorf("keyword query is required")
	}
	params := url.Values{}
	params.Set("query", q.Query)
	setCoordinateParams(params, q.Lat, q.Lng, q.Radius, q.Size)

	var resp placeResponse
	if err := c.get(ctx, "/v2/local/search/keyword.json", params, &resp); err != nil {
		return nil, err
	}
	return toPlaces(resp.Documents), nil
}

func (c *Client) SearchCategory(ctx context.Context, q CategoryQuery) ([]Place, error) {
	category := q.Category
	if category == "" {
		category = CafeCategory
	}
	params := url.Values{}
	params.Set("category_group_code", category)
	setCoordinateParams(params, q.Lat, q.Lng, q.Radius, q.Size)

	var resp placeResponse
	if err := c.get(ctx, "/v2/local/search/category.json", params, &resp); err != nil {
		return nil, err
	}
	return toPlaces(resp.Documents), nil
}

type regionAddress struct {
	AddressName string `json:"address_name"`
	Region2     string `json:"region_2depth_name"`
	Region3     string `json:"region_3depth_name"`
}

type coordResponse struct {
	Documents []struct {
		Address     *regionAddress `json:"address"`
		RoadAddress *regionAddress `json:"road_address"`
	} `json:"documents"`
}

// ReverseGeocode returns "<district> <neighbourhood>" for the coordinate.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	params := url.Values{}
	params.Set("x", formatCoord(lng))
	params.Set("y", formatCoord(lat))

	var resp coordResponse
	if err := c.get(ctx, "/v2/local/geo/coord2address.json", params, &resp); err != nil {
		return "", err
	}
	if len(resp.Documents) == 0 {
		return DefaultLocality, nil
	}

	doc := resp.Documents[0]
	if doc.Address != nil && doc.Address.Region2 != "" && doc.Address.Region3 != "" {
		return doc.Address.Region2 + " " + doc.Address.Region3, nil
	}

	full := ""
	if doc.Address != nil {
		full = doc.Address.AddressName
	}
	if full == "" && doc.RoadAddress != nil {
		full = doc.RoadAddress.AddressName
	}
	return LocalityFromAddress(full), nil
}

// LocalityFromAddress extracts district and neighbourhood from a full
// address string when structured fields are missing.
func LocalityFromAddress(full string) string {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return DefaultLocality
	}
	if len(parts) >= 3 {
		return parts[1] + " " + parts[2]
	}
	return strings.Join(parts, " ")
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("kakao request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read kakao response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[PLACES] [ERROR] %s returned %d", path, resp.StatusCode)
		return &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode kakao response: %w", err)
	}
	return nil
}

func setCoordinateParams(params url.Values, lat, lng float64, radius, size int) {
	if lat != 0 || lng != 0 {
		params.Set("x", formatCoord(lng))
		params.Set("y", formatCoord(lat))
		params.Set("sort", "distance")
	}
	if radius > 0 {
		params.Set("radius", strconv.Itoa(radius))
	}
	if size > 0 {
		params.Set("size", strconv.Itoa(size))
	}
}

func toPlaces(docs []placeDocument) []Place {
	out := make([]Place, 0, len(docs))
	for _, doc := range docs {
		lat, errLat := strconv.ParseFloat(doc.Y, 64)
		lng, errLng := strconv.ParseFloat(doc.X, 64)
		if errLat != nil || errLng != nil {
			continue
		}
		address := doc.RoadAddressName
		if address == "" {
			address = doc.AddressName
		}
		distance, _ := strconv.ParseFloat(doc.Distance, 64)
		out = append(out, Place{
			ID:       doc.ID,
			Name:     strings.TrimSpace(doc.PlaceName),
			Address:  strings.TrimSpace(address),
			Lat:      lat,
			Lng:      lng,
			Distance: distance,
			PlaceURL: doc.PlaceURL,
		})
	}
	return out
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
