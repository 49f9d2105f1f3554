package service

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"jakca/internal/geo"
	"jakca/internal/metrics"
	"jakca/internal/models"
	"jakca/internal/places"
)

const (
	SearchRadiusMeters    = 1500
	FranchiseRadiusMeters = 1000
	MinRepositoryRating   = 3
	RepositoryLimit       = 4
	MinResults            = 4
	LiveSearchSize        = 15
	FranchisePicks        = 3
)

// DefaultBrands are the chains used to pad sparse results.
var DefaultBrands = []string{"스타벅스", "투썸플레이스", "할리스", "이디야", "폴바셋", "엔제리너스", "스터디"}

// Aggregator builds the nearby cafe list from the repository and the live
// places API.
type Aggregator struct {
	cafes   CafeRepository
	places  places.Searcher
	metrics *metrics.Metrics
	brands  []string
	shuffle func(n int, swap func(i, j int))
}

func NewAggregator(cafes CafeRepository, searcher places.Searcher, m *metrics.Metrics) *Aggregator {
	return &Aggregator{
		cafes:   cafes,
		places:  searcher,
		metrics: m,
		brands:  DefaultBrands,
		shuffle: rand.Shuffle,
	}
}

// Nearby returns repository cafes within SearchRadiusMeters first, then
// franchise padding, then shuffled live results. Live entries that match any
// stored cafe are dropped whatever that cafe's rating is.
func (a *Aggregator) Nearby(ctx context.Context, lat, lng *float64) ([]models.Cafe, error) {
	if lat == nil || lng == nil {
		return nil, ErrMissingCoordinates
	}
	originLat, originLng := *lat, *lng

	var (
		boxed    []models.Cafe
		existing []models.CafeSummary
		live     []places.Place
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := a.cafes.CafesInBox(gctx, geo.BoxAround(originLat, originLng, SearchRadiusMeters), MinRepositoryRating, RepositoryLimit)
		if err != nil {
			return fmt.Errorf("%w: repository query: %w", ErrUpstream, err)
		}
		boxed = rows
		return nil
	})
	g.Go(func() error {
		rows, err := a.cafes.CafeKeys(gctx)
		if err != nil {
			return fmt.Errorf("%w: existing cafes query: %w", ErrUpstream, err)
		}
		existing = rows
		return nil
	})
	g.Go(func() error {
		rows, err := a.places.SearchCategory(gctx, places.CategoryQuery{
			Category: places.CafeCategory,
			Lat:      originLat,
			Lng:      originLng,
			Radius:   SearchRadiusMeters,
			Size:     LiveSearchSize,
		})
		if err != nil {
			return fmt.Errorf("%w: live search: %w", ErrUpstream, err)
		}
		live = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Println("[CAFE] [ERROR] nearby aggregation failed:", err)
		return nil, err
	}

	repository := make([]models.Cafe, 0, len(boxed))
	for _, cafe := range boxed {
		if !cafe.HasCoordinates() {
			continue
		}
		if geo.Distance(originLat, originLng, *cafe.Latitude, *cafe.Longitude) > SearchRadiusMeters {
			continue
		}
		repository = append(repository, cafe)
	}

	repoKeys := make(map[models.CafeKey]struct{}, len(repository))
	for _, cafe := range repository {
		repoKeys[cafe.Key()] = struct{}{}
	}

	var franchise []models.Cafe
	var stage errgroup.Group
	for i := range repository {
		cafe := &repository[i]
		stage.Go(func() error {
			a.enrich(ctx, cafe, originLat, originLng)
			return nil
		})
	}
	if need := MinResults - len(repository); need > 0 {
		brands := a.pickBrands()
		stage.Go(func() error {
			franchise = a.franchisePadding(ctx, brands, repoKeys, originLat, originLng, need)
			return nil
		})
	}
	_ = stage.Wait()

	existingKeys := make(map[models.CafeKey]struct{}, len(existing))
	for _, row := range existing {
		existingKeys[models.NewCafeKey(row.Name, row.Address)] = struct{}{}
	}

	a.shuffle(len(live), func(i, j int) { live[i], live[j] = live[j], live[i] })
	liveCafes := make([]models.Cafe, 0, len(live))
	for _, place := range live {
		cafe := cafeFromPlace(place, models.SourceLive)
		if _, ok := existingKeys[cafe.Key()]; ok {
			continue
		}
		liveCafes = append(liveCafes, cafe)
	}

	for i := range repository {
		repository[i].FromRepository = true
		repository[i].Source = models.SourceRepository
	}

	result := dedupeByKey(repository, franchise, liveCafes)
	for i := range result {
		if result[i].HasCoordinates() {
			result[i].Distance = geo.Distance(originLat, originLng, *result[i].Latitude, *result[i].Longitude) / 1000
		}
	}

	a.record(result)
	return result, nil
}

// enrich fills coordinates the stored row lacks from the best live match.
// A failed lookup leaves the cafe as it was.
func (a *Aggregator) enrich(ctx context.Context, cafe *models.Cafe, lat, lng float64) {
	matches, err := a.places.SearchKeyword(ctx, places.KeywordQuery{
		Query:  cafe.Name,
		Lat:    lat,
		Lng:    lng,
		Radius: SearchRadiusMeters,
		Size:   1,
	})
	if err != nil {
		log.Printf("[CAFE] [WARN] enrichment for %q failed: %v", cafe.Name, err)
		return
	}
	if len(matches) == 0 {
		return
	}
	best := matches[0]
	if cafe.Latitude == nil {
		v := best.Lat
		cafe.Latitude = &v
	}
	if cafe.Longitude == nil {
		v := best.Lng
		cafe.Longitude = &v
	}
	if cafe.PlaceURL == "" {
		cafe.PlaceURL = best.PlaceURL
	}
}

func (a *Aggregator) pickBrands() []string {
	brands := make([]string, len(a.brands))
	copy(brands, a.brands)
	a.shuffle(len(brands), func(i, j int) { brands[i], brands[j] = brands[j], brands[i] })
	if len(brands) > FranchisePicks {
		brands = brands[:FranchisePicks]
	}
	return brands
}

// franchisePadding searches each brand once and keeps its first match that
// is not already in the repository subset. A brand with no usable match or
// a failed search contributes nothing.
func (a *Aggregator) franchisePadding(ctx context.Context, brands []string, repoKeys map[models.CafeKey]struct{}, lat, lng float64, need int) []models.Cafe {
	picks := make([]*models.Cafe, len(brands))
	var g errgroup.Group
	for i, brand := range brands {
		g.Go(func() error {
			matches, err := a.places.SearchKeyword(ctx, places.KeywordQuery{
				Query:  brand,
				Lat:    lat,
				Lng:    lng,
				Radius: FranchiseRadiusMeters,
			})
			if err != nil {
				log.Printf("[CAFE] [WARN] franchise search for %s failed: %v", brand, err)
				return nil
			}
			for _, place := range matches {
				cafe := cafeFromPlace(place, models.SourceFranchise)
				if _, ok := repoKeys[cafe.Key()]; ok {
					continue
				}
				picks[i] = &cafe
				break
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.Cafe, 0, need)
	for _, pick := range picks {
		if pick == nil {
			continue
		}
		if len(out) == need {
			break
		}
		out = append(out, *pick)
	}
	return out
}

func (a *Aggregator) record(result []models.Cafe) {
	counts := map[string]int{}
	for _, cafe := range result {
		counts[cafe.Source]++
	}
	for source, n := range counts {
		a.metrics.CafeResult(source, n)
	}
}

func cafeFromPlace(place places.Place, source string) models.Cafe {
	lat, lng := place.Lat, place.Lng
	return models.Cafe{
		ID:        models.CafeID(place.Name, place.Address),
		Name:      place.Name,
		Address:   place.Address,
		Latitude:  &lat,
		Longitude: &lng,
		Images:    models.StringList{},
		Comments:  models.StringList{},
		Source:    source,
		PlaceURL:  place.PlaceURL,
	}
}

// dedupeByKey concatenates the groups keeping the first cafe per key.
func dedupeByKey(groups ...[]models.Cafe) []models.Cafe {
	seen := map[models.CafeKey]struct{}{}
	out := []models.Cafe{}
	for _, group := range groups {
		for _, cafe := range group {
			key := cafe.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, cafe)
		}
	}
	return out
}
