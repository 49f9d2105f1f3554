// Package banner serves ad slots as data. Exactly one provider is active,
// chosen by configuration.
package banner

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownSlot     = errors.New("unknown banner slot")
	ErrUnknownProvider = errors.New("unknown banner provider")
)

// Banner is everything the client needs to render one slot.
type Banner struct {
	Slot     string `json:"slot"`
	Provider string `json:"provider"`
	Label    string `json:"label,omitempty"`
	Title    string `json:"title,omitempty"`
	Body     string `json:"body,omitempty"`
	CTA      string `json:"cta,omitempty"`
	Link     string `json:"link,omitempty"`
	Icon     string `json:"icon,omitempty"`
	UnitID   string `json:"unitId,omitempty"`
	ClientID string `json:"clientId,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

type Provider interface {
	Banner(ctx context.Context, slot string) (Banner, error)
}

type Promo struct {
	Label string `yaml:"label"`
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	CTA   string `yaml:"cta"`
	Link  string `yaml:"link"`
	Icon  string `yaml:"icon"`
}

type Unit struct {
	UnitID string `yaml:"unit"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Catalog is the YAML file listing promo copy and ad unit ids per slot.
type Catalog struct {
	Static  map[string]Promo `yaml:"static"`
	AdFit   map[string]Unit  `yaml:"adfit"`
	AdSense struct {
		Client string          `yaml:"client"`
		Slots  map[string]Unit `yaml:"slots"`
	} `yaml:"adsense"`
}

// DefaultCatalog holds the built-in promo shown in the nearby list.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Static: map[string]Promo{
			"list": {
				Label: "광고",
				Title: "카페 사장님들을 위한 특별한 혜택!",
				Body:  "우리 카페도 리스트에 등록하고 더 많은 고객을 만나보세요",
				CTA:   "지금 등록하기",
				Icon:  "☕",
			},
		},
	}
}

// LoadCatalog reads path, or returns the default catalog when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read banner catalog: %w", err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse banner catalog: %w", err)
	}
	return &c, nil
}

// New returns the provider registered under name.
func New(name string, catalog *Catalog) (Provider, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	switch name {
	case "", "static":
		return staticProvider{promos: catalog.Static}, nil
	case "adfit":
		return adFitProvider{units: catalog.AdFit}, nil
	case "adsense":
		return adSenseProvider{client: catalog.AdSense.Client, units: catalog.AdSense.Slots}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
}

type staticProvider struct {
	promos map[string]Promo
}

func (p staticProvider) Banner(_ context.Context, slot string) (Banner, error) {
	promo, ok := p.promos[slot]
	if !ok {
		return Banner{}, ErrUnknownSlot
	}
	return Banner{
		Slot:     slot,
		Provider: "static",
		Label:    promo.Label,
		Title:    promo.Title,
		Body:     promo.Body,
		CTA:      promo.CTA,
		Link:     promo.Link,
		Icon:     promo.Icon,
	}, nil
}

// adFitProvider serves Kakao AdFit units.
type adFitProvider struct {
	units map[string]Unit
}

func (p adFitProvider) Banner(_ context.Context, slot string) (Banner, error) {
	unit, ok := p.units[slot]
	if !ok || unit.UnitID == "" {
		return Banner{}, ErrUnknownSlot
	}
	return Banner{
		Slot:     slot,
		Provider: "adfit",
		UnitID:   unit.UnitID,
		Width:    unit.Width,
		Height:   unit.Height,
	}, nil
}

// adSenseProvider serves Google AdSense units under one publisher client.
type adSenseProvider struct {
	client string
	units  map[string]Unit
}

func (p adSenseProvider) Banner(_ context.Context, slot string) (Banner, error) {
	unit, ok := p.units[slot]
	if !ok || unit.UnitID == "" || p.client == "" {
		return Banner{}, ErrUnknownSlot
	}
	return Banner{
		Slot:     slot,
		Provider: "adsense",
		UnitID:   unit.UnitID,
		ClientID: p.client,
		Width:    unit.Width,
		Height:   unit.Height,
	}, nil
}
