package wizard

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
)

// CatalogPart независимо загружаемая часть каталога
type CatalogPart string

const (
	PartServices CatalogPart = "services"
	PartCleaners CatalogPart = "cleaners"
	PartAreas    CatalogPart = "areas"
)

var allParts = []CatalogPart{PartServices, PartCleaners, PartAreas}

// Catalog загруженные списки выбора
// Часть, которую не удалось загрузить, пуста, а ошибка лежит в Failed
type Catalog struct {
	Services []domain.ServiceCatalogEntry
	Cleaners []domain.Cleaner
	Areas    []string
	Failed   map[CatalogPart]error
}

// Service ищет услугу по ключу
func (c *Catalog) Service(key string) (domain.ServiceCatalogEntry, bool) {
	for _, s := range c.Services {
		if s.Key == key {
			return s, true
		}
	}
	return domain.ServiceCatalogEntry{}, false
}

// Cleaner ищет исполнителя по ID
func (c *Catalog) Cleaner(id string) (domain.Cleaner, bool) {
	for _, cl := range c.Cleaners {
		if cl.ID == id {
			return cl, true
		}
	}
	return domain.Cleaner{}, false
}

// HasArea город есть в загруженном списке
func (c *Catalog) HasArea(area string) bool {
	for _, a := range c.Areas {
		if a == area {
			return true
		}
	}
	return false
}

// FailedParts части, которые не загрузились, в фиксированном порядке
func (c *Catalog) FailedParts() []CatalogPart {
	parts := make([]CatalogPart, 0, len(c.Failed))
	for _, p := range allParts {
		if _, ok := c.Failed[p]; ok {
			parts = append(parts, p)
		}
	}
	return parts
}

func (c *Catalog) clone() *Catalog {
	out := &Catalog{
		Services: append([]domain.ServiceCatalogEntry{}, c.Services...),
		Cleaners: append([]domain.Cleaner{}, c.Cleaners...),
		Areas:    append([]string{}, c.Areas...),
		Failed:   make(map[CatalogPart]error, len(c.Failed)),
	}
	for p, err := range c.Failed {
		out.Failed[p] = err
	}
	return out
}

// LoadCatalog загружает три части каталога параллельно
// Ошибка одной части логируется и заменяется пустым списком, остальные части не ждут и не отменяются
func LoadCatalog(ctx context.Context, api CatalogAPI, log Logger) *Catalog {
	catalog := &Catalog{
		Services: []domain.ServiceCatalogEntry{},
		Cleaners: []domain.Cleaner{},
		Areas:    []string{},
		Failed:   map[CatalogPart]error{},
	}
	loadParts(ctx, api, log, catalog, allParts)
	return catalog
}

func loadParts(ctx context.Context, api CatalogAPI, log Logger, catalog *Catalog, parts []CatalogPart) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		services []domain.ServiceCatalogEntry
		cleaners []domain.Cleaner
		areas    []string
	)

	fail := func(part CatalogPart, err error) {
		log.Error("LoadCatalog: failed to load %s: %v", part, err)
		mu.Lock()
		catalog.Failed[part] = err
		mu.Unlock()
	}

	for _, part := range parts {
		wg.Add(1)
		go func(part CatalogPart) {
			defer wg.Done()

			switch part {
			case PartServices:
				raw, err := api.GetServices(ctx)
				if err != nil {
					fail(part, err)
					return
				}
				services = servicesFromResponse(raw, log)
			case PartCleaners:
				raw, err := api.GetCleaners(ctx)
				if err != nil {
					fail(part, err)
					return
				}
				cleaners = cleanersFromResponse(raw)
			case PartAreas:
				raw, err := api.GetServiceAreas(ctx)
				if err != nil {
					fail(part, err)
					return
				}
				areas = append([]string{}, raw...)
			}
		}(part)
	}
	wg.Wait()

	// Успешно загруженные части заменяют старые значения
	if services != nil {
		catalog.Services = services
		delete(catalog.Failed, PartServices)
	}
	if cleaners != nil {
		catalog.Cleaners = cleaners
		delete(catalog.Failed, PartCleaners)
	}
	if areas != nil {
		catalog.Areas = areas
		delete(catalog.Failed, PartAreas)
	}
}

// servicesFromResponse известные услуги идут в порядке каталога, неизвестные ключи после них по алфавиту
func servicesFromResponse(raw map[string]backend.ServiceEntry, log Logger) []domain.ServiceCatalogEntry {
	entries := make([]domain.ServiceCatalogEntry, 0, len(raw))
	for key, s := range raw {
		kind := domain.ParseServiceKind(key)
		if !kind.IsKnown() {
			log.Warn("LoadCatalog: unknown service kind %q, keeping it as unknown", key)
		}
		entries = append(entries, domain.ServiceCatalogEntry{
			Key:         key,
			Kind:        kind,
			Name:        s.Name,
			Description: s.Description,
			BasePrice:   s.BasePrice,
			Features:    append([]string{}, s.Features...),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Kind.IsKnown() != b.Kind.IsKnown() {
			return a.Kind.IsKnown()
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Key < b.Key
	})

	return entries
}

func cleanersFromResponse(raw []backend.Cleaner) []domain.Cleaner {
	cleaners := make([]domain.Cleaner, 0, len(raw))
	for _, c := range raw {
		cleaners = append(cleaners, domain.Cleaner{
			ID:              c.ID,
			Name:            c.Name,
			Rating:          c.Rating,
			ExperienceYears: c.ExperienceYears,
			Specialties:     append([]string{}, c.Specialties...),
			AvatarURL:       c.AvatarURL,
			Available:       c.Available,
		})
	}
	return cleaners
}
