package models

import "github.com/m04kA/SMC-CleaningBooking/internal/domain"

// ServiceResponse описание пакета услуг
type ServiceResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BasePrice   float64  `json:"base_price"`
	Features    []string `json:"features"`
}

// ServicesResponse каталог услуг, ключ: код типа услуги
type ServicesResponse struct {
	Services map[string]ServiceResponse `json:"services"`
}

// CleanerResponse карточка клинера
type CleanerResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Rating          float64  `json:"rating"`
	ExperienceYears int      `json:"experience_years"`
	Specialties     []string `json:"specialties"`
	AvatarURL       string   `json:"avatar_url"`
	Available       bool     `json:"available"`
}

// CleanersResponse список клинеров
type CleanersResponse struct {
	Cleaners []CleanerResponse `json:"cleaners"`
}

// AreasResponse список обслуживаемых городов
type AreasResponse struct {
	Areas []string `json:"areas"`
}

// FromDomainPackages конвертирует пакеты услуг в DTO
func FromDomainPackages(packages []domain.ServicePackage) *ServicesResponse {
	resp := &ServicesResponse{Services: make(map[string]ServiceResponse, len(packages))}
	for _, p := range packages {
		features := p.Features
		if features == nil {
			features = []string{}
		}
		resp.Services[p.Kind.Key()] = ServiceResponse{
			Name:        p.Name,
			Description: p.Description,
			BasePrice:   p.BasePrice,
			Features:    features,
		}
	}
	return resp
}

// FromDomainCleaners конвертирует список клинеров в DTO
func FromDomainCleaners(cleaners []*domain.Cleaner) *CleanersResponse {
	resp := &CleanersResponse{Cleaners: make([]CleanerResponse, 0, len(cleaners))}
	for _, c := range cleaners {
		specialties := c.Specialties
		if specialties == nil {
			specialties = []string{}
		}
		resp.Cleaners = append(resp.Cleaners, CleanerResponse{
			ID:              c.ID,
			Name:            c.Name,
			Rating:          c.Rating,
			ExperienceYears: c.ExperienceYears,
			Specialties:     specialties,
			AvatarURL:       c.AvatarURL,
			Available:       c.Available,
		})
	}
	return resp
}
