package domain

// Cleaner исполнитель уборки
type Cleaner struct {
	ID              string
	Name            string
	Rating          float64
	ExperienceYears int
	Specialties     []string
	AvatarURL       string
	Available       bool
}
