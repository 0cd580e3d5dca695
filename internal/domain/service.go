package domain

// ServiceKind тип услуги уборки
// Неизвестные ключи каталога не теряются: они становятся ServiceUnknown,
// а исходный ключ хранится рядом (см. ServiceCatalogEntry.Key)
type ServiceKind int

const (
	ServiceUnknown ServiceKind = iota
	ServiceRegularCleaning
	ServiceDeepCleaning
	ServiceMoveInOut
	ServiceJanitorialCleaning
)

var serviceKindKeys = map[ServiceKind]string{
	ServiceRegularCleaning:    "regular_cleaning",
	ServiceDeepCleaning:       "deep_cleaning",
	ServiceMoveInOut:          "move_in_out",
	ServiceJanitorialCleaning: "janitorial_cleaning",
}

// ParseServiceKind возвращает тип услуги по ключу каталога
func ParseServiceKind(key string) ServiceKind {
	for kind, k := range serviceKindKeys {
		if k == key {
			return kind
		}
	}
	return ServiceUnknown
}

// Key ключ каталога; пустая строка для ServiceUnknown
func (k ServiceKind) Key() string {
	return serviceKindKeys[k]
}

// IsKnown true для всех типов, кроме ServiceUnknown
func (k ServiceKind) IsKnown() bool {
	_, ok := serviceKindKeys[k]
	return ok
}

func (k ServiceKind) String() string {
	if key, ok := serviceKindKeys[k]; ok {
		return key
	}
	return "unknown"
}

// ServicePackage пакет услуг с почасовой ценой
type ServicePackage struct {
	Kind        ServiceKind
	Name        string
	Description string
	BasePrice   float64 // USD за час
	Features    []string
}

// ServicePackages фиксированный каталог услуг в порядке отображения
var ServicePackages = []ServicePackage{
	{
		Kind:        ServiceRegularCleaning,
		Name:        "Regular Cleaning",
		Description: "Standard house cleaning service",
		BasePrice:   40.0,
		Features:    []string{"Dusting", "Vacuuming", "Kitchen & bathroom wipe-down"},
	},
	{
		Kind:        ServiceDeepCleaning,
		Name:        "Deep Cleaning",
		Description: "Thorough deep cleaning service",
		BasePrice:   45.0,
		Features:    []string{"Inside appliances", "Baseboards", "Detailed scrubbing"},
	},
	{
		Kind:        ServiceMoveInOut,
		Name:        "Move In/Out Cleaning",
		Description: "Complete cleaning for moving",
		BasePrice:   70.0,
		Features:    []string{"Empty-home cleaning", "Cabinets & closets", "Walls spot cleaning"},
	},
	{
		Kind:        ServiceJanitorialCleaning,
		Name:        "Janitorial Cleaning",
		Description: "Commercial janitorial services",
		BasePrice:   70.0,
		Features:    []string{"Offices", "Restrooms", "Trash removal"},
	},
}

// FindServicePackage ищет пакет по ключу каталога
func FindServicePackage(key string) (ServicePackage, bool) {
	kind := ParseServiceKind(key)
	if !kind.IsKnown() {
		return ServicePackage{}, false
	}
	for _, p := range ServicePackages {
		if p.Kind == kind {
			return p, true
		}
	}
	return ServicePackage{}, false
}

// ServiceCatalogEntry элемент каталога, как его видит клиент
type ServiceCatalogEntry struct {
	Key         string
	Kind        ServiceKind
	Name        string
	Description string
	BasePrice   float64
	Features    []string
}

// TotalFor стоимость заказа на hours часов
func (e ServiceCatalogEntry) TotalFor(hours int) float64 {
	return float64(hours) * e.BasePrice
}
