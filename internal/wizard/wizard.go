package wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/backend"
)

// Config параметры мастера
type Config struct {
	// OriginURL адрес, на который провайдер вернёт пользователя после оплаты
	OriginURL    string
	PollInterval time.Duration
	PollAttempts int
}

// Submission созданное на сервере бронирование
type Submission struct {
	BookingID    string
	TotalAmount  float64
	RequestToken string
}

// Wizard мастер бронирования уборки
// Шаги: услуга, исполнитель, дата и контакты, проверка и оплата, ожидание возврата с оплаты.
type Wizard struct {
	api          BackendAPI
	redirector   Redirector
	notifier     Notifier
	poller       *Poller
	timeProvider TimeProvider
	newToken     func() string
	originURL    string
	logger       Logger

	// catalogMu сериализует LoadCatalog и ReloadCatalog
	catalogMu sync.Mutex

	mu         sync.Mutex
	step       Step
	catalog    *Catalog
	draft      Draft
	submission *Submission
	inFlight   bool

	// Сессия оплаты и результат
	sessionID  string
	bookingID  string
	confirmed  *backend.Booking
	pollCancel context.CancelFunc
	pollGen    uint64
	lastError  string
}

// NewWizard создает мастер в состоянии выбора услуги с пустым каталогом
// notifier может быть nil
func NewWizard(
	api BackendAPI,
	redirector Redirector,
	notifier Notifier,
	sleeper Sleeper,
	cfg Config,
	logger Logger,
) *Wizard {
	return &Wizard{
		api:          api,
		redirector:   redirector,
		notifier:     notifier,
		poller:       NewPoller(api, sleeper, cfg.PollInterval, cfg.PollAttempts, logger),
		timeProvider: &RealTimeProvider{},
		newToken:     uuid.NewString,
		originURL:    cfg.OriginURL,
		logger:       logger,
		step:         StepSelectService,
		catalog:      &Catalog{Failed: map[CatalogPart]error{}},
		draft: Draft{
			Hours:        domain.DefaultHours,
			RequestToken: uuid.NewString(),
		},
	}
}

// resetDraftLocked начинает новый черновик после подтверждённой оплаты
// bookingID и подтверждённое бронирование остаются для показа результата
func (w *Wizard) resetDraftLocked() {
	w.draft = Draft{
		Hours:        domain.DefaultHours,
		RequestToken: w.newToken(),
	}
	w.submission = nil
}

// LoadCatalog загружает каталог целиком
func (w *Wizard) LoadCatalog(ctx context.Context) *Catalog {
	w.catalogMu.Lock()
	defer w.catalogMu.Unlock()

	catalog := LoadCatalog(ctx, w.api, w.logger)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.catalog = catalog
	return catalog.clone()
}

// ReloadCatalog повторно загружает только те части, которые не загрузились
func (w *Wizard) ReloadCatalog(ctx context.Context) *Catalog {
	w.catalogMu.Lock()
	defer w.catalogMu.Unlock()

	w.mu.Lock()
	next := w.catalog.clone()
	parts := next.FailedParts()
	w.mu.Unlock()

	if len(parts) == 0 {
		return next
	}

	w.logger.Info("ReloadCatalog: retrying %v", parts)
	loadParts(ctx, w.api, w.logger, next, parts)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.catalog = next
	return next.clone()
}

// Catalog снимок загруженного каталога
func (w *Wizard) Catalog() *Catalog {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.catalog.clone()
}

// Step текущее состояние
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft копия черновика
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Submission созданное бронирование, если отправка уже была
func (w *Wizard) Submission() (*Submission, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.submission == nil {
		return nil, false
	}
	s := *w.submission
	return &s, true
}

// ConfirmedBooking бронирование, полученное после успешной оплаты
func (w *Wizard) ConfirmedBooking() (*backend.Booking, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.confirmed == nil {
		return nil, false
	}
	b := *w.confirmed
	return &b, true
}

// SessionID сессия оплаты, которую ждёт мастер
func (w *Wizard) SessionID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sessionID
}

// LastError текст последней ошибки отправки или опроса для показа пользователю
func (w *Wizard) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

// SelectService выбирает услугу из загруженного каталога
func (w *Wizard) SelectService(key string) error {
	return w.edit(func(d *Draft) error {
		if _, ok := w.catalog.Service(key); !ok {
			return fmt.Errorf("%w: service %q", ErrUnknownOption, key)
		}
		d.ServiceKey = key
		return nil
	})
}

// SelectCleaner выбирает доступного исполнителя из загруженного списка
func (w *Wizard) SelectCleaner(id string) error {
	return w.edit(func(d *Draft) error {
		cleaner, ok := w.catalog.Cleaner(id)
		if !ok || !cleaner.Available {
			return fmt.Errorf("%w: cleaner %q", ErrUnknownOption, id)
		}
		d.CleanerID = id
		return nil
	})
}

// SetDate выбирает дату; прошедшие даты и воскресенья не принимаются
func (w *Wizard) SetDate(date time.Time) error {
	return w.edit(func(d *Draft) error {
		if !domain.IsBookableDate(date, w.timeProvider.Now()) {
			return fmt.Errorf("%w: %s", ErrDateNotBookable, date.Format(domain.DateFormat))
		}
		d.Date = dateOnly(date)
		return nil
	})
}

// SetTimeSlot выбирает слот из фиксированного расписания
// Если выбрана сегодняшняя дата, уже начавшиеся слоты не принимаются
func (w *Wizard) SetTimeSlot(slot string) error {
	return w.edit(func(d *Draft) error {
		if !domain.IsTimeSlot(slot) {
			return fmt.Errorf("%w: time slot %q", ErrUnknownOption, slot)
		}
		if !d.Date.IsZero() && !w.slotOpen(d.Date, slot) {
			return fmt.Errorf("%w: %s", ErrSlotStarted, slot)
		}
		d.TimeSlot = slot
		return nil
	})
}

// SetHours количество часов от 1 до 8
func (w *Wizard) SetHours(hours int) error {
	return w.edit(func(d *Draft) error {
		if hours < domain.MinHours || hours > domain.MaxHours {
			return fmt.Errorf("%w: %d", ErrInvalidHours, hours)
		}
		d.Hours = hours
		return nil
	})
}

// SetArea выбирает город из загруженного списка
func (w *Wizard) SetArea(area string) error {
	return w.edit(func(d *Draft) error {
		if !w.catalog.HasArea(area) {
			return fmt.Errorf("%w: area %q", ErrUnknownOption, area)
		}
		d.Area = area
		return nil
	})
}

// SetCustomer заменяет контактные данные
func (w *Wizard) SetCustomer(info CustomerInfo) error {
	return w.edit(func(d *Draft) error {
		d.Customer = info
		return nil
	})
}

// PrefillCustomer подставляет данные вошедшего пользователя в пустые поля
// Уже введённые значения не перезаписываются
func (w *Wizard) PrefillCustomer(user *backend.User) error {
	if user == nil {
		return nil
	}
	return w.edit(func(d *Draft) error {
		if strings.TrimSpace(d.Customer.Name) == "" {
			d.Customer.Name = strings.TrimSpace(user.FullName())
		}
		if strings.TrimSpace(d.Customer.Email) == "" {
			d.Customer.Email = user.Email
		}
		if strings.TrimSpace(d.Customer.Phone) == "" && user.Phone != nil {
			d.Customer.Phone = *user.Phone
		}
		return nil
	})
}

// edit применяет правку к копии черновика; при изменении выдаётся новый токен запроса,
// а ранее созданное бронирование перестаёт соответствовать черновику
func (w *Wizard) edit(apply func(d *Draft) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.step.editable() {
		return fmt.Errorf("%w: cannot edit draft in %s", ErrNotAllowed, w.step)
	}

	next := w.draft
	if err := apply(&next); err != nil {
		return err
	}

	if draftChanged(w.draft, next) {
		next.RequestToken = w.newToken()
		w.submission = nil
	}
	w.draft = next
	return nil
}

func draftChanged(a, b Draft) bool {
	return a.ServiceKey != b.ServiceKey ||
		a.CleanerID != b.CleanerID ||
		!sameDate(a.Date, b.Date) ||
		a.TimeSlot != b.TimeSlot ||
		a.Hours != b.Hours ||
		a.Area != b.Area ||
		a.Customer != b.Customer
}

// Total стоимость заказа: часы x почасовая цена выбранной услуги
// false, если услуга не выбрана или её нет в каталоге
func (w *Wizard) Total() (float64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.total()
}

func (w *Wizard) total() (float64, bool) {
	service, ok := w.catalog.Service(w.draft.ServiceKey)
	if !ok {
		return 0, false
	}
	return service.TotalFor(w.draft.Hours), true
}

// Checklist что осталось заполнить перед оплатой
func (w *Wizard) Checklist() []ChecklistItem {
	w.mu.Lock()
	defer w.mu.Unlock()

	d := w.draft
	return []ChecklistItem{
		{Label: "Service selected", Done: w.serviceReady()},
		{Label: "Cleaner selected", Done: w.cleanerReady()},
		{Label: "Date selected", Done: w.dateReady()},
		{Label: "Time selected", Done: w.slotReady()},
		{Label: "Service area selected", Done: w.catalog.HasArea(d.Area)},
		{Label: "Name provided", Done: strings.TrimSpace(d.Customer.Name) != ""},
		{Label: "Email provided", Done: strings.TrimSpace(d.Customer.Email) != ""},
		{Label: "Phone provided", Done: strings.TrimSpace(d.Customer.Phone) != ""},
		{Label: "Address provided", Done: strings.TrimSpace(d.Customer.Address) != ""},
	}
}

func (w *Wizard) serviceReady() bool {
	_, ok := w.catalog.Service(w.draft.ServiceKey)
	return ok
}

func (w *Wizard) cleanerReady() bool {
	_, ok := w.catalog.Cleaner(w.draft.CleanerID)
	return ok
}

func (w *Wizard) dateReady() bool {
	return domain.IsBookableDate(w.draft.Date, w.timeProvider.Now())
}

func (w *Wizard) slotReady() bool {
	return domain.IsTimeSlot(w.draft.TimeSlot) && w.slotOpen(w.draft.Date, w.draft.TimeSlot)
}

func (w *Wizard) slotOpen(date time.Time, slot string) bool {
	started, err := domain.SlotStarted(date, slot, w.timeProvider.Now())
	return err == nil && !started
}

func (w *Wizard) scheduleReady() bool {
	d := w.draft
	return w.dateReady() &&
		w.slotReady() &&
		d.Hours >= domain.MinHours && d.Hours <= domain.MaxHours &&
		w.catalog.HasArea(d.Area) &&
		d.Customer.complete()
}

// ready все условия выхода с шага step выполнены
func (w *Wizard) ready(step Step) bool {
	switch step {
	case StepSelectService:
		return w.serviceReady()
	case StepSelectCleaner:
		return w.serviceReady() && w.cleanerReady()
	case StepScheduleAndDetails, StepReviewAndPay:
		return w.serviceReady() && w.cleanerReady() && w.scheduleReady()
	default:
		return false
	}
}

// CanAdvance можно ли перейти с текущего шага вперёд
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step < StepReviewAndPay && w.ready(w.step)
}

// CanSubmit можно ли отправить бронирование и перейти к оплате
func (w *Wizard) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step == StepReviewAndPay && !w.inFlight && w.ready(StepReviewAndPay)
}

// Next переход на следующий шаг; при незаполненном шаге состояние не меняется
// Переход с шага оплаты выполняет Pay
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step >= StepReviewAndPay {
		return fmt.Errorf("%w: next from %s", ErrNotAllowed, w.step)
	}
	if !w.ready(w.step) {
		return fmt.Errorf("%w: %s", ErrStepIncomplete, w.step)
	}

	w.step++
	return nil
}

// Back возврат на один шаг назад без потери введённых данных
// Из Failed возвращает на шаг оплаты
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepSelectCleaner, StepScheduleAndDetails, StepReviewAndPay:
		if w.inFlight {
			return ErrInFlight
		}
		w.step--
		return nil
	case StepFailed:
		w.step = StepReviewAndPay
		w.sessionID = ""
		return nil
	default:
		return fmt.Errorf("%w: back from %s", ErrNotAllowed, w.step)
	}
}
