package rooms

import (
	"context"
	"strings"
	"sync"
	"time"

	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/platform/logger"
	"kennel-scheduler/internal/ports/notify"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	pub  notify.Publisher
	log  logger.Logger
	now  func() time.Time

	// Un solo escritor lógico: serializa load -> transición -> save.
	mu sync.Mutex
}

func NewService(repo Repository, pub notify.Publisher, log logger.Logger) *Service {
	if pub == nil {
		pub = notify.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		pub:  pub,
		log:  log.With(map[string]any{"module": "rooms"}),
		now:  time.Now,
	}
}

type CreateInput struct {
	Name               string
	Type               Type
	Capacity           int
	AllowedPetTypes    []string
	Restrictions       []string
	AllowsShared       bool
	RequiresEvaluation bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Room, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Room{}, ErrInvalidInput
	}
	if in.Type == "" {
		in.Type = TypeStandard
	}
	if !in.Type.Valid() {
		return Room{}, ErrInvalidInput
	}
	if in.Capacity <= 0 {
		return Room{}, ErrInvalidInput
	}

	allowed := normalizeList(in.AllowedPetTypes, true)
	if len(allowed) == 0 {
		return Room{}, ErrInvalidInput
	}

	now := s.now()
	r := Room{
		ID:                 uuid.NewString(),
		Name:               strings.TrimSpace(in.Name),
		Type:               in.Type,
		Capacity:           in.Capacity,
		AllowedPetTypes:    allowed,
		Restrictions:       normalizeList(in.Restrictions, false),
		AllowsShared:       in.AllowsShared,
		RequiresEvaluation: in.RequiresEvaluation,
		Status:             StatusVacant,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return Room{}, err
	}
	s.log.Info("room created", map[string]any{"room_id": r.ID, "name": r.Name, "capacity": r.Capacity})
	return r, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Room, error) {
	if strings.TrimSpace(id) == "" {
		return Room{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Room, error) {
	return s.repo.List(ctx)
}

// Select registra el click sobre una habitación (hook kennel.selected).
func (s *Service) Select(ctx context.Context, id string) (Room, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return Room{}, err
	}
	s.publish(ctx, notify.EventKennelSelected, map[string]any{
		"room_id": r.ID,
		"status":  string(r.Status),
	})
	return r, nil
}

// RequestBooking registra el click sobre una celda vacía (hook booking.requested).
// No cambia el estado: la reserva real se hace con Book.
func (s *Service) RequestBooking(ctx context.Context, id string, date calendar.Date) error {
	if date.IsZero() {
		return ErrInvalidInput
	}
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.publish(ctx, notify.EventBookingRequested, map[string]any{
		"room_id": r.ID,
		"date":    date.String(),
	})
	return nil
}

func (s *Service) Book(ctx context.Context, id string, in BookingInput) (Room, error) {
	r, err := s.apply(ctx, id, "book", func(r Room) (Room, error) {
		next, err := r.Book(in)
		if err != nil {
			return r, err
		}
		return next, s.checkPetFree(ctx, next)
	})
	if err != nil {
		return r, err
	}
	s.publish(ctx, notify.EventBookingCreated, stayPayload(r))
	return r, nil
}

func (s *Service) Confirm(ctx context.Context, id string, walkIn *BookingInput) (Room, error) {
	return s.apply(ctx, id, "confirm", func(r Room) (Room, error) {
		next, err := r.Confirm(walkIn)
		if err != nil || r.Status != StatusVacant {
			return next, err
		}
		return next, s.checkPetFree(ctx, next)
	})
}

func (s *Service) MarkAvailable(ctx context.Context, id string) (Room, error) {
	return s.apply(ctx, id, "mark_available", func(r Room) (Room, error) { return r.MarkAvailable() })
}

func (s *Service) StartMaintenance(ctx context.Context, id string) (Room, error) {
	return s.apply(ctx, id, "start_maintenance", func(r Room) (Room, error) { return r.StartMaintenance() })
}

func (s *Service) EndMaintenance(ctx context.Context, id string) (Room, error) {
	return s.apply(ctx, id, "end_maintenance", func(r Room) (Room, error) { return r.EndMaintenance() })
}

func (s *Service) Extend(ctx context.Context, id string, days int) (Room, error) {
	r, err := s.apply(ctx, id, "extend", func(r Room) (Room, error) { return r.Extend(days) })
	if err != nil {
		return r, err
	}
	s.publish(ctx, notify.EventBookingUpdated, stayPayload(r))
	return r, nil
}

func (s *Service) Shorten(ctx context.Context, id string) (Room, error) {
	r, err := s.apply(ctx, id, "shorten", func(r Room) (Room, error) { return r.Shorten() })
	if err != nil {
		return r, err
	}
	s.publish(ctx, notify.EventBookingUpdated, stayPayload(r))
	return r, nil
}

// UpdateStayDates es el destino común del commit de drag y de la edición directa.
func (s *Service) UpdateStayDates(ctx context.Context, id string, checkIn, checkOut calendar.Date) (Room, error) {
	r, err := s.apply(ctx, id, "update_stay_dates", func(r Room) (Room, error) {
		return r.UpdateStayDates(checkIn, checkOut)
	})
	if err != nil {
		return r, err
	}
	s.publish(ctx, notify.EventBookingUpdated, stayPayload(r))
	return r, nil
}

// apply carga la habitación, aplica la transición y guarda sólo si fue aceptada.
func (s *Service) apply(ctx context.Context, id, op string, fn func(Room) (Room, error)) (Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return Room{}, err
	}

	next, err := fn(cur)
	if err != nil {
		s.log.Warn("room operation rejected", map[string]any{
			"room_id": id,
			"op":      op,
			"status":  string(cur.Status),
			"err":     err,
		})
		return cur, err
	}

	next.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, next); err != nil {
		return cur, err
	}

	if next.Status != cur.Status {
		s.log.Info("room status changed", map[string]any{
			"room_id": id,
			"op":      op,
			"from":    string(cur.Status),
			"to":      string(next.Status),
		})
		s.publish(ctx, notify.EventRoomStatusChange, map[string]any{
			"room_id": id,
			"from":    string(cur.Status),
			"to":      string(next.Status),
		})
	}
	return next, nil
}

// checkPetFree: una mascota ocupa como máximo una habitación a la vez.
// Se llama dentro de apply, con s.mu tomado.
func (s *Service) checkPetFree(ctx context.Context, next Room) error {
	all, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, o := range all {
		if o.ID == next.ID || !o.HasActiveStay() {
			continue
		}
		if o.Stay.PetID == next.Stay.PetID {
			return ErrPetAlreadyBooked
		}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, t notify.EventType, payload map[string]any) {
	err := s.pub.Publish(ctx, notify.Event{Type: t, OccurredAt: s.now().UTC(), Payload: payload})
	if err != nil {
		s.log.Error("publish failed", map[string]any{"event": string(t), "err": err})
	}
}

func stayPayload(r Room) map[string]any {
	p := map[string]any{"room_id": r.ID, "status": string(r.Status)}
	if r.Stay != nil {
		p["stay_id"] = r.Stay.ID
		p["pet_id"] = r.Stay.PetID
		p["check_in"] = r.Stay.CheckIn.String()
		p["check_out"] = r.Stay.CheckOut.String()
	}
	return p
}

func normalizeList(in []string, lower bool) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, v := range in {
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
