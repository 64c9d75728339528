package assignments

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"kennel-scheduler/internal/domain/eligibility"
	"kennel-scheduler/internal/domain/rooms"
	"kennel-scheduler/internal/platform/logger"
	"kennel-scheduler/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrOverrideNeedsStaff: el override queda auditado, hace falta saber quién lo usó.
	ErrOverrideNeedsStaff = errors.New("override requires a staff id")
)

type RoomSource interface {
	GetByID(ctx context.Context, id string) (rooms.Room, error)
	List(ctx context.Context) ([]rooms.Room, error)
}

type EligibilitySource interface {
	ForPet(ctx context.Context, petID string, q eligibility.Query) (eligibility.PetEligibility, error)
}

type Service struct {
	repo        Repository
	rooms       RoomSource
	eligibility EligibilitySource
	pub         notify.Publisher
	log         logger.Logger
	now         func() time.Time

	mu sync.Mutex
}

func NewService(repo Repository, rs RoomSource, es EligibilitySource, pub notify.Publisher, log logger.Logger) *Service {
	if pub == nil {
		pub = notify.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:        repo,
		rooms:       rs,
		eligibility: es,
		pub:         pub,
		log:         log.With(map[string]any{"module": "assignments"}),
		now:         time.Now,
	}
}

// AssignInput: Override se decide por llamada, nunca queda guardado en la habitación ni en la mascota.
type AssignInput struct {
	PetID    string
	RoomID   string
	Override bool
	StaffID  string
	Reason   string
}

type Decision struct {
	Room       rooms.Room
	Candidate  Candidate
	Assigned   []string
	Violations []Violation
	Allowed    bool
}

type AssignResult struct {
	Board      Board
	Accepted   bool
	Violations []Violation
	Override   *OverrideRecord
}

type RoomAssignment struct {
	Room   rooms.Room
	PetIDs []string
}

// Check evalúa la asignación sin aplicarla (para marcar destinos válidos al arrastrar).
func (s *Service) Check(ctx context.Context, petID, roomID string, override bool) (Decision, error) {
	b, err := s.repo.Load(ctx)
	if err != nil {
		return Decision{}, err
	}
	return s.decide(ctx, b, petID, roomID, override)
}

func (s *Service) decide(ctx context.Context, b Board, petID, roomID string, override bool) (Decision, error) {
	petID = strings.TrimSpace(petID)
	roomID = strings.TrimSpace(roomID)
	if petID == "" || roomID == "" {
		return Decision{}, ErrInvalidInput
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		return Decision{}, err
	}
	pe, err := s.eligibility.ForPet(ctx, petID, eligibility.Query{RoomID: room.ID})
	if err != nil {
		return Decision{}, err
	}

	c := Candidate{PetID: pe.Pet.ID, Type: string(pe.Pet.Type), Eligible: pe.Result.Eligible}
	assigned := append([]string(nil), b[room.ID]...)
	return Decision{
		Room:       room,
		Candidate:  c,
		Assigned:   assigned,
		Violations: Violations(room, c, assigned),
		Allowed:    CanAssign(room, c, assigned, override),
	}, nil
}

func (s *Service) Assign(ctx context.Context, in AssignInput) (AssignResult, error) {
	if in.Override && strings.TrimSpace(in.StaffID) == "" {
		return AssignResult{}, ErrOverrideNeedsStaff
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.Load(ctx)
	if err != nil {
		return AssignResult{}, err
	}

	d, err := s.decide(ctx, b, in.PetID, in.RoomID, in.Override)
	if err != nil {
		return AssignResult{}, err
	}

	from, hadRoom := b.RoomOf(d.Candidate.PetID)
	if hadRoom && from == d.Room.ID {
		return AssignResult{Board: b, Accepted: true}, nil
	}

	next, ok := Assign(b, d.Room, d.Candidate, in.Override)
	if !ok {
		s.log.Info("assignment rejected", map[string]any{
			"pet_id":     d.Candidate.PetID,
			"room_id":    d.Room.ID,
			"violations": joinViolations(d.Violations),
		})
		return AssignResult{Board: b, Accepted: false, Violations: d.Violations}, nil
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return AssignResult{}, err
	}

	res := AssignResult{Board: next, Accepted: true, Violations: d.Violations}

	// Sólo se audita el override que efectivamente saltó alguna regla.
	if in.Override && len(d.Violations) > 0 {
		rec := OverrideRecord{
			ID:        uuid.NewString(),
			PetID:     d.Candidate.PetID,
			RoomID:    d.Room.ID,
			StaffID:   strings.TrimSpace(in.StaffID),
			Reason:    strings.TrimSpace(in.Reason),
			Bypassed:  d.Violations,
			CreatedAt: s.now().UTC(),
		}
		if err := s.repo.AddOverride(ctx, rec); err != nil {
			s.log.Error("override audit failed", map[string]any{"pet_id": rec.PetID, "room_id": rec.RoomID, "err": err})
		}
		s.log.Warn("assignment override", map[string]any{
			"pet_id":   rec.PetID,
			"room_id":  rec.RoomID,
			"staff_id": rec.StaffID,
			"bypassed": joinViolations(rec.Bypassed),
		})
		res.Override = &rec
	}

	payload := map[string]any{
		"pet_id":   d.Candidate.PetID,
		"room_id":  d.Room.ID,
		"override": res.Override != nil,
	}
	if hadRoom {
		payload["from_room_id"] = from
	}
	s.publish(ctx, notify.EventPetAssigned, payload)
	return res, nil
}

// Unassign quita la mascota del tablero. removed=false si no estaba asignada.
func (s *Service) Unassign(ctx context.Context, petID string) (Board, bool, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, false, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repo.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	from, ok := b.RoomOf(petID)
	if !ok {
		return b, false, nil
	}

	next := Unassign(b, petID)
	if err := s.repo.Save(ctx, next); err != nil {
		return nil, false, err
	}

	s.publish(ctx, notify.EventPetUnassigned, map[string]any{"pet_id": petID, "room_id": from})
	return next, true, nil
}

// Snapshot devuelve todas las habitaciones con sus mascotas, ordenadas por nombre.
func (s *Service) Snapshot(ctx context.Context) ([]RoomAssignment, error) {
	b, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})

	out := make([]RoomAssignment, 0, len(list))
	for _, r := range list {
		out = append(out, RoomAssignment{Room: r, PetIDs: append([]string{}, b[r.ID]...)})
	}
	return out, nil
}

func (s *Service) Overrides(ctx context.Context) ([]OverrideRecord, error) {
	return s.repo.ListOverrides(ctx)
}

func (s *Service) publish(ctx context.Context, t notify.EventType, payload map[string]any) {
	err := s.pub.Publish(ctx, notify.Event{Type: t, OccurredAt: s.now().UTC(), Payload: payload})
	if err != nil {
		s.log.Error("publish failed", map[string]any{"event": string(t), "err": err})
	}
}

func joinViolations(vs []Violation) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ",")
}
