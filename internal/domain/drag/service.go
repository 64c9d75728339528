package drag

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/domain/rooms"
	"kennel-scheduler/internal/domain/timeline"
	"kennel-scheduler/internal/platform/logger"
)

var (
	ErrInvalidEdge     = errors.New("edge must be start or end")
	ErrInvalidGeometry = errors.New("cell width must be positive")
	ErrNoStayDates     = errors.New("room has no active stay with dates")
)

// RoomStays es lo que el drag necesita de las habitaciones: leer la estadía y
// escribir el rango final por la misma operación que la edición directa.
type RoomStays interface {
	GetByID(ctx context.Context, id string) (rooms.Room, error)
	UpdateStayDates(ctx context.Context, id string, checkIn, checkOut calendar.Date) (rooms.Room, error)
}

// Service es el controlador de drag: idle <-> dragging(edge).
type Service struct {
	store SessionStore
	rooms RoomStays
	log   logger.Logger
	now   func() time.Time

	mu sync.Mutex
}

func NewService(store SessionStore, rs RoomStays, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store: store,
		rooms: rs,
		log:   log.With(map[string]any{"module": "drag"}),
		now:   time.Now,
	}
}

type StartInput struct {
	RoomID   string
	Edge     Edge
	PointerX float64
	Window   timeline.Window
	Geometry Geometry
}

// Start abre la sesión sobre una estadía con fechas. El preview arranca en el rango guardado.
func (s *Service) Start(ctx context.Context, in StartInput) (Session, error) {
	if !in.Edge.Valid() {
		return Session{}, ErrInvalidEdge
	}
	if in.Geometry.CellWidth <= 0 {
		return Session{}, ErrInvalidGeometry
	}
	w, err := timeline.NewWindow(in.Window.Start, in.Window.Days)
	if err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok, err := s.store.Get(ctx); err != nil {
		return Session{}, err
	} else if ok {
		return Session{}, ErrSessionActive
	}

	room, err := s.rooms.GetByID(ctx, strings.TrimSpace(in.RoomID))
	if err != nil {
		return Session{}, err
	}
	if !room.HasActiveStay() {
		return Session{}, ErrNoStayDates
	}

	sess := Session{
		RoomID:          room.ID,
		Edge:            in.Edge,
		InitialPointerX: in.PointerX,
		PreviewCheckIn:  room.Stay.CheckIn,
		PreviewCheckOut: room.Stay.CheckOut,
		Window:          w,
		Geometry:        in.Geometry,
		StartedAt:       s.now().UTC(),
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return Session{}, err
	}

	s.log.Debug("drag started", map[string]any{"room_id": sess.RoomID, "edge": string(sess.Edge)})
	return sess, nil
}

// Move actualiza el preview. Candidatos que invertirían el rango se ignoran (accepted=false).
func (s *Service) Move(ctx context.Context, pointerX float64) (Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok, err := s.store.Get(ctx)
	if err != nil {
		return Session{}, false, err
	}
	if !ok {
		return Session{}, false, ErrNoSession
	}

	next, accepted := cur.Move(pointerX)
	if !accepted {
		return cur, false, nil
	}
	if next == cur {
		return cur, true, nil
	}
	if err := s.store.Replace(ctx, next); err != nil {
		return cur, false, err
	}
	return next, true, nil
}

// Commit escribe el último preview aceptado y cierra la sesión, aunque la escritura falle.
func (s *Service) Commit(ctx context.Context) (rooms.Room, error) {
	return s.finish(ctx, "release")
}

// Leave (el puntero sale de la grilla) se trata igual que soltar.
func (s *Service) Leave(ctx context.Context) (rooms.Room, error) {
	return s.finish(ctx, "leave")
}

func (s *Service) finish(ctx context.Context, reason string) (rooms.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok, err := s.store.Get(ctx)
	if err != nil {
		return rooms.Room{}, err
	}
	if !ok {
		return rooms.Room{}, ErrNoSession
	}

	room, updateErr := s.rooms.UpdateStayDates(ctx, cur.RoomID, cur.PreviewCheckIn, cur.PreviewCheckOut)

	if err := s.store.Delete(ctx); err != nil {
		s.log.Error("drag session delete failed", map[string]any{"room_id": cur.RoomID, "err": err})
		if updateErr == nil {
			return room, err
		}
	}

	if updateErr != nil {
		s.log.Warn("drag commit rejected", map[string]any{
			"room_id": cur.RoomID,
			"reason":  reason,
			"err":     updateErr,
		})
		return room, updateErr
	}

	s.log.Info("drag committed", map[string]any{
		"room_id":   cur.RoomID,
		"edge":      string(cur.Edge),
		"reason":    reason,
		"check_in":  cur.PreviewCheckIn.String(),
		"check_out": cur.PreviewCheckOut.String(),
	})
	return room, nil
}

func (s *Service) Current(ctx context.Context) (Session, bool, error) {
	return s.store.Get(ctx)
}

// ActivePreview implementa timeline.PreviewSource.
func (s *Service) ActivePreview(ctx context.Context) (timeline.Preview, bool, error) {
	cur, ok, err := s.store.Get(ctx)
	if err != nil || !ok {
		return timeline.Preview{}, false, err
	}
	return cur.Preview(), true, nil
}
