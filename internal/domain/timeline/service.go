package timeline

import (
	"context"
	"errors"
	"time"

	"kennel-scheduler/internal/domain/calendar"
	"kennel-scheduler/internal/domain/rooms"
	"kennel-scheduler/internal/platform/logger"
)

var ErrInvalidNav = errors.New("nav must be prev, next or today")

// Nav es la navegación pedida sobre la ventana.
type Nav string

const (
	NavNone  Nav = ""
	NavPrev  Nav = "prev"
	NavNext  Nav = "next"
	NavToday Nav = "today"
)

type RoomLister interface {
	List(ctx context.Context) ([]rooms.Room, error)
}

// PreviewSource expone el preview del drag activo (si lo hay).
type PreviewSource interface {
	ActivePreview(ctx context.Context) (Preview, bool, error)
}

type Config struct {
	DefaultDays int
	WeekStart   time.Weekday
}

type Service struct {
	rooms    RoomLister
	previews PreviewSource
	cfg      Config
	log      logger.Logger
	now      func() time.Time
}

func NewService(rl RoomLister, previews PreviewSource, cfg Config, log logger.Logger) *Service {
	if !ValidDayCount(cfg.DefaultDays) {
		cfg.DefaultDays = 14
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		rooms:    rl,
		previews: previews,
		cfg:      cfg,
		log:      log.With(map[string]any{"module": "timeline"}),
		now:      time.Now,
	}
}

type Query struct {
	Start calendar.Date
	Days  int
	Nav   Nav
}

// ResolveWindow aplica defaults y navegación. Sin start (o con nav=today) arranca en la semana actual.
func (s *Service) ResolveWindow(q Query) (Window, error) {
	days := q.Days
	if days == 0 {
		days = s.cfg.DefaultDays
	}

	switch q.Nav {
	case NavNone, NavPrev, NavNext, NavToday:
	default:
		return Window{}, ErrInvalidNav
	}

	if q.Nav == NavToday || q.Start.IsZero() {
		return Today(s.now(), days, s.cfg.WeekStart)
	}

	w, err := NewWindow(q.Start, days)
	if err != nil {
		return Window{}, err
	}
	switch q.Nav {
	case NavPrev:
		w = w.Previous()
	case NavNext:
		w = w.Next()
	}
	return w, nil
}

func (s *Service) Grid(ctx context.Context, q Query) (Grid, error) {
	w, err := s.ResolveWindow(q)
	if err != nil {
		return Grid{}, err
	}

	list, err := s.rooms.List(ctx)
	if err != nil {
		return Grid{}, err
	}

	var preview *Preview
	if s.previews != nil {
		p, ok, err := s.previews.ActivePreview(ctx)
		if err != nil {
			// sin preview se dibuja lo guardado
			s.log.Warn("drag preview unavailable", map[string]any{"err": err})
		} else if ok {
			preview = &p
		}
	}

	return BuildGrid(w, list, preview), nil
}
