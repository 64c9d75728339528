package router

import (
	"database/sql"
	"net/http"

	"kennel-scheduler/internal/adapters/notify/logpub"
	mem "kennel-scheduler/internal/adapters/storage/memory"
	pg "kennel-scheduler/internal/adapters/storage/postgres"
	rdb "kennel-scheduler/internal/adapters/storage/redis"
	"kennel-scheduler/internal/domain/assignments"
	"kennel-scheduler/internal/domain/drag"
	"kennel-scheduler/internal/domain/eligibility"
	"kennel-scheduler/internal/domain/pets"
	"kennel-scheduler/internal/domain/records"
	"kennel-scheduler/internal/domain/rooms"
	"kennel-scheduler/internal/domain/timeline"
	"kennel-scheduler/internal/middleware"
	"kennel-scheduler/internal/platform/logger"
	"kennel-scheduler/internal/ports/notify"

	_ "kennel-scheduler/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: sesión de drag compartida en Redis.
	Redis          *goredis.Client
	DragSessionKey string
	Publisher      notify.Publisher          // nil => eventos al log
	RecordsSource  eligibility.RecordsSource // nil => records locales
	Logger         logger.Logger
	Timeline       timeline.Config
	DisableMetrics bool
	ServiceName    string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	pub := opts.Publisher
	if pub == nil {
		pub = logpub.New(log)
	}
	name := opts.ServiceName
	if name == "" {
		name = "kennel-scheduler"
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	var metrics *middleware.Metrics
	if !opts.DisableMetrics {
		metrics = middleware.NewMetrics(name)
		r.Use(metrics.Middleware)
	}

	r.Use(middleware.StaffContext)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		roomRepo       rooms.Repository
		petRepo        pets.Repository
		recordsRepo    records.Repository
		assignmentRepo assignments.Repository
		sessions       drag.SessionStore
	)

	if opts.DB != nil {
		roomRepo = pg.NewRoomsRepo(opts.DB)
		petRepo = pg.NewPetsRepo(opts.DB)
		recordsRepo = pg.NewRecordsRepo(opts.DB)
		assignmentRepo = pg.NewAssignmentsRepo(opts.DB)
	} else {
		roomRepo = mem.NewRoomRepo()
		petRepo = mem.NewPetRepo()
		recordsRepo = mem.NewRecordsRepo()
		assignmentRepo = mem.NewAssignmentsRepo()
	}

	if opts.Redis != nil {
		key := opts.DragSessionKey
		if key == "" {
			key = rdb.DefaultSessionKey
		}
		sessions = rdb.NewDragSessionStore(opts.Redis, key)
	} else {
		sessions = mem.NewDragSessionStore()
	}

	// Services por módulo
	roomsSvc := rooms.NewService(roomRepo, pub, log)
	petsSvc := pets.NewService(petRepo)
	recordsSvc := records.NewService(recordsRepo)

	var recordsSrc eligibility.RecordsSource = recordsSvc
	if opts.RecordsSource != nil {
		recordsSrc = opts.RecordsSource
	}
	eligibilitySvc := eligibility.NewService(recordsSrc, petsSvc, roomsSvc, log)

	dragSvc := drag.NewService(sessions, roomsSvc, log)
	timelineSvc := timeline.NewService(roomsSvc, dragSvc, opts.Timeline, log)
	assignmentsSvc := assignments.NewService(assignmentRepo, roomsSvc, eligibilitySvc, pub, log)

	// Rutas por módulo
	rooms.RegisterRoutes(r, roomsSvc)
	pets.RegisterRoutes(r, petsSvc)
	records.RegisterRoutes(r, recordsSvc, petsSvc)
	eligibility.RegisterRoutes(r, eligibilitySvc)
	timeline.RegisterRoutes(r, timelineSvc)
	drag.RegisterRoutes(r, dragSvc)
	assignments.RegisterRoutes(r, assignmentsSvc)

	return r
}
