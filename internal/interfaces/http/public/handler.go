package public

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/doner-finder/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/doner-finder/api/internal/public/application"
)

const defaultRequestTimeout = 5 * time.Second

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger        *log.Logger
	shops         publicapp.ShopQueryService
	reviews       publicapp.ReviewService
	favorites     publicapp.FavoriteService
	fingerprinter *common.Fingerprinter
	reviewLimiter *common.KeyedLimiter
	notifier      ReviewNotifier
	timeout       time.Duration
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger        *log.Logger
	Shops         publicapp.ShopQueryService
	Reviews       publicapp.ReviewService
	Favorites     publicapp.FavoriteService
	Fingerprinter *common.Fingerprinter
	ReviewLimiter *common.KeyedLimiter
	Notifier      ReviewNotifier
	Timeout       time.Duration
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Handler{
		logger:        cfg.Logger,
		shops:         cfg.Shops,
		reviews:       cfg.Reviews,
		favorites:     cfg.Favorites,
		fingerprinter: cfg.Fingerprinter,
		reviewLimiter: cfg.ReviewLimiter,
		notifier:      notifier,
		timeout:       timeout,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, requireAuth, optionalAuth func(http.Handler) http.Handler) {
	r.With(optionalAuth).Get("/shops", h.shopListHandler())
	r.Get("/shops/{slug}", h.shopDetailHandler())
	r.With(optionalAuth).Post("/shops/{id}/reviews", h.reviewCreateHandler())

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/shops/{id}/reviews/mine", h.reviewMineHandler())
		r.Patch("/reviews/{id}", h.reviewUpdateHandler())
		r.Delete("/reviews/{id}", h.reviewDeleteHandler())
		r.Get("/favorites", h.favoriteListHandler())
		r.Put("/favorites/{shopId}", h.favoriteAddHandler())
		r.Delete("/favorites/{shopId}", h.favoriteRemoveHandler())
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error, fallback, logContext string) {
	common.WriteError(h.logger, w, err, fallback, logContext)
}
