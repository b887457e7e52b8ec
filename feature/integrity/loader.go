package integrity

import (
	"github.com/gofiber/fiber/v2"
)

// Feature exposes the relationship checks over HTTP.
type Feature struct {
	service *Service
	cfg     Config
}

// NewFeature creates the integrity feature.
func NewFeature(service *Service, cfg Config) *Feature {
	return &Feature{service: service, cfg: cfg}
}

func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled reports whether at least one check is enabled.
func (f *Feature) IsEnabled() bool {
	return len(f.cfg.Enabled()) > 0
}

func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service, f.cfg.Enabled()).RegisterRoutes(app)
	return nil
}
