package deps

import (
	"time"

	"github.com/nikbrunner/shelf/internal/bookmarks"
	"github.com/nikbrunner/shelf/internal/logger"
	"github.com/nikbrunner/shelf/internal/storage"
)

type Deps struct {
	Logger    logger.Logger
	Store     *bookmarks.Store
	Settings  storage.Adapter // theme preference
	StartTime time.Time
	TimeNow   func() time.Time // for testing, defaults to time.Now
	Version   string
}
