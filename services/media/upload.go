package mediasvc

import (
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// Service stores uploaded course videos under a local media root while
// reporting upload progress the way a remote storage client would.
type Service struct {
	root   string
	tick   time.Duration
	logger core.Logger
}

func NewService(conf *core.Config, logger core.Logger) *Service {
	return &Service{
		root:   conf.MediaRoot,
		tick:   conf.Media.TickInterval,
		logger: logger,
	}
}

// Upload copies src under the media root and returns a locally
// addressable reference ("/media/<name>") that is servable as soon as
// this returns. onProgress, if set, receives a monotonically
// non-decreasing sequence of percentages in pseudo-random increments,
// one per tick, always ending with exactly 100.
func (svc *Service) Upload(filename string, src io.Reader, onProgress func(percent int)) (string, error) {
	// an unusable media root means every upload and playback is broken;
	// take the service down instead of failing request by request
	if err := os.MkdirAll(svc.root, 0755); err != nil {
		return "", core.NewShutdownError("media root unavailable: " + err.Error())
	}

	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(svc.root, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "creating media file")
	}
	if _, err = io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", errors.Wrap(err, "storing media file")
	}
	if err = dst.Close(); err != nil {
		return "", errors.Wrap(err, "closing media file")
	}

	svc.reportProgress(onProgress)
	svc.logger.Debug("media stored: " + name)
	return "/media/" + name, nil
}

func (svc *Service) reportProgress(onProgress func(percent int)) {
	if onProgress == nil {
		return
	}

	var progress float64
	var last int
	for {
		progress += rand.Float64() * 15
		if progress >= 100 {
			onProgress(100)
			return
		}
		pct := int(progress)
		if pct < last {
			pct = last
		}
		onProgress(pct)
		last = pct
		if svc.tick > 0 {
			time.Sleep(svc.tick)
		}
	}
}
