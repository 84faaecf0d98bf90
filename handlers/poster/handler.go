package poster

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"image/jpeg"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/lazymap"
	"github.com/webtor-io/popcorn/services/catalog"
)

type PosterFormat string

const (
	PosterFormatJPEG PosterFormat = "jpg"
)

const (
	PosterJPEGQuality = 85
	PosterMinWidth    = 16
	PosterMaxWidth    = 1000
)

const PosterFetchTimeout = 30 * time.Second

var errNoPoster = errors.New("no poster")

type PosterArgs struct {
	imdbID string
	width  int
	format PosterFormat
}

func (s *PosterArgs) Key() string {
	return fmt.Sprintf("%v/%v.%v", s.imdbID, s.width, s.format)
}

type Handler struct {
	cl      *http.Client
	cat     catalog.Catalog
	posters lazymap.LazyMap[[]byte]
}

func RegisterHandler(r *gin.Engine, cl *http.Client, cat catalog.Catalog) {
	h := &Handler{
		cl:  cl,
		cat: cat,
		posters: lazymap.New[[]byte](&lazymap.Config{
			Expire:      24 * time.Hour,
			ErrorExpire: 10 * time.Second,
		}),
	}
	r.GET("/poster/:imdb_id/:file", h.poster)
}

func (s *Handler) bindPosterArgs(c *gin.Context) (*PosterArgs, error) {
	imdbID := c.Param("imdb_id")
	if imdbID == "" {
		return nil, errors.New("empty imdb id")
	}
	file := c.Param("file")
	fileParts := strings.Split(file, ".")
	if len(fileParts) != 2 {
		return nil, errors.Errorf("wrong file format %v", file)
	}
	width, err := strconv.Atoi(fileParts[0])
	if err != nil {
		return nil, errors.Errorf("wrong width %v", fileParts[0])
	}
	if width < PosterMinWidth || width > PosterMaxWidth {
		return nil, errors.Errorf("width %v out of range", width)
	}
	f := PosterFormat(fileParts[1])
	if f != PosterFormatJPEG {
		return nil, errors.Errorf("wrong format %v", f)
	}
	return &PosterArgs{
		imdbID: imdbID,
		width:  width,
		format: f,
	}, nil
}

func (s *Handler) poster(c *gin.Context) {
	pa, err := s.bindPosterArgs(c)
	if err != nil {
		log.WithError(err).Warn("failed to bind poster args")
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	b, err := s.posters.Get(pa.Key(), func() ([]byte, error) {
		// shared by all waiting requests, detached from the caller
		ctx, cancel := context.WithTimeout(context.Background(), PosterFetchTimeout)
		defer cancel()
		return s.getResizedJPEGPoster(ctx, pa)
	})
	if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, errNoPoster) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).WithField("imdb_id", pa.imdbID).Error("failed to get resized poster")
		_ = c.AbortWithError(http.StatusBadGateway, err)
		return
	}

	etag := s.generateETag(b)

	if match := c.Request.Header.Get("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Length", strconv.Itoa(len(b)))
	c.Header("ETag", etag)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)

	_, _ = c.Writer.Write(b)
}

func (s *Handler) generateETag(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf(`"%x"`, sum[:])
}

func (s *Handler) getResizedJPEGPoster(ctx context.Context, args *PosterArgs) ([]byte, error) {
	md, err := s.cat.GetByID(ctx, args.imdbID)
	if err != nil {
		return nil, err
	}
	if md.PosterURL == "" {
		return nil, errNoPoster
	}

	req, err := http.NewRequestWithContext(ctx, "GET", md.PosterURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	resp, err := s.cl.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("poster returned status %d", resp.StatusCode)
	}

	srcImg, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "decode poster")
	}

	resized := imaging.Resize(srcImg, args.width, 0, imaging.Lanczos)

	var buf bytes.Buffer
	err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: PosterJPEGQuality})
	if err != nil {
		return nil, errors.Wrap(err, "encode poster")
	}
	log.WithField("key", args.Key()).Debugf("poster resized to %v", humanize.Bytes(uint64(buf.Len())))
	return buf.Bytes(), nil
}
