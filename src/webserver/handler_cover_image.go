package webserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/journeo/coverd/src/logging"
	"github.com/journeo/coverd/src/validation"
	"github.com/journeo/coverd/src/webserver/webutils"
)

const (
	// imageDownloadLimit is the largest cover image which will be served.
	imageDownloadLimit = 5 * 1024 * 1024

	imageDownloadTimeout = 10 * time.Second

	// smallImageWidth is the width of the size=small images. Used for guide
	// lists and cards.
	smallImageWidth = 300

	sizeSmall = "small"
)

var errImageTooLarge = errors.New("image is larger than the download limit")

// CoverImageHandler resolves a cover and serves the image itself instead of
// its URL. This way clients need to trust only this service. When the image
// cannot be downloaded the client is redirected to it.
type CoverImageHandler struct {
	resolver  CoverResolver
	scaler    ImageScaler
	client    *http.Client
	useragent string
	logger    zerolog.Logger
}

// NewCoverImageHandler returns a handler for the /v1/cover/image endpoint.
func NewCoverImageHandler(
	resolver CoverResolver,
	sclr ImageScaler,
	useragent string,
	logger zerolog.Logger,
) *CoverImageHandler {
	return &CoverImageHandler{
		resolver:  resolver,
		scaler:    sclr,
		client:    http.DefaultClient,
		useragent: useragent,
		logger:    logger,
	}
}

// SetHTTPClient changes the client used for downloading images.
func (h *CoverImageHandler) SetHTTPClient(client *http.Client) {
	h.client = client
}

type coverImageParams struct {
	coverParams
	Size string `json:"size" validate:"omitempty,oneof=small original"`
}

// ServeHTTP implements http.Handler.
func (h *CoverImageHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	params := coverImageParams{
		coverParams: parseCoverParams(req),
		Size:        req.URL.Query().Get("size"),
	}
	if err := validation.Struct(params); err != nil {
		webutils.JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := req.Context()
	res := params.resolve(ctx, h.resolver)
	l := logging.Ctx(ctx, h.logger)

	imgData, contentType, err := h.download(ctx, res.URL)
	if err == nil && params.Size == sizeSmall {
		imgData, err = h.scaler.Scale(ctx, bytes.NewReader(imgData), smallImageWidth)
		contentType = "image/jpeg"
	}

	if err != nil {
		l.Warn().Err(err).Str("url", res.URL).Msg("serving cover image failed, redirecting")
		http.Redirect(w, req, res.URL, http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(imgData)))
	w.Header().Set("Cache-Control", cacheControl(res))
	w.Header().Set("X-Cover-Source", string(res.Source))
	if _, err := w.Write(imgData); err != nil {
		l.Debug().Err(err).Msg("writing cover image")
	}
}

func (h *CoverImageHandler) download(
	ctx context.Context,
	imageURL string,
) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, imageDownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating image request: %w", err)
	}
	req.Header.Set("User-Agent", h.useragent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image server returned HTTP %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("unexpected image content type `%s`", contentType)
	}

	imgData, err := io.ReadAll(io.LimitReader(resp.Body, imageDownloadLimit+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading image: %w", err)
	}
	if len(imgData) > imageDownloadLimit {
		return nil, "", errImageTooLarge
	}

	return imgData, contentType, nil
}
