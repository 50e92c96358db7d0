package service

import (
	"fmt"
	"net/url"

	"iomd-notebook-be/internal/config"
	"iomd-notebook-be/internal/pkg/serverutils"
)

// IRenderService is the sandboxed render gateway. It only computes URLs
// and assembles the eval-frame host page; the origin boundary itself is
// enforced by middleware.
type IRenderService interface {
	EvalFrameSrc() string
	EvalFrameOrigin() string
	EvalFramePage() string
}

type renderService struct {
	evalFrameSrc    string
	evalFrameOrigin string
	siteURL         string
}

func NewRenderService(cfg *config.Config) (IRenderService, error) {
	base, err := url.Parse(cfg.App.EvalFrameOrigin)
	if err != nil {
		return nil, fmt.Errorf("invalid eval frame origin %q: %w", cfg.App.EvalFrameOrigin, err)
	}
	ref, err := url.Parse(serverutils.EvalFramePath)
	if err != nil {
		return nil, err
	}

	return &renderService{
		evalFrameSrc:    base.ResolveReference(ref).String(),
		evalFrameOrigin: cfg.App.EvalFrameOrigin,
		siteURL:         cfg.App.SiteURL,
	}, nil
}

func (s *renderService) EvalFrameSrc() string {
	return s.evalFrameSrc
}

func (s *renderService) EvalFrameOrigin() string {
	return s.evalFrameOrigin
}

// EvalFramePage is the minimal host document for the sandboxed frame. The
// editor origin is injected so the frame only accepts postMessage traffic
// from the hosting application.
func (s *renderService) EvalFramePage() string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>eval frame</title>
<script>window.EDITOR_ORIGIN = %q;</script>
</head>
<body>
<div id="eval-container"></div>
</body>
</html>
`, s.siteURL)
}
