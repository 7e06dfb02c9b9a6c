// Package model binds a transform to a loaded model asset and its animation
// clips.
package model

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/basic3d/internal/assets"
	"github.com/Faultbox/basic3d/internal/engine/posture"
	"github.com/Faultbox/basic3d/internal/logger"
)

// ErrInvalidClip is returned for clip indices the model does not have.
var ErrInvalidClip = errors.New("invalid animation clip")

// Model is a posture with a renderable asset and an animator.
type Model struct {
	*posture.Posture

	Asset    assets.ModelAsset
	Animator *Animator
	Visible  bool
}

// New creates an unloaded model.
func New() *Model {
	return &Model{
		Posture:  posture.New(),
		Animator: NewAnimator(nil),
		Visible:  true,
	}
}

// Load resolves path through loader and resets the animator to the
// asset's clips.
func (m *Model) Load(loader assets.Loader, path string) error {
	asset, err := loader.LoadModel(path)
	if err != nil {
		return fmt.Errorf("loading model: %w", err)
	}
	m.Asset = asset
	m.Animator = NewAnimator(asset.Clips)

	logger.Debug("model loaded",
		zap.String("path", path),
		zap.Int("clips", len(asset.Clips)))
	return nil
}

// Loaded reports whether an asset is bound.
func (m *Model) Loaded() bool {
	return m.Asset.Handle != 0
}

// Process recomposes the posture and advances animation.
func (m *Model) Process() {
	m.Posture.Process()

	blending := m.Animator.IsBlending()
	m.Animator.Process()
	switch {
	case m.Animator.IsBlending():
		mainW, blendW := m.Animator.Weights()
		logger.Debug("blending",
			zap.Int("from", m.Animator.MainIndex()),
			zap.Int("to", m.Animator.BlendIndex()),
			zap.Float64("main", mainW),
			zap.Float64("blend", blendW))
	case blending:
		logger.Debug("blend finished",
			zap.Int("clip", m.Animator.MainIndex()),
			zap.Float64("play", m.Animator.PlayTime()))
	}
}
