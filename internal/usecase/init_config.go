package usecase

import (
	"context"

	"github.com/slipway-dev/slipway/internal/domain"
)

// InitConfigInput contains the parameters for config initialization.
type InitConfigInput struct {
	Force bool // overwrite an existing config file
}

// InitConfigOutput contains the result of config initialization.
type InitConfigOutput struct {
	Path string // path of the written config file
}

// InitConfig writes a commented starter configuration file.
type InitConfig struct {
	manager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(manager domain.ConfigManager) *InitConfig {
	return &InitConfig{manager: manager}
}

// Execute writes the starter config.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	path, err := uc.manager.InitRepoConfig(in.Force)
	if err != nil {
		return nil, err
	}
	return &InitConfigOutput{Path: path}, nil
}
