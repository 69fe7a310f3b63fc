package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/starnav-go/internal/domain/player"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// GormPlayerRepository implements player.PlayerRepository and
// navigation.AgentRepository using GORM
type GormPlayerRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormPlayerRepository creates a new GORM player repository
func NewGormPlayerRepository(db *gorm.DB, clock shared.Clock) *GormPlayerRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormPlayerRepository{db: db, clock: clock}
}

// FindByID retrieves a player by ID
func (r *GormPlayerRepository) FindByID(ctx context.Context, playerID shared.PlayerID) (*player.Player, error) {
	var model PlayerModel
	result := r.db.WithContext(ctx).Where("id = ?", playerID.Value()).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("player not found: %s", playerID.String())
		}
		return nil, fmt.Errorf("failed to find player: %w", result.Error)
	}

	return r.modelToPlayer(&model)
}

// FindByAgentSymbol retrieves a player by agent symbol
func (r *GormPlayerRepository) FindByAgentSymbol(ctx context.Context, agentSymbol string) (*player.Player, error) {
	var model PlayerModel
	result := r.db.WithContext(ctx).Where("agent_symbol = ?", agentSymbol).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("player not found: %s", agentSymbol)
		}
		return nil, fmt.Errorf("failed to find player: %w", result.Error)
	}

	return r.modelToPlayer(&model)
}

// Add persists a player (upsert)
func (r *GormPlayerRepository) Add(ctx context.Context, p *player.Player) error {
	model, err := r.playerToModel(p)
	if err != nil {
		return fmt.Errorf("failed to convert player to model: %w", err)
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to add player: %w", result.Error)
	}
	return nil
}

// UpdateCredits stores the agent's credit balance as reported by the most
// recent API response
func (r *GormPlayerRepository) UpdateCredits(ctx context.Context, playerID shared.PlayerID, credits int64) error {
	result := r.db.WithContext(ctx).
		Model(&PlayerModel{}).
		Where("id = ?", playerID.Value()).
		Update("credits", credits)
	if result.Error != nil {
		return fmt.Errorf("failed to update credits: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("player not found: %s", playerID.String())
	}
	return nil
}

func (r *GormPlayerRepository) modelToPlayer(model *PlayerModel) (*player.Player, error) {
	var metadata map[string]interface{}
	if model.Metadata != "" {
		if err := json.Unmarshal([]byte(model.Metadata), &metadata); err != nil {
			metadata = nil
		}
	}

	playerID, err := shared.NewPlayerID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID in database: %w", err)
	}

	return &player.Player{
		ID:          playerID,
		AgentSymbol: model.AgentSymbol,
		Token:       model.Token,
		Credits:     model.Credits,
		Metadata:    metadata,
	}, nil
}

func (r *GormPlayerRepository) playerToModel(p *player.Player) (*PlayerModel, error) {
	var metadataJSON string
	if p.Metadata != nil {
		bytes, err := json.Marshal(p.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadataJSON = string(bytes)
	} else {
		// JSONB columns reject empty strings
		metadataJSON = "{}"
	}

	return &PlayerModel{
		ID:          p.ID.Value(),
		AgentSymbol: p.AgentSymbol,
		Token:       p.Token,
		Credits:     p.Credits,
		CreatedAt:   r.clock.Now(),
		Metadata:    metadataJSON,
	}, nil
}
