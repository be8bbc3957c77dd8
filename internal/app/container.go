// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/infra/charfile"
	"github.com/runoshun/initiative/internal/infra/config"
	"github.com/runoshun/initiative/internal/infra/git"
	"github.com/runoshun/initiative/internal/infra/gitstore"
	"github.com/runoshun/initiative/internal/infra/idgen"
	"github.com/runoshun/initiative/internal/infra/jsonstore"
	"github.com/runoshun/initiative/internal/infra/logging"
	"github.com/runoshun/initiative/internal/infra/memstore"
	"github.com/runoshun/initiative/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	RepoRoot       string // Root directory of the git repository ("" outside git)
	GitDir         string // Path to .git directory ("" outside git)
	DataDir        string // Path to .git/initiative or .initiative
	StorePath      string // Path to encounters.json
	CharactersPath string // Path to characters.yaml
}

// newConfig resolves the data directory for dir. Inside a git repository the
// data lives under .git/initiative; elsewhere under dir/.initiative.
func newConfig(dir string) (Config, *git.Client, error) {
	gitClient, err := git.NewClient(dir)
	if err != nil && !errors.Is(err, domain.ErrNotGitRepository) {
		return Config{}, nil, err
	}

	var cfg Config
	if gitClient != nil {
		cfg.RepoRoot = gitClient.RepoRoot()
		cfg.GitDir = gitClient.GitDir()
		cfg.DataDir = domain.RepoDataDir(cfg.GitDir)
	} else {
		cfg.DataDir = domain.LocalDataDir(dir)
	}
	cfg.StorePath = domain.StorePath(cfg.DataDir)
	cfg.CharactersPath = domain.CharactersPath(cfg.DataDir)
	return cfg, gitClient, nil
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Encounters       domain.EncounterRepository
	StoreInitializer domain.StoreInitializer
	Characters       domain.CharacterSource
	IDs              domain.IDGenerator
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	EncounterLog     domain.Logger

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config

	closer func() error

	// Configuration
	Config Config
}

// New creates a new Container for the working directory dir.
func New(dir string) (*Container, error) {
	cfg, gitClient, err := newConfig(dir)
	if err != nil {
		return nil, err
	}

	// Load app config; a broken file falls back to defaults with a warning
	configLoader := config.NewLoader(cfg.DataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		appConfig = domain.NewDefaultConfig()
		appConfig.Warnings = append(appConfig.Warnings, fmt.Sprintf("config ignored: %v", err))
	}

	encounters, storeInit, err := newStore(cfg, gitClient, appConfig.Store)
	if err != nil {
		return nil, err
	}

	level := logging.ParseLevel(appConfig.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	encounterLog := logging.New(cfg.DataDir, level)

	return &Container{
		Encounters:       encounters,
		StoreInitializer: storeInit,
		Characters:       charfile.New(cfg.CharactersPath),
		IDs:              idgen.UUIDGenerator{},
		Clock:            domain.RealClock{},
		ConfigLoader:     configLoader,
		ConfigManager:    config.NewManager(cfg.DataDir),
		EncounterLog:     encounterLog,
		Logger:           logger,
		AppConfig:        appConfig,
		closer:           encounterLog.Close,
		Config:           cfg,
	}, nil
}

// newStore builds the encounter store selected by the [store] config section.
func newStore(cfg Config, gitClient *git.Client, sc domain.StoreConfig) (domain.EncounterRepository, domain.StoreInitializer, error) {
	switch sc.Backend {
	case domain.StoreGit:
		if gitClient == nil {
			return nil, nil, fmt.Errorf("store backend %q: %w", sc.Backend, domain.ErrNotGitRepository)
		}
		namespace := sc.Namespace
		if namespace == "" {
			namespace = domain.DefaultStoreNamespace
		}
		store, err := gitstore.New(cfg.RepoRoot, namespace)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case domain.StoreMemory:
		store := memstore.New()
		return store, store, nil
	default:
		store := jsonstore.New(cfg.StorePath)
		return store, store, nil
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, encounters domain.EncounterRepository, storeInit domain.StoreInitializer, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		Encounters:       encounters,
		StoreInitializer: storeInit,
		IDs:              idgen.UUIDGenerator{},
		Clock:            clock,
		Logger:           logger,
		AppConfig:        domain.NewDefaultConfig(),
		Config:           cfg,
	}
}

// Close releases open log files.
func (c *Container) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// defaultAC returns the configured AC for combatants added without one.
func (c *Container) defaultAC() int {
	if c.AppConfig == nil {
		return domain.DefaultAC
	}
	return c.AppConfig.Combat.DefaultAC
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.StoreInitializer)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.AppConfig)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// NewEncounterUseCase returns a new NewEncounter use case.
func (c *Container) NewEncounterUseCase() *usecase.NewEncounter {
	return usecase.NewNewEncounter(c.Encounters, c.Clock, c.EncounterLog)
}

// ListEncountersUseCase returns a new ListEncounters use case.
func (c *Container) ListEncountersUseCase() *usecase.ListEncounters {
	return usecase.NewListEncounters(c.Encounters)
}

// ShowEncounterUseCase returns a new ShowEncounter use case.
func (c *Container) ShowEncounterUseCase() *usecase.ShowEncounter {
	return usecase.NewShowEncounter(c.Encounters)
}

// DeleteEncounterUseCase returns a new DeleteEncounter use case.
func (c *Container) DeleteEncounterUseCase() *usecase.DeleteEncounter {
	return usecase.NewDeleteEncounter(c.Encounters, c.EncounterLog)
}

// StartEncounterUseCase returns a new StartEncounter use case.
func (c *Container) StartEncounterUseCase() *usecase.StartEncounter {
	return usecase.NewStartEncounter(c.Encounters, c.Clock, c.EncounterLog)
}

// PauseEncounterUseCase returns a new PauseEncounter use case.
func (c *Container) PauseEncounterUseCase() *usecase.PauseEncounter {
	return usecase.NewPauseEncounter(c.Encounters, c.EncounterLog)
}

// ResumeEncounterUseCase returns a new ResumeEncounter use case.
func (c *Container) ResumeEncounterUseCase() *usecase.ResumeEncounter {
	return usecase.NewResumeEncounter(c.Encounters, c.EncounterLog)
}

// EndEncounterUseCase returns a new EndEncounter use case.
func (c *Container) EndEncounterUseCase() *usecase.EndEncounter {
	return usecase.NewEndEncounter(c.Encounters, c.Clock, c.EncounterLog)
}

// AddCombatantUseCase returns a new AddCombatant use case.
func (c *Container) AddCombatantUseCase() *usecase.AddCombatant {
	return usecase.NewAddCombatant(c.Encounters, c.Characters, c.IDs, c.EncounterLog, c.defaultAC())
}

// UpdateCombatantUseCase returns a new UpdateCombatant use case.
func (c *Container) UpdateCombatantUseCase() *usecase.UpdateCombatant {
	return usecase.NewUpdateCombatant(c.Encounters, c.EncounterLog)
}

// RemoveCombatantUseCase returns a new RemoveCombatant use case.
func (c *Container) RemoveCombatantUseCase() *usecase.RemoveCombatant {
	return usecase.NewRemoveCombatant(c.Encounters, c.EncounterLog)
}

// ApplyDamageUseCase returns a new ApplyDamage use case.
func (c *Container) ApplyDamageUseCase() *usecase.ApplyDamage {
	return usecase.NewApplyDamage(c.Encounters, c.EncounterLog)
}

// ApplyHealingUseCase returns a new ApplyHealing use case.
func (c *Container) ApplyHealingUseCase() *usecase.ApplyHealing {
	return usecase.NewApplyHealing(c.Encounters, c.EncounterLog)
}

// AddStatusEffectUseCase returns a new AddStatusEffect use case.
func (c *Container) AddStatusEffectUseCase() *usecase.AddStatusEffect {
	return usecase.NewAddStatusEffect(c.Encounters, c.IDs, c.EncounterLog)
}

// RemoveStatusEffectUseCase returns a new RemoveStatusEffect use case.
func (c *Container) RemoveStatusEffectUseCase() *usecase.RemoveStatusEffect {
	return usecase.NewRemoveStatusEffect(c.Encounters, c.EncounterLog)
}

// AddEnvironmentEffectUseCase returns a new AddEnvironmentEffect use case.
func (c *Container) AddEnvironmentEffectUseCase() *usecase.AddEnvironmentEffect {
	return usecase.NewAddEnvironmentEffect(c.Encounters, c.EncounterLog)
}

// RemoveEnvironmentEffectUseCase returns a new RemoveEnvironmentEffect use case.
func (c *Container) RemoveEnvironmentEffectUseCase() *usecase.RemoveEnvironmentEffect {
	return usecase.NewRemoveEnvironmentEffect(c.Encounters, c.EncounterLog)
}

// AdvanceTurnUseCase returns a new AdvanceTurn use case.
func (c *Container) AdvanceTurnUseCase() *usecase.AdvanceTurn {
	return usecase.NewAdvanceTurn(c.Encounters, c.EncounterLog)
}

// EncounterSummaryUseCase returns a new EncounterSummary use case.
func (c *Container) EncounterSummaryUseCase() *usecase.EncounterSummary {
	return usecase.NewEncounterSummary(c.Encounters, c.Clock)
}

// EncounterHistoryUseCase returns a new EncounterHistory use case.
func (c *Container) EncounterHistoryUseCase() *usecase.EncounterHistory {
	return usecase.NewEncounterHistory(c.Encounters)
}

// ListCharactersUseCase returns a new ListCharacters use case.
func (c *Container) ListCharactersUseCase() *usecase.ListCharacters {
	return usecase.NewListCharacters(c.Characters)
}

// SyncEncountersUseCase returns a new SyncEncounters use case.
func (c *Container) SyncEncountersUseCase() *usecase.SyncEncounters {
	return usecase.NewSyncEncounters(c.Encounters, c.EncounterLog)
}
