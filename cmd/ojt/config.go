package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ojt-tracker/internal/cli"
	"ojt-tracker/internal/config"
	"ojt-tracker/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env Environment
	cfg *config.Config
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment, cfg *config.Config) *RepositoryFactory {
	return &RepositoryFactory{env: env, cfg: cfg}
}

// CreateRepository creates a repository instance based on the current environment
func (rf *RepositoryFactory) CreateRepository() (sqlite.Repository, error) {
	switch rf.env {
	case Development:
		return rf.createDevelopmentRepository()
	case Testing:
		return rf.createTestingRepository()
	case Production:
		return rf.createProductionRepository()
	default:
		return rf.createProductionRepository()
	}
}

// createDevelopmentRepository uses a local database file in the working directory
func (rf *RepositoryFactory) createDevelopmentRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New("ojt.db")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development database: %w", err)
	}
	return repo, nil
}

// createTestingRepository uses a throwaway database under the temp directory
func (rf *RepositoryFactory) createTestingRepository() (sqlite.Repository, error) {
	dbPath := filepath.Join(os.TempDir(), "ojt-test.db")

	repo, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize testing database: %w", err)
	}
	return repo, nil
}

// createProductionRepository uses the configured database location
func (rf *RepositoryFactory) createProductionRepository() (sqlite.Repository, error) {
	dbPath, err := cli.GetDatabasePath(rf.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}

	repo, err := sqlite.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize production database: %w", err)
	}
	return repo, nil
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("OJT_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	case "production":
		return Production
	default:
		return Production
	}
}
