package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
	"go.etcd.io/bbolt"

	"daidelog/config"
)

// CurrentSchemaVersion is bumped whenever the stored record layout changes.
const CurrentSchemaVersion = 1

var keySchema = []byte("schema")

// SchemaInfo is kept as a single JSON value in the meta bucket.
type SchemaInfo struct {
	Version    int    `json:"version"`
	ConfigHash string `json:"config_hash"`
}

// GetSchemaInfo returns the stored schema info. A fresh catalog reports
// version 0 and an empty hash.
func (s *BoltStore) GetSchemaInfo() (*SchemaInfo, error) {
	info := &SchemaInfo{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketMeta).Get(keySchema)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, info); err != nil {
			return fmt.Errorf("corrupt schema info: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// SetSchemaInfo overwrites the stored schema info.
func (s *BoltStore) SetSchemaInfo(info *SchemaInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).Put(keySchema, data)
	})
}

// ComputeConfigHash computes a hash of the conversion-relevant configuration.
// Changes to this hash mean every log must be converted again.
func ComputeConfigHash(cfg *config.Config) string {
	relevant := struct {
		FilterKeywords []string `json:"filter_keywords"`
		Powers         int      `json:"powers"`
		Indent         string   `json:"indent"`
	}{
		FilterKeywords: cfg.Convert.FilterKeywords,
		Powers:         cfg.Convert.Powers,
		Indent:         cfg.Results.Indent,
	}

	data, _ := json.Marshal(relevant)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

// MigrationResult describes the result of a migration check.
type MigrationResult struct {
	NeedsMigration bool
	NeedsRebuild   bool
	OldVersion     int
	NewVersion     int
	Reason         string
}

// CheckMigration checks if migration or rebuild is needed.
func (s *BoltStore) CheckMigration(cfg *config.Config) (*MigrationResult, error) {
	info, err := s.GetSchemaInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to get schema info: %w", err)
	}

	result := &MigrationResult{
		OldVersion: info.Version,
		NewVersion: CurrentSchemaVersion,
	}

	if info.Version > CurrentSchemaVersion {
		result.NeedsRebuild = true
		result.Reason = fmt.Sprintf("catalog written by schema v%d, this build reads v%d", info.Version, CurrentSchemaVersion)
		return result, nil
	}
	if info.ConfigHash != "" && info.ConfigHash != ComputeConfigHash(cfg) {
		result.NeedsRebuild = true
		result.Reason = "conversion settings changed"
		return result, nil
	}
	if info.Version < CurrentSchemaVersion {
		result.NeedsMigration = true
		result.Reason = fmt.Sprintf("catalog schema v%d -> v%d", info.Version, CurrentSchemaVersion)
	}

	return result, nil
}

// Migrate performs any necessary schema migrations and records the current
// configuration hash.
func (s *BoltStore) Migrate(cfg *config.Config) error {
	info, err := s.GetSchemaInfo()
	if err != nil {
		return err
	}

	for v := info.Version; v < CurrentSchemaVersion; v++ {
		if err := s.runMigration(v, v+1); err != nil {
			return fmt.Errorf("migration from v%d to v%d failed: %w", v, v+1, err)
		}
	}

	return s.SetSchemaInfo(&SchemaInfo{
		Version:    CurrentSchemaVersion,
		ConfigHash: ComputeConfigHash(cfg),
	})
}

// runMigration upgrades the catalog by one schema version.
func (s *BoltStore) runMigration(from, to int) error {
	if from == 0 && to == 1 {
		// v0 catalogs predate the games bucket.
		return s.db.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(bucketGames)
			return err
		})
	}
	return nil
}

// Clear removes every game record, keeping schema info.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketGames); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketGames)
		return err
	})
}
