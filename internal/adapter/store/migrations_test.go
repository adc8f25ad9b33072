package store

import (
	"testing"

	"daidelog/config"
)

func TestCheckMigrationFreshStore(t *testing.T) {
	st := openStore(t)

	result, err := st.CheckMigration(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsMigration {
		t.Error("expected fresh store to need migration")
	}
	if result.NeedsRebuild {
		t.Error("expected fresh store not to need rebuild")
	}
}

func TestCheckMigrationAfterMigrate(t *testing.T) {
	st := openStore(t)
	cfg := config.DefaultConfig()

	if err := st.Migrate(cfg); err != nil {
		t.Fatal(err)
	}

	result, err := st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if result.NeedsMigration || result.NeedsRebuild {
		t.Errorf("expected up-to-date store, got %+v", result)
	}
}

func TestConfigChangeNeedsRebuild(t *testing.T) {
	st := openStore(t)
	cfg := config.DefaultConfig()

	if err := st.Migrate(cfg); err != nil {
		t.Fatal(err)
	}

	cfg.Convert.FilterKeywords = append(cfg.Convert.FilterKeywords, "TME")
	result, err := st.CheckMigration(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsRebuild {
		t.Error("expected rebuild after filter keywords change")
	}
	if result.Reason == "" {
		t.Error("expected a reason")
	}
}

func TestNewerSchemaNeedsRebuild(t *testing.T) {
	st := openStore(t)

	if err := st.SetSchemaInfo(&SchemaInfo{Version: CurrentSchemaVersion + 1}); err != nil {
		t.Fatal(err)
	}

	result, err := st.CheckMigration(config.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !result.NeedsRebuild {
		t.Error("expected rebuild for newer schema")
	}
}

func TestComputeConfigHashIgnoresWorkers(t *testing.T) {
	a := config.DefaultConfig()
	b := config.DefaultConfig()
	b.Convert.Workers = 8
	b.Logging.Level = "debug"

	if ComputeConfigHash(a) != ComputeConfigHash(b) {
		t.Error("expected workers and logging not to affect the hash")
	}

	b.Convert.Powers = 2
	if ComputeConfigHash(a) == ComputeConfigHash(b) {
		t.Error("expected powers to affect the hash")
	}
}
