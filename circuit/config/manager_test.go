package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/wricardo/circuit-lab/circuit/engine"
)

func createTestConfigDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	return dir
}

func createValidConfig() *engine.LabConfig {
	config := &engine.LabConfig{
		Name:        "Test Lab",
		Description: "Lab configuration for manager tests",
		Palette: map[engine.ComponentType]int{
			engine.Battery:  1,
			engine.Bulb:     2,
			engine.Switch:   1,
			engine.WireNode: 4,
		},
		Starting: []engine.PlacedComponent{
			{Type: engine.Battery, X: 2 * engine.GridUnit, Y: 2 * engine.GridUnit},
			{Type: engine.Bulb, X: 2 * engine.GridUnit, Y: 6 * engine.GridUnit},
		},
		Challenges: []engine.ChallengeRule{
			{ID: "light-bulb", Title: "Light the bulb", Kind: engine.RulePoweredType, Type: engine.Bulb},
		},
	}
	config.Messages.Welcome = "Welcome!"
	config.Messages.ChallengePassed = "Challenge complete: %s"
	config.Messages.AllChallengesPassed = "All done!"
	config.Messages.DuplicateWire = "Already connected"
	config.Messages.NoTerminal = "Nothing there"
	config.Messages.PaletteExhausted = "No more %s left"
	return config
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.LabConfig) {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	path := filepath.Join(dir, filename)
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		introConfig := createValidConfig()
		introConfig.Name = "Intro"
		writeConfigFile(t, dir, "intro", introConfig)

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager == nil {
			t.Error("Expected manager to be non-nil")
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("missing default config", func(t *testing.T) {
		dir := createTestConfigDir(t)
		defer os.RemoveAll(dir)

		manager, err := NewManager(dir)
		if err != nil {
			t.Errorf("NewManager should succeed even without config files, got error: %v", err)
		}

		// Should fall back to the built-in lab
		if manager == nil {
			t.Fatal("Expected manager to be created")
		}

		defaultConfig := manager.GetDefault()
		if defaultConfig == nil {
			t.Error("Expected default config to be available")
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	// Create test configs
	introConfig := createValidConfig()
	introConfig.Name = "Intro"
	writeConfigFile(t, dir, "intro", introConfig)

	easyConfig := createValidConfig()
	easyConfig.Name = "Easy"
	easyConfig.Description = "An easier lab"
	writeConfigFile(t, dir, "easy", easyConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("easy")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Easy" {
			t.Errorf("Expected config name 'Easy', got '%s'", config.Name)
		}
		if config.Description != "An easier lab" {
			t.Errorf("Unexpected description '%s'", config.Description)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("easy.json")
		if err != nil {
			t.Fatalf("Failed to load config with extension: %v", err)
		}
		if config.Name != "Easy" {
			t.Errorf("Expected config name 'Easy', got '%s'", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		// First load
		config1, _ := manager.LoadConfig("easy")

		// Second load should come from cache
		config2, err := manager.LoadConfig("easy")
		if err != nil {
			t.Fatalf("Failed to load config from cache: %v", err)
		}

		// Should be the same pointer (cached)
		if config1 != config2 {
			t.Error("Expected config to be loaded from cache")
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		if err != ErrConfigNotFound {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		// Write invalid config
		invalidData := []byte(`{"name": ""}`) // Missing required fields
		err := os.WriteFile(filepath.Join(dir, "invalid.json"), invalidData, 0644)
		if err != nil {
			t.Fatalf("Failed to write invalid config: %v", err)
		}

		_, err = manager.LoadConfig("invalid")
		if err == nil {
			t.Error("Expected error for invalid config")
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		// Write malformed JSON
		malformedData := []byte(`{"name": "Malformed", invalid json}`)
		err := os.WriteFile(filepath.Join(dir, "malformed.json"), malformedData, 0644)
		if err != nil {
			t.Fatalf("Failed to write malformed config: %v", err)
		}

		_, err = manager.LoadConfig("malformed")
		if err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})
}

func TestManager_GetDefault(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	introConfig := createValidConfig()
	introConfig.Name = "Intro Lab"
	writeConfigFile(t, dir, "intro", introConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := manager.GetDefault()
	if config == nil {
		t.Fatal("Expected default config to be non-nil")
	}
	if config.Name != "Intro Lab" {
		t.Errorf("Expected default config name 'Intro Lab', got '%s'", config.Name)
	}
}

func TestManager_SetDefault(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	introConfig := createValidConfig()
	introConfig.Name = "Intro"
	writeConfigFile(t, dir, "intro", introConfig)

	otherConfig := createValidConfig()
	otherConfig.Name = "Other"
	writeConfigFile(t, dir, "other", otherConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if err := manager.SetDefault("other"); err != nil {
		t.Fatalf("Failed to set default: %v", err)
	}
	if manager.GetDefault().Name != "Other" {
		t.Errorf("Expected default 'Other', got '%s'", manager.GetDefault().Name)
	}

	if err := manager.SetDefault("missing"); err == nil {
		t.Error("Expected error setting default to missing config")
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	// Create multiple configs
	configs := []struct {
		filename string
		name     string
	}{
		{"intro", "Intro"},
		{"easy", "Easy"},
		{"medium", "Medium"},
		{"hard", "Hard"},
	}

	for _, cfg := range configs {
		config := createValidConfig()
		config.Name = cfg.name
		writeConfigFile(t, dir, cfg.filename, config)
	}

	// Also add a non-JSON file that should be ignored
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("readme"), 0644)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configList, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configList) != 4 {
		t.Errorf("Expected 4 configs, got %d", len(configList))
	}

	// Verify all configs are listed
	foundConfigs := make(map[string]bool)
	for _, info := range configList {
		foundConfigs[info.Name] = true
	}

	for _, cfg := range configs {
		if !foundConfigs[cfg.name] {
			t.Errorf("Config '%s' not found in list", cfg.name)
		}
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	introConfig := createValidConfig()
	writeConfigFile(t, dir, "intro", introConfig)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("save valid config", func(t *testing.T) {
		config := createValidConfig()
		config.Name = "Saved Lab"

		if err := manager.SaveConfig("saved", config); err != nil {
			t.Fatalf("Failed to save config: %v", err)
		}

		loaded, err := manager.LoadConfig("saved")
		if err != nil {
			t.Fatalf("Failed to load saved config: %v", err)
		}
		if loaded.Name != "Saved Lab" {
			t.Errorf("Expected saved config name 'Saved Lab', got '%s'", loaded.Name)
		}
	})

	t.Run("save invalid config", func(t *testing.T) {
		config := createValidConfig()
		config.Name = ""

		if err := manager.SaveConfig("bad", config); err == nil {
			t.Error("Expected error saving invalid config")
		}
	})
}

func TestManager_RefreshCache(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	config := createValidConfig()
	config.Name = "Changeable"
	writeConfigFile(t, dir, "intro", config)
	writeConfigFile(t, dir, "changeable", config)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	// Load config first time
	loaded, _ := manager.LoadConfig("changeable")
	if loaded.Description != config.Description {
		t.Errorf("Unexpected initial description '%s'", loaded.Description)
	}

	// Modify config file
	config.Description = "Updated description"
	writeConfigFile(t, dir, "changeable", config)

	// Refresh cache to pick up the change
	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("Failed to refresh cache: %v", err)
	}

	reloaded, _ := manager.LoadConfig("changeable")
	if reloaded.Description != "Updated description" {
		t.Errorf("Expected refreshed description, got '%s'", reloaded.Description)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := createTestConfigDir(t)
	defer os.RemoveAll(dir)

	// Create configs
	introConfig := createValidConfig()
	writeConfigFile(t, dir, "intro", introConfig)

	for i := 1; i <= 5; i++ {
		config := createValidConfig()
		config.Name = "Config" + string(rune('0'+i))
		writeConfigFile(t, dir, "config"+string(rune('0'+i)), config)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	// Test concurrent loading
	var wg sync.WaitGroup
	errors := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			configName := "config" + string(rune('0'+((id%5)+1)))
			_, err := manager.LoadConfig(configName)
			if err != nil {
				errors <- err
			}
		}(i)
	}

	wg.Wait()
	close(errors)

	// Check for errors
	for err := range errors {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}

	// Verify cache size
	if manager.Count() < 5 {
		t.Errorf("Expected at least 5 configs in cache, got %d", manager.Count())
	}
}

// Add missing test-only methods to Manager

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}
